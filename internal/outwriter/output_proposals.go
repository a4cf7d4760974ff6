package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/parquet"
	"github.com/grantscope/grantscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProposals outputs ranked proposals, dispatching based on the output
// format configured.
func WriteProposals(ranked []schema.Proposal, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeProposalJSONResults(ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeProposalCSVResults(ranked, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeProposalParquetResults(ranked, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProposalTable(ranked, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeProposalJSONResults handles opening the file and calling the JSON writer.
func writeProposalJSONResults(ranked []schema.Proposal, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForProposals(w, ranked)
	}, "Wrote JSON")
}

// writeProposalCSVResults handles opening the file and calling the CSV writer.
func writeProposalCSVResults(ranked []schema.Proposal, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForProposals(csvWriter, ranked, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeProposalParquetResults writes the ranked proposals to a Parquet file.
// Parquet is a binary format, so a destination file is required.
func writeProposalParquetResults(ranked []schema.Proposal, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := parquet.ConvertProposals(ranked)
	if err := parquet.WriteProposalsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeProposalTable generates and writes the human-readable table.
func writeProposalTable(ranked []schema.Proposal, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "ID", "Title", "Category", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Author", "Comments", "Reviews", "Milestones", "Days")
	}
	if cfg.Explain {
		headers = append(headers, "Breakdown")
	}
	table.Header(headers)

	// 2. Configure alignment for numeric-heavy rows
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxTitle := getMaxTableTitleWidth(cfg)
	var data [][]string
	for i := range ranked {
		p := &ranked[i]
		row := []string{
			strconv.Itoa(i + 1),
			p.ID,
			contract.TruncateText(p.Title, maxTitle),
			categoryCell(p.Category, cfg.UseColors),
			fmtFloat(p.PerformanceScore),
			scoreLabelCell(p.PerformanceScore, cfg.UseColors),
		}
		if cfg.Detail {
			row = append(
				row,
				p.Author,
				fmt.Sprintf(intFmt, p.CommentsCount),
				fmt.Sprintf(intFmt, p.ReviewCommentsCount),
				fmt.Sprintf(intFmt, p.MilestoneCount),
				fmtApprovalDays(p.ApprovalTimeDays),
			)
		}
		if cfg.Explain {
			row = append(row, formatScoreBreakdown(p.Breakdown, fmtFloat))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalComments := 0
	totalCurators := make(map[string]struct{})
	for i := range ranked {
		totalComments += ranked[i].CommentsCount
		for _, c := range ranked[i].Curators {
			totalCurators[c] = struct{}{}
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d proposals (total comments: %d, unique curators: %d)\n", len(ranked), totalComments, len(totalCurators)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProposals writes the ranked proposals in CSV format.
func writeCSVResultsForProposals(w *csv.Writer, ranked []schema.Proposal, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"id",
		"repository",
		"number",
		"title",
		"author",
		"category",
		"score",
		"label",
		"approval_time_days",
		"milestones",
		"comments",
		"review_comments",
		"curators",
		"bounty_amount",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range ranked {
		p := &ranked[i]
		rec := []string{
			strconv.Itoa(i + 1),
			p.ID,
			p.Repository,
			fmt.Sprintf(intFmt, p.Number),
			p.Title,
			p.Author,
			string(p.Category),
			fmtFloat(p.PerformanceScore),
			contract.GetPlainLabel(p.PerformanceScore),
			fmtApprovalDays(p.ApprovalTimeDays),
			fmt.Sprintf(intFmt, p.MilestoneCount),
			fmt.Sprintf(intFmt, p.CommentsCount),
			fmt.Sprintf(intFmt, p.ReviewCommentsCount),
			strings.Join(p.Curators, "|"),
			fmtOptionalAmount(p.BountyAmount, fmtFloat),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForProposals writes the ranked proposals in JSON format.
func writeJSONResultsForProposals(w io.Writer, ranked []schema.Proposal) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONProposalResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.Proposal
	}

	output := make([]JSONProposalResult, len(ranked))
	for i := range ranked {
		output[i] = JSONProposalResult{
			Rank:     i + 1,
			Label:    contract.GetPlainLabel(ranked[i].PerformanceScore),
			Proposal: ranked[i],
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// fmtApprovalDays renders a nullable approval span, "-" when undecided.
func fmtApprovalDays(days *int) string {
	if days == nil {
		return "-"
	}
	return strconv.Itoa(*days)
}

// fmtOptionalAmount renders a nullable monetary amount, empty when absent.
func fmtOptionalAmount(amount *float64, fmtFloat func(float64) string) string {
	if amount == nil {
		return ""
	}
	return fmtFloat(*amount)
}
