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
)

// WriteExport dumps the full stored table in a machine-readable format.
// Unlike the report views, export carries every normalized field and
// ignores the result limit. Text mode falls back to CSV.
func WriteExport(table []schema.Proposal, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table)
		}, "Wrote JSON")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertProposals(table)
		if err := parquet.WriteProposalsParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default: // CSV and text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExportCSV(w, table, fmtFloat, intFmt)
		}, "Wrote CSV")
	}
}

// writeExportCSV writes every normalized field, one proposal per row.
func writeExportCSV(w io.Writer, table []schema.Proposal, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"id",
		"number",
		"repository",
		"title",
		"author",
		"state",
		"merged",
		"category",
		"is_stale",
		"created_at",
		"updated_at",
		"closed_at",
		"merged_at",
		"approval_time_days",
		"milestone_count",
		"rejection_reason",
		"bounty_amount",
		"curators",
		"labels",
		"comments_count",
		"review_comments_count",
		"commits_count",
		"additions_count",
		"deletions_count",
		"changed_files_count",
		"performance_score",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range table {
			p := &table[i]
			rec := []string{
				p.ID,
				fmt.Sprintf(intFmt, p.Number),
				p.Repository,
				p.Title,
				p.Author,
				string(p.State),
				strconv.FormatBool(p.Merged),
				string(p.Category),
				strconv.FormatBool(p.IsStale),
				p.CreatedAt.Format(time.RFC3339),
				fmtOptionalTime(p.UpdatedAt),
				fmtOptionalTime(p.ClosedAt),
				fmtOptionalTime(p.MergedAt),
				fmtApprovalDays(p.ApprovalTimeDays),
				fmt.Sprintf(intFmt, p.MilestoneCount),
				p.RejectionReason,
				fmtOptionalAmount(p.BountyAmount, fmtFloat),
				strings.Join(p.Curators, "|"),
				strings.Join(p.Labels, "|"),
				fmt.Sprintf(intFmt, p.CommentsCount),
				fmt.Sprintf(intFmt, p.ReviewCommentsCount),
				fmt.Sprintf(intFmt, p.CommitsCount),
				fmt.Sprintf(intFmt, p.AdditionsCount),
				fmt.Sprintf(intFmt, p.DeletionsCount),
				fmt.Sprintf(intFmt, p.ChangedFilesCount),
				fmtFloat(p.PerformanceScore),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// fmtOptionalTime renders a nullable timestamp, empty when absent.
func fmtOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
