package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBreakdown outputs one grouped dimension (program, author or curator),
// dispatching based on the output format configured. The result limit caps
// how many groups print; groups order by size descending.
func WriteBreakdown(dimension string, stats map[string]schema.GroupStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	keys := sortedGroupKeys(stats)
	if cfg.ResultLimit > 0 && len(keys) > cfg.ResultLimit {
		keys = keys[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBreakdownJSON(w, dimension, keys, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBreakdownCSV(w, strings.ToLower(dimension), keys, stats, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBreakdownTable(w, dimension, keys, stats, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeBreakdownTable generates and writes the human-readable table.
func writeBreakdownTable(writer io.Writer, dimension string, keys []string, stats map[string]schema.GroupStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", dimension, "Total", "Approved", "Rejected", "Rate"}
	if cfg.Detail {
		headers = append(headers, "Pending", "Stale", "AvgDays", "MedianDays", "Authors", "Curators", "Programs")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, key := range keys {
		g := stats[key]
		row := []string{
			strconv.Itoa(i + 1),
			key,
			strconv.Itoa(g.Total),
			strconv.Itoa(g.Count(schema.CategoryApproved)),
			strconv.Itoa(g.Count(schema.CategoryRejected)),
			fmtPercent(g.ApprovalRate, cfg.Precision),
		}
		if cfg.Detail {
			row = append(
				row,
				strconv.Itoa(g.Count(schema.CategoryPending)),
				strconv.Itoa(g.Count(schema.CategoryStale)),
				fmtOptionalDays(g.AvgApprovalDays, fmtFloat),
				fmtOptionalDays(g.MedianApprovalDays, fmtFloat),
				strconv.Itoa(g.UniqueAuthors),
				strconv.Itoa(g.UniqueCurators),
				strconv.Itoa(g.Programs),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d of %d groups by %s\n", len(keys), len(stats), strings.ToLower(dimension)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeBreakdownCSV writes the grouped statistics in CSV format.
func writeBreakdownCSV(w io.Writer, dimension string, keys []string, stats map[string]schema.GroupStats, fmtFloat func(float64) string) error {
	header := []string{
		dimension,
		"total",
		"approved",
		"rejected",
		"pending",
		"stale",
		"admin_review",
		"approval_rate",
		"avg_approval_days",
		"median_approval_days",
		"unique_authors",
		"unique_curators",
		"programs",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, key := range keys {
			g := stats[key]
			rec := []string{
				key,
				strconv.Itoa(g.Total),
				strconv.Itoa(g.Count(schema.CategoryApproved)),
				strconv.Itoa(g.Count(schema.CategoryRejected)),
				strconv.Itoa(g.Count(schema.CategoryPending)),
				strconv.Itoa(g.Count(schema.CategoryStale)),
				strconv.Itoa(g.Count(schema.CategoryAdminReview)),
				fmtFloat(g.ApprovalRate),
				fmtOptionalDays(g.AvgApprovalDays, fmtFloat),
				fmtOptionalDays(g.MedianApprovalDays, fmtFloat),
				strconv.Itoa(g.UniqueAuthors),
				strconv.Itoa(g.UniqueCurators),
				strconv.Itoa(g.Programs),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBreakdownJSON writes the grouped statistics in JSON format, keeping
// the display ordering as an explicit rank.
func writeBreakdownJSON(w io.Writer, dimension string, keys []string, stats map[string]schema.GroupStats) error {
	type JSONGroupResult struct {
		Rank int    `json:"rank"`
		Key  string `json:"key"`
		schema.GroupStats
	}

	output := struct {
		Dimension string            `json:"dimension"`
		Groups    []JSONGroupResult `json:"groups"`
	}{Dimension: strings.ToLower(dimension)}

	for i, key := range keys {
		output.Groups = append(output.Groups, JSONGroupResult{
			Rank:       i + 1,
			Key:        key,
			GroupStats: stats[key],
		})
	}

	return writeJSON(w, output)
}
