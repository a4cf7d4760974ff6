package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// WriteReport outputs the full metrics snapshot, dispatching based on the
// output format configured.
func WriteReport(snap *schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snap)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, snap, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, snap, cfg, fmtFloat, duration)
		}, "Wrote text")
	}
}

// WriteRefreshSummary outputs the batch report followed by the overall
// metrics, after a refresh run.
func WriteRefreshSummary(report *schema.BatchReport, snap *schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		summary := struct {
			Batch    *schema.BatchReport     `json:"batch"`
			Snapshot *schema.MetricsSnapshot `json:"snapshot"`
		}{Batch: report, Snapshot: snap}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeBatchText(w, report); err != nil {
				return err
			}
			return writeReportText(w, snap, cfg, fmtFloat, duration)
		}, "Wrote text")
	}
}

// writeBatchText prints the normalization tallies and any drop defects.
func writeBatchText(w io.Writer, report *schema.BatchReport) error {
	if _, err := fmt.Fprintf(w, "📥 Refresh Summary\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Seen: %d  Normalized: %d  Dropped: %d  Duplicates: %d\n",
		report.Seen, report.Normalized, report.Dropped, report.Duplicates); err != nil {
		return err
	}
	for _, defect := range report.Defects {
		if _, err := fmt.Fprintf(w, "   Dropped %s: %s\n", defect.ID, defect.Reason); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}
	return nil
}

// writeReportText prints the overall rollup plus the per-program summary.
func writeReportText(w io.Writer, snap *schema.MetricsSnapshot, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	overall := &snap.Overall

	if _, err := fmt.Fprintf(w, "🏦 Grant Proposal Metrics\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "=========================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total proposals: %d\n", overall.Total); err != nil {
		return err
	}
	for _, category := range schema.AllCategories {
		if _, err := fmt.Fprintf(w, "   %-13s %d\n", categoryCell(category, cfg.UseColors), overall.Count(category)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nApproval rate: %s\n", fmtPercent(overall.ApprovalRate, cfg.Precision)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg approval days: %s  Median: %s\n",
		fmtOptionalDays(overall.AvgApprovalDays, fmtFloat),
		fmtOptionalDays(overall.MedianApprovalDays, fmtFloat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Unique authors: %d  Unique curators: %d  Programs: %d\n\n",
		overall.UniqueAuthors, overall.UniqueCurators, overall.Programs); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Per program:\n"); err != nil {
		return err
	}
	for _, key := range sortedGroupKeys(snap.ByRepository) {
		g := snap.ByRepository[key]
		if _, err := fmt.Fprintf(w, "   %-24s total=%d approved=%d rejected=%d rate=%s\n",
			key, g.Total, g.Count(schema.CategoryApproved), g.Count(schema.CategoryRejected),
			fmtPercent(g.ApprovalRate, cfg.Precision)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nReport completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeReportCSV prints one row per program plus the overall rollup.
func writeReportCSV(w io.Writer, snap *schema.MetricsSnapshot, fmtFloat func(float64) string) error {
	header := []string{
		"group",
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
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		writeRow := func(name string, g *schema.GroupStats) error {
			return csvWriter.Write([]string{
				name,
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
			})
		}

		if err := writeRow("overall", &snap.Overall); err != nil {
			return err
		}
		for _, key := range sortedGroupKeys(snap.ByRepository) {
			g := snap.ByRepository[key]
			if err := writeRow(key, &g); err != nil {
				return err
			}
		}
		return nil
	})
}
