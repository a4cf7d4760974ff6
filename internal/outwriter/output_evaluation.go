package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// WriteEvaluation outputs one proposal evaluation as a curator-style
// report, dispatching based on the output format configured.
func WriteEvaluation(eval *schema.Evaluation, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, eval)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationText(w, eval, cfg)
		}, "Wrote text")
	}
}

// writeEvaluationText prints the human-readable curator report.
func writeEvaluationText(w io.Writer, eval *schema.Evaluation, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(2)

	if _, err := fmt.Fprintf(w, "🧐 Curator Report for %s\n", eval.ProposalID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Overall score: %s/1.00  Risk: %s  Approval odds: %s\n\n",
		fmtFloat(eval.OverallScore), eval.RiskLevel, fmtPercent(eval.ApprovalOdds, cfg.Precision)); err != nil {
		return err
	}

	criteria := make([]string, 0, len(eval.CriteriaScores))
	for criterion := range eval.CriteriaScores {
		criteria = append(criteria, criterion)
	}
	sort.Strings(criteria)
	for _, criterion := range criteria {
		if _, err := fmt.Fprintf(w, "   %-14s %s\n", criterion, fmtFloat(eval.CriteriaScores[criterion])); err != nil {
			return err
		}
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Strengths", eval.Strengths},
		{"Weaknesses", eval.Weaknesses},
		{"Recommendations", eval.Recommendations},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "\n%s:\n", section.title); err != nil {
			return err
		}
		if len(section.items) == 0 {
			if _, err := fmt.Fprintf(w, "   - None identified\n"); err != nil {
				return err
			}
			continue
		}
		for _, item := range section.items {
			if _, err := fmt.Fprintf(w, "   - %s\n", item); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteStoreStatus prints diagnostics about the persistence backend.
func WriteStoreStatus(status *contract.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "🗄️  Store backend: %s\n", status.Backend); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "   Proposals stored: %d\n", status.Proposals); err != nil {
				return err
			}
			if status.HasSnapshot && status.SavedAt != nil {
				_, err := fmt.Fprintf(w, "   Snapshot saved at: %s\n", status.SavedAt.Format("2006-01-02 15:04:05 MST"))
				return err
			}
			_, err := fmt.Fprintf(w, "   Snapshot saved at: never\n")
			return err
		}, "Wrote text")
	}
}
