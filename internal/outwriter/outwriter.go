// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// Proposals prints ranked proposals using the configured output format.
func (ow *OutWriter) Proposals(ranked []schema.Proposal, cfg *contract.Config, duration time.Duration) error {
	return WriteProposals(ranked, cfg, duration)
}

// Report prints the metrics snapshot using the configured output format.
func (ow *OutWriter) Report(snap *schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration) error {
	return WriteReport(snap, cfg, duration)
}

// Breakdown prints one grouped dimension using the configured output format.
func (ow *OutWriter) Breakdown(dimension string, stats map[string]schema.GroupStats, cfg *contract.Config, duration time.Duration) error {
	return WriteBreakdown(dimension, stats, cfg, duration)
}

// getMaxTableTitleWidth calculates the maximum width for proposal titles in
// table output based on terminal width and table configuration.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	// Get terminal width
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		termWidth = 80
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Rank + ID + Category + Score + Label with borders/padding

	if cfg.Detail {
		baseWidth += 45 // Author + Comments + Reviews + Milestones + Days columns
	}
	if cfg.Explain {
		baseWidth += 35 // Breakdown column
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
