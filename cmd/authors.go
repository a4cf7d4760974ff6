package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// authorsCmd shows the per-author breakdown.
var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Show proposal statistics grouped by author.",
	Long: `Group the stored proposals by author handle and show each author's
totals, approval rate and the number of programs they submitted to.
Records with an unknown author are excluded from this view.

Examples:
  # Most active authors
  grantscope authors

  # Top 10 authors with full detail
  grantscope authors --limit 10 --detail`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuthors(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot build author breakdown", err)
		}
	},
}
