package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// proposalsCmd lists the top proposals by performance score.
var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Show the top proposals ranked by performance score.",
	Long: `Rank the stored proposals by composite performance score and show the
top entries. The score rewards approval, fast decisions, reviewer engagement
and development activity.

Examples:
  # Top 25 proposals
  grantscope proposals

  # Top 10 with per-component score breakdown
  grantscope proposals --limit 10 --explain

  # Full detail columns, exported to CSV
  grantscope proposals --detail --output csv --output-file top.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProposals(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot rank proposals", err)
		}
	},
}
