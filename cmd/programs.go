package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// programsCmd shows the per-program breakdown.
var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Show proposal statistics grouped by grant program.",
	Long: `Group the stored proposals by grant program repository and show each
group's totals, approval rate and approval-time statistics.

Examples:
  # Per-program summary table
  grantscope programs

  # Full detail per program
  grantscope programs --detail`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrograms(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot build program breakdown", err)
		}
	},
}
