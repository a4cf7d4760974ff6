package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd prints the aggregated metrics snapshot.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the aggregated proposal metrics.",
	Long: `Aggregate the stored proposal table into the overall metrics snapshot:
category counts, approval rate, approval-time statistics and unique
participant counts, plus a per-program summary.

Examples:
  # Human-readable report
  grantscope report

  # Machine-readable snapshot for dashboards
  grantscope report --output json --output-file metrics.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
