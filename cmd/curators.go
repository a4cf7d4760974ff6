package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// curatorsCmd shows the per-curator breakdown.
var curatorsCmd = &cobra.Command{
	Use:   "curators",
	Short: "Show proposal statistics grouped by curator.",
	Long: `Group the stored proposals by the reviewers who engaged with them and
show each curator's totals and approval rate. A proposal counts toward every
curator who commented or reviewed it; its own author never counts.

Examples:
  # Most active curators
  grantscope curators

  # Export curator activity for a program retrospective
  grantscope curators --output csv --output-file curators.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCurators(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot build curator breakdown", err)
		}
	},
}
