package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/source"
	"github.com/spf13/cobra"
)

// refreshCmd fetches raw proposals and rebuilds the normalized table.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch every tracked program and rebuild the proposal table.",
	Long: `Fetch raw proposal records from every tracked grant program, normalize
them into consistent lifecycle categories and performance scores, and persist
the rebuilt table plus a fresh metrics snapshot.

Malformed records never abort the batch: each one is dropped with a logged
reason and counted in the refresh summary. A failing program degrades to a
warning so the remaining programs still refresh.

Examples:
  # Refresh all configured programs
  grantscope refresh

  # Refresh with a token to avoid anonymous rate limits
  GRANTSCOPE_GITHUB_TOKEN=ghp_... grantscope refresh

  # Refresh without persistence
  grantscope refresh --store-backend none`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		src := source.NewGitHubSource(cfg)
		if err := core.ExecuteRefresh(rootCtx, cfg, src, proposalStore); err != nil {
			contract.LogFatal("Cannot refresh proposals", err)
		}
	},
}
