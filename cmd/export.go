package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd dumps the full normalized table.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full normalized proposal table.",
	Long: `Dump every stored proposal with all normalized fields, ignoring the
result limit. Use this to feed spreadsheets, notebooks or warehouses.

Supported formats: csv (default), json, parquet.

Examples:
  # CSV to stdout
  grantscope export

  # Columnar export for analytics
  grantscope export --output parquet --output-file proposals.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, proposalStore); err != nil {
			contract.LogFatal("Cannot export proposals", err)
		}
	},
}
