package cmd

import (
	"github.com/grantscope/grantscope/internal/evaluate"
	"github.com/grantscope/grantscope/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GrantScope MCP server",
	Long:  `Launch an MCP server that allows AI agents to query grant proposal metrics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol; setup must not print to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		evaluator := evaluate.NewHeuristicEvaluator()
		return mcp.StartMCPServer(rootCtx, cfg, proposalStore, evaluator)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
