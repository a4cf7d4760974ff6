package cmd

import (
	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/evaluate"
	"github.com/spf13/cobra"
)

// evaluateCmd runs the heuristic curator evaluation for one proposal.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <proposal-id>",
	Short: "Run the heuristic curator evaluation for one proposal.",
	Long: `Score a single stored proposal against fixed review criteria
(completeness, clarity, feasibility, impact, milestones) and produce a
curator-style report with strengths, weaknesses and recommendations.

The evaluation is advisory and fully offline; it never changes the stored
proposal or its performance score.

Examples:
  # Evaluate one proposal by id
  grantscope evaluate w3f_grants#1234

  # Machine-readable evaluation
  grantscope evaluate w3f_grants#1234 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		evaluator := evaluate.NewHeuristicEvaluator()
		if err := core.ExecuteEvaluate(rootCtx, cfg, proposalStore, evaluator, args[0]); err != nil {
			contract.LogFatal("Cannot evaluate proposal", err)
		}
	},
}
