package schema

// Evaluation is the bounded-score output of the optional proposal evaluator.
// Each criterion score lives in [0, 1]; the overall score is their weighted
// combination.
type Evaluation struct {
	ProposalID      string             `json:"proposal_id"`
	CriteriaScores  map[string]float64 `json:"criteria_scores"`
	OverallScore    float64            `json:"overall_score"`
	RiskLevel       string             `json:"risk_level"`
	ApprovalOdds    float64            `json:"estimated_approval_probability"`
	Strengths       []string           `json:"strengths,omitempty"`
	Weaknesses      []string           `json:"weaknesses,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// Risk level constants for evaluations.
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskVeryHigh = "VERY_HIGH"
)
