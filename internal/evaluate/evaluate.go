// Package evaluate scores proposal text against a fixed set of review
// criteria. It is a heuristic reviewer: deterministic, offline, and
// advisory only. The pipeline's performance score never depends on it.
package evaluate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// Criterion names and their weights in the overall score.
const (
	CriterionCompleteness = "completeness"
	CriterionClarity      = "clarity"
	CriterionFeasibility  = "feasibility"
	CriterionImpact       = "impact"
	CriterionMilestones   = "milestones"
)

var criterionWeights = map[string]float64{
	CriterionCompleteness: 0.25,
	CriterionClarity:      0.20,
	CriterionFeasibility:  0.25,
	CriterionImpact:       0.20,
	CriterionMilestones:   0.10,
}

var (
	headingPattern  = regexp.MustCompile(`(?m)^#{1,3}\s`)
	listPattern     = regexp.MustCompile(`(?m)^(?:\s*[-*]\s|\d+\.)`)
	codePattern     = regexp.MustCompile("```|`[^`]+`")
	timelinePattern = regexp.MustCompile(`(?i)\d+\s*(week|month|day)`)
	teamPattern     = regexp.MustCompile(`(?i)team|developer|contributor`)
	openPattern     = regexp.MustCompile(`(?i)open\s*source|github|license`)
	docsPattern     = regexp.MustCompile(`(?i)documentation|tutorial|guide|example`)
	phasePattern    = regexp.MustCompile(`(?i)milestone|phase|stage`)
)

var (
	keySections          = []string{"objective", "deliverables", "timeline", "budget", "team"}
	techTerms            = []string{"substrate", "polkadot", "parachain", "runtime", "pallet", "ink", "wasm"}
	approachIndicators   = []string{"implementation", "architecture", "design", "approach"}
	ecosystemKeywords    = []string{"ecosystem", "community", "developer", "adoption", "integration"}
	innovationIndicators = []string{"novel", "innovative", "new", "first", "unique"}
)

// HeuristicEvaluator is the default Evaluator implementation.
type HeuristicEvaluator struct{}

var _ contract.Evaluator = (*HeuristicEvaluator)(nil) // Compile-time check

// NewHeuristicEvaluator returns the default evaluator.
func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

// Evaluate scores one proposal. Every criterion score lands in [0, 1] and
// the overall score is the weighted sum.
func (e *HeuristicEvaluator) Evaluate(p *schema.Proposal) *schema.Evaluation {
	body := p.Body
	lower := strings.ToLower(body)

	var bounty float64
	if p.BountyAmount != nil {
		bounty = *p.BountyAmount
	}

	scores := map[string]float64{
		CriterionCompleteness: scoreCompleteness(p.Title, body, lower, p.MilestoneCount),
		CriterionClarity:      scoreClarity(body, lower),
		CriterionFeasibility:  scoreFeasibility(body, lower, bounty),
		CriterionImpact:       scoreImpact(body, lower),
		CriterionMilestones:   scoreMilestones(p.MilestoneCount, body),
	}

	var overall float64
	for criterion, score := range scores {
		overall += score * criterionWeights[criterion]
	}

	return &schema.Evaluation{
		ProposalID:      p.ID,
		CriteriaScores:  scores,
		OverallScore:    overall,
		RiskLevel:       riskLevel(overall),
		ApprovalOdds:    approvalOdds(overall),
		Strengths:       pickFindings(scores, strengthFindings, above, 0.7),
		Weaknesses:      pickFindings(scores, weaknessFindings, below, 0.5),
		Recommendations: pickFindings(scores, recommendationFindings, below, 0.7),
	}
}

func scoreCompleteness(title, body, lower string, milestones int) float64 {
	var score float64

	if len(title) > 10 {
		score += 0.2
	}

	switch {
	case len(body) > 500:
		score += 0.3
	case len(body) > 200:
		score += 0.2
	}

	found := 0
	for _, section := range keySections {
		if strings.Contains(lower, section) {
			found++
		}
	}
	score += float64(found) / float64(len(keySections)) * 0.3

	if milestones > 0 {
		score += 0.2
	}

	return clamp01(score)
}

func scoreClarity(body, lower string) float64 {
	if body == "" {
		return 0.0
	}

	var score float64

	if headingPattern.MatchString(body) {
		score += 0.3
	}
	if listPattern.MatchString(body) {
		score += 0.2
	}

	techCount := 0
	for _, term := range techTerms {
		if strings.Contains(lower, term) {
			techCount++
		}
	}
	score += minFloat(float64(techCount)/float64(len(techTerms)), 0.3)

	if codePattern.MatchString(body) {
		score += 0.2
	}

	return clamp01(score)
}

func scoreFeasibility(body, lower string, bounty float64) float64 {
	var score float64

	if timelinePattern.MatchString(body) {
		score += 0.3
	}
	if teamPattern.MatchString(body) {
		score += 0.2
	}

	for _, indicator := range approachIndicators {
		if strings.Contains(lower, indicator) {
			score += 0.2
			break
		}
	}

	// Larger asks carry more delivery risk.
	switch {
	case bounty <= 0:
	case bounty < 50000:
		score += 0.3
	case bounty < 100000:
		score += 0.2
	default:
		score += 0.1
	}

	return clamp01(score)
}

func scoreImpact(body, lower string) float64 {
	var score float64

	ecosystemCount := 0
	for _, keyword := range ecosystemKeywords {
		if strings.Contains(lower, keyword) {
			ecosystemCount++
		}
	}
	score += minFloat(float64(ecosystemCount)/float64(len(ecosystemKeywords)), 0.3)

	innovationCount := 0
	for _, indicator := range innovationIndicators {
		if strings.Contains(lower, indicator) {
			innovationCount++
		}
	}
	score += minFloat(float64(innovationCount)/float64(len(innovationIndicators)), 0.3)

	if openPattern.MatchString(body) {
		score += 0.2
	}
	if docsPattern.MatchString(body) {
		score += 0.2
	}

	return clamp01(score)
}

func scoreMilestones(milestones int, body string) float64 {
	var score float64

	switch {
	case milestones >= 3:
		score += 0.4
	case milestones >= 1:
		score += 0.2
	}

	if phasePattern.MatchString(body) {
		score += 0.3
	}
	if timelinePattern.MatchString(body) {
		score += 0.3
	}

	return clamp01(score)
}

func riskLevel(overall float64) string {
	switch {
	case overall >= 0.8:
		return schema.RiskLow
	case overall >= 0.6:
		return schema.RiskMedium
	case overall >= 0.4:
		return schema.RiskHigh
	default:
		return schema.RiskVeryHigh
	}
}

func approvalOdds(overall float64) float64 {
	switch {
	case overall >= 0.8:
		return 0.85
	case overall >= 0.7:
		return 0.70
	case overall >= 0.6:
		return 0.50
	case overall >= 0.5:
		return 0.30
	default:
		return 0.15
	}
}

var strengthFindings = map[string]string{
	CriterionCompleteness: "Comprehensive proposal with detailed information",
	CriterionClarity:      "Clear and well-structured proposal",
	CriterionFeasibility:  "Realistic and achievable project plan",
	CriterionImpact:       "High potential ecosystem impact",
	CriterionMilestones:   "Well-defined milestones and timeline",
}

var weaknessFindings = map[string]string{
	CriterionCompleteness: "Incomplete proposal - missing key information",
	CriterionClarity:      "Unclear or poorly structured proposal",
	CriterionFeasibility:  "Project feasibility concerns",
	CriterionImpact:       "Limited ecosystem impact",
	CriterionMilestones:   "Poorly defined milestones",
}

var recommendationFindings = map[string]string{
	CriterionCompleteness: "Add more detailed project description and deliverables",
	CriterionClarity:      "Improve proposal structure with clear sections",
	CriterionFeasibility:  "Provide more detailed implementation plan and timeline",
	CriterionImpact:       "Better articulate the ecosystem impact and benefits",
	CriterionMilestones:   "Define clear, measurable milestones with timelines",
}

type comparison int

const (
	above comparison = iota
	below
)

// pickFindings returns the finding text for every criterion on the chosen
// side of the threshold, in stable criterion order.
func pickFindings(scores map[string]float64, findings map[string]string, cmp comparison, threshold float64) []string {
	criteria := make([]string, 0, len(scores))
	for criterion := range scores {
		criteria = append(criteria, criterion)
	}
	sort.Strings(criteria)

	var out []string
	for _, criterion := range criteria {
		score := scores[criterion]
		if (cmp == above && score > threshold) || (cmp == below && score < threshold) {
			out = append(out, findings[criterion])
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
