package core

import (
	"github.com/grantscope/grantscope/schema"
)

// Per-dimension caps keep any single signal from dominating the composite.
const (
	approvedBonus = 10.0
	fastBonus     = 5.0

	engagementCommentDivisor = 10.0
	engagementReviewDivisor  = 5.0
	engagementCap            = 5.0

	activityCommitDivisor = 5.0
	activityChurnDivisor  = 100.0
	activityCap           = 5.0
)

// computePerformanceScore derives a proposal's composite performance score.
// The function is total over normalized records: every input combination
// yields a non-negative score, and the per-component contributions are saved
// in the breakdown map for explain mode.
func computePerformanceScore(p *schema.Proposal, fastApprovalDays int) float64 {
	breakdown := make(map[schema.BreakdownKey]float64)

	if p.Category == schema.CategoryApproved {
		breakdown[schema.BreakdownApproved] = approvedBonus
	}

	if p.ApprovalTimeDays != nil && *p.ApprovalTimeDays < fastApprovalDays {
		breakdown[schema.BreakdownFast] = fastBonus
	}

	engagement := capAt(float64(p.CommentsCount)/engagementCommentDivisor, engagementCap) +
		capAt(float64(p.ReviewCommentsCount)/engagementReviewDivisor, engagementCap)
	breakdown[schema.BreakdownEngagement] = engagement

	churn := float64(p.AdditionsCount + p.DeletionsCount)
	activity := capAt(float64(p.CommitsCount)/activityCommitDivisor, activityCap) +
		capAt(churn/activityChurnDivisor, activityCap)
	breakdown[schema.BreakdownActivity] = activity

	var score float64
	for _, value := range breakdown {
		score += value
	}

	p.Breakdown = breakdown
	return score
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
