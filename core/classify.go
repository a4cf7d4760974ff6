package core

import (
	"time"

	"github.com/grantscope/grantscope/schema"
)

// Classify derives the lifecycle category for one proposal. It is a pure
// function of its inputs: the same state, merge evidence, timestamps and
// clock always produce the same category.
//
// Merge evidence dominates everything else. Sources have been observed
// reporting state=closed with merged=false while still carrying a merge
// timestamp; the timestamp is trusted.
func Classify(state schema.State, merged bool, mergedAt, closedAt *time.Time, createdAt, now time.Time, staleDays int) schema.Category {
	if merged || mergedAt != nil {
		return schema.CategoryApproved
	}
	if state == schema.StateClosed && closedAt != nil {
		return schema.CategoryRejected
	}
	if state == schema.StateOpen {
		// Strictly greater: a proposal open for exactly staleDays is still
		// PENDING.
		if now.Sub(createdAt) > time.Duration(staleDays)*24*time.Hour {
			return schema.CategoryStale
		}
		return schema.CategoryPending
	}
	// Closed without a close timestamp: inconsistent source data that a
	// human needs to look at.
	return schema.CategoryAdminReview
}
