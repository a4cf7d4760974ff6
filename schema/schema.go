// Package schema has configs, models and constants for all parts of grantscope.
package schema

import "time"

// RawProposal is the untrusted, loosely-typed shape a proposal source yields.
// Any key may be missing, null, or carry a value of the wrong type; all field
// access goes through the coerce package rather than typed assertions.
type RawProposal map[string]any

// Get returns the value for key, or nil when the key is absent.
func (r RawProposal) Get(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

// GetMap returns a nested mapping for key, or nil when absent or mistyped.
func (r RawProposal) GetMap(key string) map[string]any {
	m, _ := r.Get(key).(map[string]any)
	return m
}

// GetSlice returns a nested collection for key, or nil when absent or mistyped.
func (r RawProposal) GetSlice(key string) []any {
	s, _ := r.Get(key).([]any)
	return s
}

// Proposal is the normalized, invariant-bearing record produced by the
// pipeline. Counters are never negative, Category is always set, and optional
// timestamps are nil pointers rather than sentinel dates.
type Proposal struct {
	ID         string `json:"id"` // dedup key: repository + "#" + number
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	Author     string `json:"author"` // empty string means unknown author
	Repository string `json:"repository"`
	State      State  `json:"state"`
	Merged     bool   `json:"merged"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`

	Category         Category `json:"category"`
	ApprovalTimeDays *int     `json:"approval_time_days,omitempty"`
	IsStale          bool     `json:"is_stale"`

	Curators        []string `json:"curators"` // sorted, never contains the author or ""
	Labels          []string `json:"labels,omitempty"`
	MilestoneCount  int      `json:"milestone_count"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	BountyAmount    *float64 `json:"bounty_amount,omitempty"`

	CommentsCount       int `json:"comments_count"`
	ReviewCommentsCount int `json:"review_comments_count"`
	CommitsCount        int `json:"commits_count"`
	AdditionsCount      int `json:"additions_count"`
	DeletionsCount      int `json:"deletions_count"`
	ChangedFilesCount   int `json:"changed_files_count"`

	PerformanceScore float64 `json:"performance_score"`

	// Breakdown holds the contribution of each score component for explain mode.
	Breakdown map[BreakdownKey]float64 `json:"breakdown,omitempty"`
}

// DecidedAt returns the timestamp that decided the proposal's fate:
// the merge time for approvals, the close time for rejections, nil otherwise.
func (p *Proposal) DecidedAt() *time.Time {
	switch p.Category {
	case CategoryApproved:
		return p.MergedAt
	case CategoryRejected:
		return p.ClosedAt
	default:
		return nil
	}
}
