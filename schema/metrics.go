package schema

// GroupStats holds the per-group aggregate statistics computed by the
// metrics aggregator. The same shape serves the overall rollup and the
// repository, author and curator breakdowns.
type GroupStats struct {
	Total  int              `json:"total"`
	Counts map[Category]int `json:"counts"`

	// ApprovalRate is approved / (approved + rejected), and 0.0 (never NaN)
	// when that denominator is zero.
	ApprovalRate float64 `json:"approval_rate"`

	// AvgApprovalDays and MedianApprovalDays are computed only over proposals
	// where an approval time is present; nil when that subset is empty.
	AvgApprovalDays    *float64 `json:"avg_approval_days,omitempty"`
	MedianApprovalDays *float64 `json:"median_approval_days,omitempty"`

	UniqueAuthors  int `json:"unique_authors"`
	UniqueCurators int `json:"unique_curators"`

	// Programs is the number of distinct repositories the group spans.
	// Meaningful for author and curator breakdowns; 1 for repository groups.
	Programs int `json:"programs"`
}

// Count returns the tally for a single category, 0 when untracked.
func (g *GroupStats) Count(c Category) int {
	if g.Counts == nil {
		return 0
	}
	return g.Counts[c]
}

// MetricsSnapshot is the full aggregation output over one normalized table.
// It is produced by the metrics aggregator and consumed read-only by the
// presentation layer and the store.
type MetricsSnapshot struct {
	Overall      GroupStats            `json:"overall"`
	ByRepository map[string]GroupStats `json:"by_repository"`
	ByAuthor     map[string]GroupStats `json:"by_author"`
	ByCurator    map[string]GroupStats `json:"by_curator"`
}

// DropDefect records a raw record that normalization had to discard,
// kept for audit rather than surfaced as a failure.
type DropDefect struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchReport summarizes one normalization run: records seen, records
// normalized, and records dropped with their reasons.
type BatchReport struct {
	Seen       int          `json:"seen"`
	Normalized int          `json:"normalized"`
	Dropped    int          `json:"dropped"`
	Duplicates int          `json:"duplicates"`
	Defects    []DropDefect `json:"defects,omitempty"`
}
