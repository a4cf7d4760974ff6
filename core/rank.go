package core

import (
	"sort"

	"github.com/grantscope/grantscope/schema"
)

// RankProposals sorts proposals by performance score in descending order and
// returns the top limit entries. Ties break on identifier so repeated runs
// over the same table produce the same ordering.
func RankProposals(table []schema.Proposal, limit int) []schema.Proposal {
	ranked := make([]schema.Proposal, len(table))
	copy(ranked, table)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PerformanceScore != ranked[j].PerformanceScore {
			return ranked[i].PerformanceScore > ranked[j].PerformanceScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
