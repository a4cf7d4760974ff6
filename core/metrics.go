package core

import (
	"sort"
	"sync"

	"github.com/grantscope/grantscope/schema"
)

// Aggregate computes the full metrics snapshot over one normalized table.
// The table is treated as immutable: the overall rollup and the three
// breakdown dimensions each run their own read-only pass, concurrently.
// Output is deterministic for a fixed table.
func Aggregate(table []schema.Proposal) *schema.MetricsSnapshot {
	snap := &schema.MetricsSnapshot{}

	var wg sync.WaitGroup
	wg.Go(func() {
		refs := make([]*schema.Proposal, len(table))
		for i := range table {
			refs[i] = &table[i]
		}
		snap.Overall = computeGroup(refs)
	})
	wg.Go(func() {
		snap.ByRepository = groupBy(table, func(p *schema.Proposal) []string {
			return []string{p.Repository}
		})
	})
	wg.Go(func() {
		snap.ByAuthor = groupBy(table, func(p *schema.Proposal) []string {
			if p.Author == "" {
				return nil
			}
			return []string{p.Author}
		})
	})
	wg.Go(func() {
		snap.ByCurator = groupBy(table, func(p *schema.Proposal) []string {
			return p.Curators
		})
	})
	wg.Wait()

	return snap
}

// groupBy buckets proposals by one or more keys per record and computes
// the per-group statistics independently for each bucket.
func groupBy(table []schema.Proposal, keysOf func(*schema.Proposal) []string) map[string]schema.GroupStats {
	buckets := make(map[string][]*schema.Proposal)
	for i := range table {
		p := &table[i]
		for _, key := range keysOf(p) {
			buckets[key] = append(buckets[key], p)
		}
	}

	stats := make(map[string]schema.GroupStats, len(buckets))
	for key, members := range buckets {
		stats[key] = computeGroup(members)
	}
	return stats
}

// computeGroup runs the single-pass tally plus the approval-time statistics
// for one group of proposals.
func computeGroup(members []*schema.Proposal) schema.GroupStats {
	g := schema.GroupStats{
		Total:  len(members),
		Counts: make(map[schema.Category]int, len(schema.AllCategories)),
	}

	authors := make(map[string]struct{})
	curators := make(map[string]struct{})
	programs := make(map[string]struct{})
	var approvalDays []int

	for _, p := range members {
		g.Counts[p.Category]++
		if p.Author != "" {
			authors[p.Author] = struct{}{}
		}
		for _, c := range p.Curators {
			curators[c] = struct{}{}
		}
		programs[p.Repository] = struct{}{}
		if p.ApprovalTimeDays != nil {
			approvalDays = append(approvalDays, *p.ApprovalTimeDays)
		}
	}

	g.UniqueAuthors = len(authors)
	g.UniqueCurators = len(curators)
	g.Programs = len(programs)
	g.ApprovalRate = approvalRate(g.Counts)
	g.AvgApprovalDays, g.MedianApprovalDays = approvalStats(approvalDays)

	return g
}

// approvalRate is approved / (approved + rejected), defined as 0.0 rather
// than NaN when the group has no decided proposals.
func approvalRate(counts map[schema.Category]int) float64 {
	approved := counts[schema.CategoryApproved]
	decided := approved + counts[schema.CategoryRejected]
	if decided == 0 {
		return 0.0
	}
	return float64(approved) / float64(decided)
}

// approvalStats computes average and median approval days over the subset
// where an approval time is present; both are nil when the subset is empty.
func approvalStats(days []int) (avg, median *float64) {
	if len(days) == 0 {
		return nil, nil
	}

	sorted := make([]int, len(days))
	copy(sorted, days)
	sort.Ints(sorted)

	var sum int
	for _, d := range sorted {
		sum += d
	}
	a := float64(sum) / float64(len(sorted))

	var m float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		m = float64(sorted[mid-1]+sorted[mid]) / 2.0
	} else {
		m = float64(sorted[mid])
	}

	return &a, &m
}
