package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grantscope/grantscope/core/coerce"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// Normalizer turns raw, inconsistent proposal records into normalized ones.
// It is stateless per record: configuration and the clock are fixed at
// construction, so the same raw record always normalizes to the same output.
type Normalizer struct {
	cfg  *contract.Config
	heur contract.Heuristics
	now  time.Time
}

// NewNormalizer builds a Normalizer with an explicit clock. Tests and
// repeated runs pass a fixed now for reproducible categories.
func NewNormalizer(cfg *contract.Config, heur contract.Heuristics, now time.Time) *Normalizer {
	return &Normalizer{cfg: cfg, heur: heur, now: now.UTC()}
}

// rawJob carries one raw record through the worker pool with its position,
// so dedup order stays deterministic regardless of worker scheduling.
type rawJob struct {
	index   int
	repoKey string
	raw     schema.RawProposal
}

type rawOutcome struct {
	index    int
	proposal *schema.Proposal
	defect   *schema.DropDefect
}

// Batch normalizes every record from every program and reports what
// happened. Records are processed concurrently; a malformed record becomes
// a logged defect, never an abort.
func (n *Normalizer) Batch(raws map[string][]schema.RawProposal) ([]schema.Proposal, *schema.BatchReport) {
	// Flatten with stable positions: program key order, then input order.
	keys := make([]string, 0, len(raws))
	for key := range raws {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var jobs []rawJob
	for _, key := range keys {
		for _, raw := range raws[key] {
			jobs = append(jobs, rawJob{index: len(jobs), repoKey: key, raw: raw})
		}
	}

	report := &schema.BatchReport{Seen: len(jobs)}
	if len(jobs) == 0 {
		return []schema.Proposal{}, report
	}

	jobCh := make(chan rawJob, len(jobs))
	outCh := make(chan rawOutcome, len(jobs))
	var wg sync.WaitGroup

	workers := n.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for range workers {
		wg.Go(func() {
			for job := range jobCh {
				proposal, defect := n.Record(job.raw, job.repoKey)
				outCh <- rawOutcome{index: job.index, proposal: proposal, defect: defect}
			}
		})
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()
	close(outCh)

	outcomes := make([]rawOutcome, len(jobs))
	for out := range outCh {
		outcomes[out.index] = out
	}

	// Collect in input order; the first occurrence of a dedup key wins.
	table := make([]schema.Proposal, 0, len(jobs))
	seen := make(map[string]struct{}, len(jobs))
	for _, out := range outcomes {
		if out.defect != nil {
			report.Dropped++
			report.Defects = append(report.Defects, *out.defect)
			contract.LogAudit("dropped record %s: %s", out.defect.ID, out.defect.Reason)
			continue
		}
		if _, dup := seen[out.proposal.ID]; dup {
			report.Duplicates++
			continue
		}
		seen[out.proposal.ID] = struct{}{}
		table = append(table, *out.proposal)
	}
	report.Normalized = len(table)

	return table, report
}

// Record normalizes a single raw proposal. It is pure and total over the
// documented input shape: no panic and no error escapes it. A record whose
// created timestamp cannot be recovered comes back as a drop defect.
func (n *Normalizer) Record(raw schema.RawProposal, repoKey string) (*schema.Proposal, *schema.DropDefect) {
	number := coerce.ToInt(raw.Get("number"))
	id := fmt.Sprintf("%s#%d", repoKey, number)

	createdAt, ok := coerce.ToTime(raw.Get("created_at"))
	if !ok {
		return nil, &schema.DropDefect{ID: id, Reason: "missing or unparseable created timestamp"}
	}

	p := &schema.Proposal{
		ID:         id,
		Number:     number,
		Title:      strings.TrimSpace(coerce.ToFlatString(raw.Get("title"))),
		Body:       coerce.ToFlatString(raw.Get("body")),
		Author:     extractAuthor(raw),
		Repository: repoKey,
		CreatedAt:  createdAt,
		UpdatedAt:  optionalTime(raw.Get("updated_at")),
		ClosedAt:   optionalTime(raw.Get("closed_at")),
		MergedAt:   optionalTime(raw.Get("merged_at")),
		Labels:     extractLabels(raw),
	}

	if strings.ToLower(coerce.ToFlatString(raw.Get("state"))) == string(schema.StateOpen) {
		p.State = schema.StateOpen
	} else {
		p.State = schema.StateClosed
	}

	// Merge completion is signaled by the flag OR a merge timestamp;
	// sources set one without the other.
	p.Merged = coerce.ToBool(raw.Get("merged")) || p.MergedAt != nil

	// Counters survive nulls, numeric strings and stray lists.
	p.CommentsCount = nonNegative(coerce.ToInt(raw.Get("comments")))
	p.ReviewCommentsCount = nonNegative(coerce.ToInt(raw.Get("review_comments")))
	p.CommitsCount = nonNegative(coerce.ToInt(raw.Get("commits")))
	p.AdditionsCount = nonNegative(coerce.ToInt(raw.Get("additions")))
	p.DeletionsCount = nonNegative(coerce.ToInt(raw.Get("deletions")))
	p.ChangedFilesCount = nonNegative(coerce.ToInt(raw.Get("changed_files")))

	p.Category = Classify(p.State, p.Merged, p.MergedAt, p.ClosedAt, p.CreatedAt, n.now, n.cfg.StaleDays)
	p.IsStale = p.Category == schema.CategoryStale
	p.ApprovalTimeDays = approvalTime(p)

	p.Curators = n.heur.Curators(raw, p.Author)
	p.MilestoneCount = n.heur.MilestoneCount(raw)
	if p.Category == schema.CategoryRejected {
		p.RejectionReason = n.heur.RejectionReason(raw)
	}
	p.BountyAmount = n.heur.BountyAmount(p.Body)

	p.PerformanceScore = computePerformanceScore(p, n.cfg.FastApprovalDays)

	return p, nil
}

// extractAuthor digs the author handle out of the nested user object,
// falling back to a flat author key. A null author normalizes to the empty
// string, representing "unknown author".
func extractAuthor(raw schema.RawProposal) string {
	if user := raw.GetMap("user"); user != nil {
		return coerce.ToFlatString(user["login"])
	}
	return coerce.ToFlatString(raw.Get("author"))
}

// extractLabels flattens label objects (or plain strings) into names.
func extractLabels(raw schema.RawProposal) []string {
	entries := raw.GetSlice("labels")
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		var name string
		if m, ok := entry.(map[string]any); ok {
			name = coerce.ToFlatString(m["name"])
		} else {
			name = coerce.ToFlatString(entry)
		}
		if name != "" {
			labels = append(labels, name)
		}
	}
	return labels
}

// approvalTime computes whole days between creation and the deciding
// timestamp. Present only for decided categories with both timestamps;
// negative spans from source clock skew clamp to 0 to keep the
// non-negativity invariant.
func approvalTime(p *schema.Proposal) *int {
	decided := p.DecidedAt()
	if decided == nil {
		return nil
	}
	days := int(decided.Sub(p.CreatedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func optionalTime(v any) *time.Time {
	t, ok := coerce.ToTime(v)
	if !ok {
		return nil
	}
	return &t
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
