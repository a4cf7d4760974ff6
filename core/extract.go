package core

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grantscope/grantscope/core/coerce"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

var (
	// milestoneLinePattern matches checkbox items and milestone-style
	// headings within a proposal body, one count per line.
	milestoneLinePattern = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*\[[ x]\]|#{1,4}\s*milestone\b|milestone\s*\d+|phase\s*\d+|stage\s*\d+)`)

	// reasonPattern captures the free text after a "reason:" marker.
	reasonPattern = regexp.MustCompile(`(?i)\breason\s*:\s*(.+)`)

	// bountyDollarPattern captures "$1,500" style amounts.
	bountyDollarPattern = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	// bountyUnitPattern captures "30000 USD" / "1,200 DOT" style amounts.
	bountyUnitPattern = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:DOT|USD)\b`)
)

// RegexExtractor implements the best-effort text heuristics over raw
// proposal records. All extractions follow a first-match policy; when
// multiple candidates disagree, the first wins and the ambiguity is logged
// for audit.
type RegexExtractor struct{}

var _ contract.Heuristics = (*RegexExtractor)(nil) // Compile-time check

// NewRegexExtractor returns the default heuristics implementation.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Curators returns the sorted union of comment and review author handles,
// minus the proposal's own author and empty strings.
func (e *RegexExtractor) Curators(raw schema.RawProposal, author string) []string {
	set := make(map[string]struct{})

	collect := func(entries []any) {
		for _, entry := range entries {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			user, _ := m["user"].(map[string]any)
			handle := coerce.ToFlatString(user["login"])
			if handle == "" || handle == author {
				continue
			}
			set[handle] = struct{}{}
		}
	}

	collect(raw.GetSlice("comments"))
	collect(raw.GetSlice("reviews"))

	curators := make([]string, 0, len(set))
	for handle := range set {
		curators = append(curators, handle)
	}
	sort.Strings(curators)
	return curators
}

// MilestoneCount derives a milestone count: structured milestone data wins,
// then a line-pattern count over the body.
func (e *RegexExtractor) MilestoneCount(raw schema.RawProposal) int {
	switch v := raw.Get("milestones").(type) {
	case nil:
		// fall through to the single milestone object and body scan
	case []any:
		if len(v) > 0 {
			return len(v)
		}
	default:
		if n := coerce.ToInt(v); n > 0 {
			return n
		}
	}

	// A GitHub-style single milestone object counts as one.
	if m := raw.GetMap("milestone"); len(m) > 0 {
		return 1
	}

	body := coerce.ToFlatString(raw.Get("body"))
	count := 0
	for _, line := range strings.Split(body, "\n") {
		if milestoneLinePattern.MatchString(line) {
			count++
		}
	}
	return count
}

// RejectionReason scans comments from the most recent backwards, looking
// for a "reason:" marker; the match closest to the close wins.
func (e *RegexExtractor) RejectionReason(raw schema.RawProposal) string {
	comments := raw.GetSlice("comments")
	found := ""
	candidates := 0

	for i := len(comments) - 1; i >= 0; i-- {
		m, ok := comments[i].(map[string]any)
		if !ok {
			continue
		}
		body := coerce.ToFlatString(m["body"])
		match := reasonPattern.FindStringSubmatch(body)
		if match == nil {
			continue
		}
		candidates++
		if found == "" {
			found = strings.TrimSpace(match[1])
		}
	}

	if candidates > 1 {
		contract.LogAudit("rejection reason: %d candidates found, kept the one closest to close", candidates)
	}
	return found
}

// BountyAmount parses the first currency amount pattern in the body.
// Ambiguity resolves to the earliest occurrence, a documented
// approximation rather than a guarantee.
func (e *RegexExtractor) BountyAmount(body string) *float64 {
	dollar := bountyDollarPattern.FindStringSubmatchIndex(body)
	unit := bountyUnitPattern.FindStringSubmatchIndex(body)

	chosen := dollar
	if chosen == nil || (unit != nil && unit[0] < chosen[0]) {
		chosen = unit
	}
	if chosen == nil {
		return nil
	}

	raw := strings.ReplaceAll(body[chosen[2]:chosen[3]], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 {
		return nil
	}

	matches := len(bountyDollarPattern.FindAllStringIndex(body, -1)) +
		len(bountyUnitPattern.FindAllStringIndex(body, -1))
	if matches > 1 {
		contract.LogAudit("bounty amount: %d amount patterns present, kept the first occurrence", matches)
	}
	return &amount
}
