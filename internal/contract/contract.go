// Package contract provides interfaces and shared utilities for the
// grantscope CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/grantscope/grantscope/schema"
)

// ProposalSource yields raw, partially-populated proposal records for one
// configured grant program. Transport failures are the source's concern;
// callers must tolerate fewer records than expected.
type ProposalSource interface {
	FetchProgram(ctx context.Context, program Program) ([]schema.RawProposal, error)
}

// ProposalStore persists the normalized table and the metrics snapshot.
// The table is replaced wholesale on every save, matching the pipeline's
// rebuild-on-fetch lifecycle. Loaded rows come back normalized; the core
// never re-normalizes data it receives from the store.
type ProposalStore interface {
	SaveTable(ctx context.Context, table []schema.Proposal) error
	LoadTable(ctx context.Context) ([]schema.Proposal, error)
	SaveSnapshot(ctx context.Context, snap *schema.MetricsSnapshot) error
	LoadSnapshot(ctx context.Context) (*schema.MetricsSnapshot, error)
	Status(ctx context.Context) (*StoreStatus, error)
	Clear(ctx context.Context) error
	Close() error
}

// StoreStatus describes the persistence backend for diagnostics.
type StoreStatus struct {
	Backend     schema.DatabaseBackend
	Proposals   int
	HasSnapshot bool
	SavedAt     *time.Time
}

// Heuristics isolates the best-effort text extraction rules so they can be
// swapped or improved without touching the normalizer's control flow.
// All methods are total; "not found" comes back as a zero value, never an
// error.
type Heuristics interface {
	// Curators returns the sorted set of non-author participant handles
	// drawn from the record's comments and reviews.
	Curators(raw schema.RawProposal, author string) []string

	// MilestoneCount derives a milestone count from structured milestone
	// data, falling back to text patterns in the body.
	MilestoneCount(raw schema.RawProposal) int

	// RejectionReason scans closing-adjacent comments for a recognizable
	// reason pattern; empty string when none is found.
	RejectionReason(raw schema.RawProposal) string

	// BountyAmount parses a monetary amount from the proposal body;
	// nil when no amount pattern matches.
	BountyAmount(body string) *float64
}

// Evaluator is the optional scoring collaborator: given a proposal's text it
// returns a bounded-score evaluation with named criteria. The pipeline's
// performance score is computed independently and never requires it.
type Evaluator interface {
	Evaluate(p *schema.Proposal) *schema.Evaluation
}
