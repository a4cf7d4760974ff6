// Package core has the normalization, categorization and metrics pipeline
// for grant proposals.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/internal/outwriter"
	"github.com/grantscope/grantscope/schema"
)

// ExecutorFunc defines the function signature for executing the different
// report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error

// ExecuteRefresh fetches every configured program from the source, rebuilds
// the normalized table wholesale, persists table and snapshot, and prints
// the batch summary. Individual program failures degrade to warnings; the
// batch itself never aborts on malformed records.
func ExecuteRefresh(ctx context.Context, cfg *contract.Config, source contract.ProposalSource, store contract.ProposalStore) error {
	start := time.Now()

	raws := make(map[string][]schema.RawProposal, len(cfg.Programs))
	for _, program := range cfg.Programs {
		records, err := source.FetchProgram(ctx, program)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Partial fetch for program %s", program.Key), err)
			records = nil
		}
		raws[program.Key] = records
	}

	normalizer := NewNormalizer(cfg, NewRegexExtractor(), time.Now())
	table, report := normalizer.Batch(raws)
	snap := Aggregate(table)

	if store != nil {
		if err := store.SaveTable(ctx, table); err != nil {
			return fmt.Errorf("failed to save proposal table: %w", err)
		}
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("failed to save metrics snapshot: %w", err)
		}
	}

	duration := time.Since(start)
	return outwriter.WriteRefreshSummary(report, snap, cfg, duration)
}

// GetMetricsResults loads the stored table and aggregates it. This is the
// data-returning path shared by the report command and the MCP tools.
func GetMetricsResults(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) (*schema.MetricsSnapshot, error) {
	table, err := loadTable(ctx, store)
	if err != nil {
		return nil, err
	}
	return Aggregate(table), nil
}

// GetRankedProposals loads the stored table and ranks it by performance
// score, returning the top entries per the configured result limit.
func GetRankedProposals(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) ([]schema.Proposal, error) {
	table, err := loadTable(ctx, store)
	if err != nil {
		return nil, err
	}
	return RankProposals(table, cfg.ResultLimit), nil
}

// GetEvaluation runs the scoring collaborator against one stored proposal.
func GetEvaluation(ctx context.Context, store contract.ProposalStore, evaluator contract.Evaluator, id string) (*schema.Evaluation, error) {
	table, err := loadTable(ctx, store)
	if err != nil {
		return nil, err
	}
	for i := range table {
		if table[i].ID == id {
			return evaluator.Evaluate(&table[i]), nil
		}
	}
	return nil, fmt.Errorf("no stored proposal with id %q", id)
}

// ExecuteReport loads the stored table, aggregates it, and prints the
// overall metrics snapshot.
func ExecuteReport(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	start := time.Now()
	snap, err := GetMetricsResults(ctx, cfg, store)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteReport(snap, cfg, duration)
}

// ExecuteProposals loads the stored table and prints the top proposals
// ranked by performance score.
func ExecuteProposals(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	start := time.Now()
	ranked, err := GetRankedProposals(ctx, cfg, store)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteProposals(ranked, cfg, duration)
}

// ExecutePrograms prints the per-repository breakdown.
func ExecutePrograms(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	return executeBreakdown(ctx, cfg, store, "Program", func(s *schema.MetricsSnapshot) map[string]schema.GroupStats {
		return s.ByRepository
	})
}

// ExecuteAuthors prints the per-author breakdown.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	return executeBreakdown(ctx, cfg, store, "Author", func(s *schema.MetricsSnapshot) map[string]schema.GroupStats {
		return s.ByAuthor
	})
}

// ExecuteCurators prints the per-curator breakdown.
func ExecuteCurators(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	return executeBreakdown(ctx, cfg, store, "Curator", func(s *schema.MetricsSnapshot) map[string]schema.GroupStats {
		return s.ByCurator
	})
}

// executeBreakdown is the shared load + aggregate + print path for the
// grouped report modes.
func executeBreakdown(ctx context.Context, cfg *contract.Config, store contract.ProposalStore, dimension string, pick func(*schema.MetricsSnapshot) map[string]schema.GroupStats) error {
	start := time.Now()
	table, err := loadTable(ctx, store)
	if err != nil {
		return err
	}
	snap := Aggregate(table)
	duration := time.Since(start)
	return outwriter.WriteBreakdown(dimension, pick(snap), cfg, duration)
}

// ExecuteExport writes the stored table in the configured output format.
func ExecuteExport(ctx context.Context, cfg *contract.Config, store contract.ProposalStore) error {
	table, err := loadTable(ctx, store)
	if err != nil {
		return err
	}
	return outwriter.WriteExport(table, cfg)
}

// ExecuteEvaluate runs the scoring collaborator against one stored proposal.
func ExecuteEvaluate(ctx context.Context, cfg *contract.Config, store contract.ProposalStore, evaluator contract.Evaluator, id string) error {
	eval, err := GetEvaluation(ctx, store, evaluator, id)
	if err != nil {
		return err
	}
	return outwriter.WriteEvaluation(eval, cfg)
}

// loadTable pulls the previously normalized table from the store. Rows come
// back as persisted; the pipeline never re-normalizes store output.
func loadTable(ctx context.Context, store contract.ProposalStore) ([]schema.Proposal, error) {
	if store == nil {
		return nil, errors.New("no store configured")
	}
	table, err := store.LoadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal table: %w", err)
	}
	if len(table) == 0 {
		return nil, errors.New("no proposals stored yet; run 'grantscope refresh' first")
	}
	return table, nil
}
