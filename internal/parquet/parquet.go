// Package parquet provides data structures and functions for exporting
// normalized grant proposal data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grantscope/grantscope/schema"
	"github.com/parquet-go/parquet-go"
)

// ProposalRow is the flattened, Parquet-friendly shape of a normalized
// proposal. Nullable pipeline fields map to optional columns; list fields
// flatten to pipe-joined strings so the schema stays columnar.
type ProposalRow struct {
	// ID is the dedup identifier, repository + "#" + number
	ID string `parquet:"id,snappy"`

	// Number is the proposal number within its repository
	Number int32 `parquet:"number,snappy"`

	// Repository is the program key the proposal belongs to
	Repository string `parquet:"repository,snappy"`

	// Title is the proposal title
	Title string `parquet:"title,snappy"`

	// Author is the proposal author handle, empty when unknown
	Author string `parquet:"author,snappy"`

	// State is the raw open/closed state
	State string `parquet:"state,snappy"`

	// Merged reports whether merge evidence was present
	Merged bool `parquet:"merged,snappy"`

	// Category is the classified lifecycle stage
	Category string `parquet:"category,snappy"`

	// IsStale mirrors the STALE category for filter pushdown
	IsStale bool `parquet:"is_stale,snappy"`

	// CreatedAt is when the proposal was opened
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// UpdatedAt is the last activity time (nullable)
	UpdatedAt *time.Time `parquet:"updated_at,optional,snappy"`

	// ClosedAt is when the proposal was closed (nullable)
	ClosedAt *time.Time `parquet:"closed_at,optional,snappy"`

	// MergedAt is when the proposal was merged (nullable)
	MergedAt *time.Time `parquet:"merged_at,optional,snappy"`

	// ApprovalTimeDays is the whole days from creation to decision (nullable)
	ApprovalTimeDays *int32 `parquet:"approval_time_days,optional,snappy"`

	// MilestoneCount is the extracted milestone count
	MilestoneCount int32 `parquet:"milestone_count,snappy"`

	// RejectionReason is the extracted close reason (nullable)
	RejectionReason *string `parquet:"rejection_reason,optional,snappy"`

	// BountyAmount is the extracted monetary ask (nullable)
	BountyAmount *float64 `parquet:"bounty_amount,optional,snappy"`

	// Curators is the pipe-joined sorted curator set
	Curators string `parquet:"curators,snappy"`

	// Labels is the pipe-joined label list
	Labels string `parquet:"labels,snappy"`

	// CommentsCount is the number of issue comments
	CommentsCount int32 `parquet:"comments_count,snappy"`

	// ReviewCommentsCount is the number of review comments
	ReviewCommentsCount int32 `parquet:"review_comments_count,snappy"`

	// CommitsCount is the number of commits on the proposal
	CommitsCount int32 `parquet:"commits_count,snappy"`

	// AdditionsCount is the number of added lines
	AdditionsCount int32 `parquet:"additions_count,snappy"`

	// DeletionsCount is the number of deleted lines
	DeletionsCount int32 `parquet:"deletions_count,snappy"`

	// ChangedFilesCount is the number of touched files
	ChangedFilesCount int32 `parquet:"changed_files_count,snappy"`

	// PerformanceScore is the composite performance score
	PerformanceScore float64 `parquet:"performance_score,snappy"`
}

// WriteProposalsParquet writes a slice of ProposalRow structs to a Parquet file.
func WriteProposalsParquet(data []ProposalRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ProposalRow struct tags
	writer := parquet.NewGenericWriter[ProposalRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertProposals converts schema.Proposal records to ProposalRow for
// Parquet export.
func ConvertProposals(table []schema.Proposal) []ProposalRow {
	result := make([]ProposalRow, len(table))
	for i := range table {
		p := &table[i]
		row := ProposalRow{
			ID:                  p.ID,
			Number:              int32(p.Number),
			Repository:          p.Repository,
			Title:               p.Title,
			Author:              p.Author,
			State:               string(p.State),
			Merged:              p.Merged,
			Category:            string(p.Category),
			IsStale:             p.IsStale,
			CreatedAt:           p.CreatedAt,
			UpdatedAt:           p.UpdatedAt,
			ClosedAt:            p.ClosedAt,
			MergedAt:            p.MergedAt,
			MilestoneCount:      int32(p.MilestoneCount),
			BountyAmount:        p.BountyAmount,
			Curators:            strings.Join(p.Curators, "|"),
			Labels:              strings.Join(p.Labels, "|"),
			CommentsCount:       int32(p.CommentsCount),
			ReviewCommentsCount: int32(p.ReviewCommentsCount),
			CommitsCount:        int32(p.CommitsCount),
			AdditionsCount:      int32(p.AdditionsCount),
			DeletionsCount:      int32(p.DeletionsCount),
			ChangedFilesCount:   int32(p.ChangedFilesCount),
			PerformanceScore:    p.PerformanceScore,
		}
		if p.ApprovalTimeDays != nil {
			days := int32(*p.ApprovalTimeDays)
			row.ApprovalTimeDays = &days
		}
		if p.RejectionReason != "" {
			reason := p.RejectionReason
			row.RejectionReason = &reason
		}
		result[i] = row
	}
	return result
}
