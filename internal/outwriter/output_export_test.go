package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/grantscope/grantscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExportCSV(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	merged := created.AddDate(0, 0, 5)
	days := 5
	bounty := 1500.0

	table := []schema.Proposal{
		{
			ID:               "w3f_grants#1",
			Number:           1,
			Repository:       "w3f_grants",
			Title:            "Build an indexer",
			Author:           "alice",
			State:            schema.StateClosed,
			Merged:           true,
			Category:         schema.CategoryApproved,
			CreatedAt:        created,
			MergedAt:         &merged,
			ApprovalTimeDays: &days,
			MilestoneCount:   2,
			BountyAmount:     &bounty,
			Curators:         []string{"bob", "carol"},
			Labels:           []string{"grant", "phase-1"},
			CommentsCount:    4,
			PerformanceScore: 16.5,
		},
		{
			ID:         "w3f_grants#2",
			Number:     2,
			Repository: "w3f_grants",
			Title:      "Still open",
			State:      schema.StateOpen,
			Category:   schema.CategoryPending,
			CreatedAt:  created,
		},
	}

	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeExportCSV(&buf, table, fmtFloat, intFmt))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Len(t, header, 26)
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "performance_score", header[25])

	first := records[1]
	assert.Equal(t, "w3f_grants#1", first[0])
	assert.Equal(t, "true", first[6])
	assert.Equal(t, "APPROVED", first[7])
	assert.Equal(t, "2024-03-15T10:00:00Z", first[9])
	assert.Equal(t, "", first[10], "no updated timestamp renders empty")
	assert.Equal(t, "2024-03-20T10:00:00Z", first[12])
	assert.Equal(t, "5", first[13])
	assert.Equal(t, "1500.0", first[16])
	assert.Equal(t, "bob|carol", first[17])
	assert.Equal(t, "grant|phase-1", first[18])
	assert.Equal(t, "16.5", first[25])

	second := records[2]
	assert.Equal(t, "open", second[5])
	assert.Equal(t, "-", second[13])
	assert.Equal(t, "", second[16])
}

func TestWriteExportParquetRequiresOutputFile(t *testing.T) {
	cfg := reportConfig()
	cfg.Output = schema.ParquetOut

	err := WriteExport(nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output-file")
}

func TestFmtOptionalTime(t *testing.T) {
	assert.Equal(t, "", fmtOptionalTime(nil))
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-01-02T03:04:05Z", fmtOptionalTime(&ts))
}
