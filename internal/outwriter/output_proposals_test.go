package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() []schema.Proposal {
	days := 5
	bounty := 1500.0
	return []schema.Proposal{
		{
			ID:                  "w3f_grants#1",
			Number:              1,
			Title:               "Build an indexer",
			Author:              "alice",
			Repository:          "w3f_grants",
			Category:            schema.CategoryApproved,
			ApprovalTimeDays:    &days,
			MilestoneCount:      2,
			CommentsCount:       4,
			ReviewCommentsCount: 2,
			Curators:            []string{"bob", "carol"},
			BountyAmount:        &bounty,
			PerformanceScore:    16.5,
			Breakdown: map[schema.BreakdownKey]float64{
				schema.BreakdownApproved: 10,
				schema.BreakdownFast:     5,
			},
		},
		{
			ID:               "w3f_grants#2",
			Number:           2,
			Title:            "Pending work",
			Author:           "dave",
			Repository:       "w3f_grants",
			Category:         schema.CategoryPending,
			PerformanceScore: 1.2,
		},
	}
}

func TestWriteCSVResultsForProposals(t *testing.T) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	fmtFloat, intFmt := createFormatters(1)

	require.NoError(t, writeCSVResultsForProposals(csvWriter, rankedFixture(), fmtFloat, intFmt))
	csvWriter.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "rank", header[0])
	assert.Len(t, header, 15)

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "w3f_grants#1", first[1])
	assert.Equal(t, "APPROVED", first[6])
	assert.Equal(t, "16.5", first[7])
	assert.Equal(t, "Strong", first[8])
	assert.Equal(t, "5", first[9])
	assert.Equal(t, "bob|carol", first[13])
	assert.Equal(t, "1500.0", first[14])

	second := records[2]
	assert.Equal(t, "2", second[0])
	assert.Equal(t, "-", second[9], "undecided proposals have no approval span")
	assert.Equal(t, "", second[14], "no bounty renders empty")
}

func TestWriteJSONResultsForProposals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForProposals(&buf, rankedFixture()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.EqualValues(t, 1, decoded[0]["rank"])
	assert.Equal(t, "Strong", decoded[0]["label"])
	assert.Equal(t, "w3f_grants#1", decoded[0]["id"])
	assert.EqualValues(t, 2, decoded[1]["rank"])
	assert.Equal(t, "Low", decoded[1]["label"])
}

func TestWriteProposalTable(t *testing.T) {
	cfg := &contract.Config{
		Precision:    1,
		Workers:      4,
		StoreBackend: schema.SQLiteBackend,
		Detail:       true,
		Explain:      true,
	}
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeProposalTable(rankedFixture(), cfg, fmtFloat, intFmt, 250*time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "w3f_grants#1")
	assert.Contains(t, out, "Build an indexer")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "approved:10.0 fast_approval:5.0")
	assert.Contains(t, out, "Showing top 2 proposals (total comments: 4, unique curators: 2)")
	assert.Contains(t, out, "Store backend: sqlite")
}

func TestWriteProposalsParquetRequiresOutputFile(t *testing.T) {
	cfg := &contract.Config{
		Precision: 1,
		Output:    schema.ParquetOut,
	}

	err := WriteProposals(rankedFixture(), cfg, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output-file")
}

func TestFmtApprovalDays(t *testing.T) {
	assert.Equal(t, "-", fmtApprovalDays(nil))
	v := 12
	assert.Equal(t, "12", fmtApprovalDays(&v))
}
