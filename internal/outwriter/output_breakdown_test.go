package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdownFixture() map[string]schema.GroupStats {
	return map[string]schema.GroupStats{
		"alice": {
			Total:        3,
			Counts:       map[schema.Category]int{schema.CategoryApproved: 2, schema.CategoryRejected: 1},
			ApprovalRate: 2.0 / 3.0,
			Programs:     2,
		},
		"bob": {
			Total:        1,
			Counts:       map[schema.Category]int{schema.CategoryPending: 1},
			Programs:     1,
		},
		"carol": {
			Total:        2,
			Counts:       map[schema.Category]int{schema.CategoryRejected: 2},
			ApprovalRate: 0,
			Programs:     1,
		},
	}
}

func TestWriteBreakdownCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	stats := breakdownFixture()

	require.NoError(t, writeBreakdownCSV(&buf, "author", sortedGroupKeys(stats), stats, fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "author", records[0][0])
	assert.Equal(t, "alice", records[1][0], "largest group first")
	assert.Equal(t, "3", records[1][1])
	assert.Equal(t, "0.67", records[1][7])
	assert.Equal(t, "carol", records[2][0])
	assert.Equal(t, "bob", records[3][0])
}

func TestWriteBreakdownJSON(t *testing.T) {
	var buf bytes.Buffer
	stats := breakdownFixture()

	require.NoError(t, writeBreakdownJSON(&buf, "Author", sortedGroupKeys(stats), stats))

	var decoded struct {
		Dimension string `json:"dimension"`
		Groups    []struct {
			Rank  int    `json:"rank"`
			Key   string `json:"key"`
			Total int    `json:"total"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "author", decoded.Dimension)
	require.Len(t, decoded.Groups, 3)
	assert.Equal(t, 1, decoded.Groups[0].Rank)
	assert.Equal(t, "alice", decoded.Groups[0].Key)
	assert.Equal(t, 3, decoded.Groups[0].Total)
}

func TestWriteBreakdownAppliesResultLimit(t *testing.T) {
	cfg := &contract.Config{
		Precision:    1,
		Workers:      4,
		ResultLimit:  2,
		Output:       schema.CSVOut,
		StoreBackend: schema.SQLiteBackend,
	}

	// Capture via output file to keep stdout clean.
	outPath := t.TempDir() + "/breakdown.csv"
	cfg.OutputFile = outPath

	require.NoError(t, WriteBreakdown("Author", breakdownFixture(), cfg, time.Millisecond))

	records := readCSVFile(t, outPath)
	require.Len(t, records, 3, "header plus two groups under the limit")
	assert.Equal(t, "alice", records[1][0])
	assert.Equal(t, "carol", records[2][0])
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteBreakdownTableText(t *testing.T) {
	cfg := &contract.Config{
		Precision:    1,
		Workers:      2,
		StoreBackend: schema.NoneBackend,
		Detail:       true,
	}
	fmtFloat, _ := createFormatters(cfg.Precision)
	stats := breakdownFixture()

	var buf bytes.Buffer
	require.NoError(t, writeBreakdownTable(&buf, "Curator", sortedGroupKeys(stats), stats, cfg, fmtFloat, time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Curator")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Showing top 3 of 3 groups by curator")
	assert.Contains(t, out, "Store backend: none")
}
