package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/grantscope/grantscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		input     float64
		expected  string
	}{
		{name: "one decimal", precision: 1, input: 16.55, expected: "16.5"},
		{name: "one decimal rounds", precision: 1, input: 16.56, expected: "16.6"},
		{name: "two decimals", precision: 2, input: 16.5, expected: "16.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.input))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestFmtPercent(t *testing.T) {
	assert.Equal(t, "50.0%", fmtPercent(0.5, 1))
	assert.Equal(t, "33.33%", fmtPercent(1.0/3.0, 2))
	assert.Equal(t, "0.0%", fmtPercent(0, 1))
}

func TestFmtOptionalDays(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	assert.Equal(t, "-", fmtOptionalDays(nil, fmtFloat))

	v := 7.25
	assert.Equal(t, "7.2", fmtOptionalDays(&v, fmtFloat))
}

func TestCategoryCellPlain(t *testing.T) {
	assert.Equal(t, "APPROVED", categoryCell(schema.CategoryApproved, false))
	assert.Contains(t, categoryCell(schema.CategoryApproved, true), "APPROVED")
}

func TestScoreLabelCellPlain(t *testing.T) {
	assert.Equal(t, "Excellent", scoreLabelCell(30, false))
	assert.Equal(t, "Low", scoreLabelCell(1, false))
}

func TestFormatScoreBreakdown(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	tests := []struct {
		name      string
		breakdown map[schema.BreakdownKey]float64
		expected  string
	}{
		{
			name:      "empty breakdown",
			breakdown: nil,
			expected:  "-",
		},
		{
			name: "zero components dropped",
			breakdown: map[schema.BreakdownKey]float64{
				schema.BreakdownApproved:   10,
				schema.BreakdownEngagement: 0,
			},
			expected: "approved:10.0",
		},
		{
			name: "largest component first",
			breakdown: map[schema.BreakdownKey]float64{
				schema.BreakdownApproved:   10,
				schema.BreakdownFast:       5,
				schema.BreakdownEngagement: 2.5,
			},
			expected: "approved:10.0 fast_approval:5.0 engagement:2.5",
		},
		{
			name: "ties break on key",
			breakdown: map[schema.BreakdownKey]float64{
				schema.BreakdownEngagement: 3,
				schema.BreakdownActivity:   3,
			},
			expected: "activity:3.0 engagement:3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatScoreBreakdown(tt.breakdown, fmtFloat))
		})
	}
}

func TestSortedGroupKeys(t *testing.T) {
	stats := map[string]schema.GroupStats{
		"small":   {Total: 1},
		"big":     {Total: 10},
		"b_equal": {Total: 5},
		"a_equal": {Total: 5},
	}

	assert.Equal(t, []string{"big", "a_equal", "b_equal", "small"}, sortedGroupKeys(stats))
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"total": 3}))
	assert.Equal(t, "{\n  \"total\": 3\n}\n", buf.String())
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer

	err := writeCSVWithHeader(&buf, []string{"key", "total"}, func(w *csv.Writer) error {
		return w.Write([]string{"w3f_grants", "4"})
	})
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"key", "total"}, {"w3f_grants", "4"}}, records)
}
