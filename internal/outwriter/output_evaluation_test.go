package outwriter

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvaluationText(t *testing.T) {
	eval := &schema.Evaluation{
		ProposalID: "w3f_grants#7",
		CriteriaScores: map[string]float64{
			"completeness": 0.85,
			"clarity":      0.6,
			"feasibility":  0.4,
		},
		OverallScore: 0.65,
		RiskLevel:    schema.RiskMedium,
		ApprovalOdds: 0.5,
		Strengths:    []string{"Comprehensive proposal with detailed information"},
		Weaknesses:   []string{"Project feasibility concerns"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeEvaluationText(&buf, eval, reportConfig()))

	out := buf.String()
	assert.Contains(t, out, "Curator Report for w3f_grants#7")
	assert.Contains(t, out, "Overall score: 0.65/1.00  Risk: MEDIUM  Approval odds: 50.0%")
	assert.Contains(t, out, "clarity")
	assert.Contains(t, out, "completeness")
	assert.Contains(t, out, "Strengths:")
	assert.Contains(t, out, "- Comprehensive proposal with detailed information")
	assert.Contains(t, out, "Weaknesses:")
	assert.Contains(t, out, "- Project feasibility concerns")
	assert.Contains(t, out, "Recommendations:\n   - None identified")

	// Criteria print in alphabetical order.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("clarity")), bytes.Index(buf.Bytes(), []byte("completeness")))
}

func TestWriteStoreStatusText(t *testing.T) {
	savedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   *contract.StoreStatus
		contains []string
	}{
		{
			name: "populated store",
			status: &contract.StoreStatus{
				Backend:     schema.SQLiteBackend,
				Proposals:   42,
				HasSnapshot: true,
				SavedAt:     &savedAt,
			},
			contains: []string{
				"Store backend: sqlite",
				"Proposals stored: 42",
				"Snapshot saved at: 2024-06-01 12:00:00 UTC",
			},
		},
		{
			name:   "empty store",
			status: &contract.StoreStatus{Backend: schema.NoneBackend},
			contains: []string{
				"Store backend: none",
				"Proposals stored: 0",
				"Snapshot saved at: never",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := t.TempDir() + "/status.txt"
			cfg := reportConfig()
			cfg.OutputFile = outPath

			require.NoError(t, WriteStoreStatus(tt.status, cfg))

			data, err := os.ReadFile(outPath)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(data), want)
			}
		})
	}
}
