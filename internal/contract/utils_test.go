package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "zero score is low",
			input:    0,
			expected: LowValue,
		},
		{
			name:     "just under moderate",
			input:    7.9,
			expected: LowValue,
		},
		{
			name:     "moderate lower bound",
			input:    8,
			expected: ModerateValue,
		},
		{
			name:     "strong lower bound",
			input:    15,
			expected: StrongValue,
		},
		{
			name:     "excellent lower bound",
			input:    25,
			expected: ExcellentValue,
		},
		{
			name:     "well above excellent",
			input:    33.5,
			expected: ExcellentValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabelPreservesText(t *testing.T) {
	for _, score := range []float64{0, 8, 15, 25} {
		assert.Contains(t, GetColorLabel(score), GetPlainLabel(score))
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
		wantErr  bool
	}{
		{name: "yes", input: "yes", expected: true},
		{name: "uppercase yes", input: "YES", expected: true},
		{name: "true", input: "true", expected: true},
		{name: "one", input: "1", expected: true},
		{name: "no", input: "no", expected: false},
		{name: "false", input: "false", expected: false},
		{name: "zero", input: "0", expected: false},
		{name: "garbage", input: "maybe", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{
			name:     "short string untouched",
			input:    "hello",
			maxWidth: 10,
			expected: "hello",
		},
		{
			name:     "long string gets ellipsis",
			input:    "a very long proposal title",
			maxWidth: 10,
			expected: "a very ...",
		},
		{
			name:     "exact width untouched",
			input:    "1234567890",
			maxWidth: 10,
			expected: "1234567890",
		},
		{
			name:     "width too small for ellipsis is untouched",
			input:    "abcdef",
			maxWidth: 3,
			expected: "abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.input, tt.maxWidth))
		})
	}
}
