package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer and
// returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across
// multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// fmtPercent renders a 0-1 rate as a percentage.
func fmtPercent(rate float64, precision int) string {
	return fmt.Sprintf("%.*f%%", precision, rate*100)
}

// fmtOptionalDays renders a nullable day statistic, "-" when absent.
func fmtOptionalDays(days *float64, fmtFloat func(float64) string) string {
	if days == nil {
		return "-"
	}
	return fmtFloat(*days)
}

// categoryCell renders a category, optionally colored for terminal tables.
func categoryCell(category schema.Category, useColors bool) string {
	if useColors {
		return contract.CategoryColor(string(category))
	}
	return string(category)
}

// scoreLabelCell renders a score label, optionally colored.
func scoreLabelCell(score float64, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(score)
	}
	return contract.GetPlainLabel(score)
}

// formatScoreBreakdown renders the score components largest first,
// for explain mode.
func formatScoreBreakdown(breakdown map[schema.BreakdownKey]float64, fmtFloat func(float64) string) string {
	type component struct {
		key   schema.BreakdownKey
		value float64
	}

	components := make([]component, 0, len(breakdown))
	for key, value := range breakdown {
		if value == 0 {
			continue
		}
		components = append(components, component{key: key, value: value})
	}
	sort.Slice(components, func(i, j int) bool {
		if components[i].value != components[j].value {
			return components[i].value > components[j].value
		}
		return components[i].key < components[j].key
	})

	parts := make([]string, 0, len(components))
	for _, c := range components {
		parts = append(parts, fmt.Sprintf("%s:%s", c.key, fmtFloat(c.value)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// sortedGroupKeys orders breakdown keys by group size descending, then by
// key ascending, so the busiest groups print first and runs stay stable.
func sortedGroupKeys(stats map[string]schema.GroupStats) []string {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		gi, gj := stats[keys[i]], stats[keys[j]]
		if gi.Total != gj.Total {
			return gi.Total > gj.Total
		}
		return keys[i] < keys[j]
	})
	return keys
}
