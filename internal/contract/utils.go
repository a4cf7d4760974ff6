package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Performance label constants.
const (
	ExcellentValue = "Excellent" // decided fast with strong engagement
	StrongValue    = "Strong"    // healthy proposal
	ModerateValue  = "Moderate"  // middling signal
	LowValue       = "Low"       // little to show yet
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	StrongColor    = color.New(color.FgCyan, color.Bold)
	ModerateColor  = color.New(color.FgYellow)
	LowColor       = color.New(color.FgWhite)
)

// GetPlainLabel returns a plain text label for a proposal's performance
// score. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 25:
		return ExcellentValue
	case score >= 15:
		return StrongValue
	case score >= 8:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored label for console tables. It uses
// GetPlainLabel to determine the string, then applies the matching color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// CategoryColor returns a colored rendering of a lifecycle category name.
func CategoryColor(category string) string {
	switch category {
	case "APPROVED":
		return color.New(color.FgGreen).Sprint(category)
	case "REJECTED":
		return color.New(color.FgRed).Sprint(category)
	case "STALE":
		return color.New(color.FgYellow).Sprint(category)
	case "ADMIN_REVIEW":
		return color.New(color.FgMagenta).Sprint(category)
	default:
		return color.New(color.FgCyan).Sprint(category)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, defaulting to stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogAudit logs an auditability note to stderr, used when an ambiguous
// extraction was silently resolved or a malformed record was dropped.
func LogAudit(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "Audit "+format+"\n", args...)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// proposal store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".grantscope.db"
	}
	return filepath.Join(homeDir, ".grantscope.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateText truncates a string to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for both the ellipsis and
// at least one character of content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
