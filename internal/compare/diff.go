package compare

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffResult holds a unified diff between two report documents.
type DiffResult struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	LeftLabel      string
	RightLabel     string
}

// DiffOptions configures diff computation.
type DiffOptions struct {
	LeftLabel  string
	RightLabel string
	Context    int
}

// DefaultDiffOptions returns the default labels and three lines of context.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		LeftLabel:  "left",
		RightLabel: "right",
		Context:    3,
	}
}

// ComputeDiff computes a unified diff between two YAML documents.
func ComputeDiff(left, right string, opts DiffOptions) (*DiffResult, error) {
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(left),
		B:        splitLines(right),
		FromFile: opts.LeftLabel,
		ToFile:   opts.RightLabel,
		Context:  opts.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	result := &DiffResult{
		Unified:        unified,
		HasDifferences: unified != "",
		LeftLabel:      opts.LeftLabel,
		RightLabel:     opts.RightLabel,
	}

	if result.HasDifferences {
		result.Hunks = extractHunks(unified)
	}

	return result, nil
}

// extractHunks splits unified diff output at each "@@" header. The file
// header lines travel with the first hunk.
func extractHunks(unified string) []string {
	var (
		hunks   []string
		current strings.Builder
	)

	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 && strings.Contains(current.String(), "@@") {
			hunks = append(hunks, current.String())
			current.Reset()
		}

		current.WriteString(line)
		current.WriteByte('\n')
	}

	if current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// WriteDiff writes the diff to w, with ANSI colors when color is set.
func WriteDiff(w io.Writer, result *DiffResult, color bool) {
	if !result.HasDifferences {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(result.Unified, "\n"), "\n") {
		code := ""
		if color {
			code = lineColor(line)
		}

		if code == "" {
			_, _ = fmt.Fprintln(w, line)
			continue
		}

		_, _ = fmt.Fprintf(w, "%s%s%s\n", code, line, ansiReset)
	}
}

func lineColor(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return ansiBold
	case strings.HasPrefix(line, "@@"):
		return ansiCyan
	case strings.HasPrefix(line, "-"):
		return ansiRed
	case strings.HasPrefix(line, "+"):
		return ansiGreen
	default:
		return ""
	}
}

// splitLines splits s into lines that keep their trailing newline, as
// difflib expects.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}

	return strings.SplitAfter(s, "\n")
}
