package compare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Identical(t *testing.T) {
	doc := "filter: sex=female\nmatched: 3\n"
	result, err := ComputeDiff(doc, doc, DefaultDiffOptions())
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
	assert.Empty(t, result.Hunks)
}

func TestComputeDiff_Different(t *testing.T) {
	left := "filter: sex=female\nloaded: true\nmatched: 3\n"
	right := "filter: sex=male\nloaded: true\nmatched: 3\n"
	result, err := ComputeDiff(left, right, DefaultDiffOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	require.Len(t, result.Hunks, 1)
	assert.Contains(t, result.Unified, "-filter: sex=female")
	assert.Contains(t, result.Unified, "+filter: sex=male")
}

func TestComputeDiff_Labels(t *testing.T) {
	opts := DefaultDiffOptions()
	opts.LeftLabel = "women"
	opts.RightLabel = "men"
	result, err := ComputeDiff("a: 1\n", "a: 2\n", opts)
	require.NoError(t, err)
	assert.Contains(t, result.Unified, "--- women")
	assert.Contains(t, result.Unified, "+++ men")
	assert.Equal(t, "women", result.LeftLabel)
}

func TestComputeDiff_EmptySides(t *testing.T) {
	result, err := ComputeDiff("", "a: 1\n", DefaultDiffOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)

	result, err = ComputeDiff("a: 1\n", "", DefaultDiffOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
}

func TestExtractHunks_Multiple(t *testing.T) {
	opts := DefaultDiffOptions()
	opts.Context = 0
	result, err := ComputeDiff("a\nb\nc\nd\ne\n", "A\nb\nc\nd\nE\n", opts)
	require.NoError(t, err)
	require.Len(t, result.Hunks, 2)
	assert.Contains(t, result.Hunks[0], "--- left")
	assert.Contains(t, result.Hunks[1], "+E")
}

func TestWriteDiff_NoColor(t *testing.T) {
	result, err := ComputeDiff("line1\nline2\n", "line1\nline3\n", DefaultDiffOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteDiff(&buf, result, false)
	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "-line2")
	assert.Contains(t, out, "+line3")
}

func TestWriteDiff_WithColor(t *testing.T) {
	result, err := ComputeDiff("line1\nline2\n", "line1\nline3\n", DefaultDiffOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteDiff(&buf, result, true)
	out := buf.String()
	assert.Contains(t, out, ansiRed+"-line2"+ansiReset)
	assert.Contains(t, out, ansiGreen+"+line3"+ansiReset)
	assert.Contains(t, out, " line1\n")
}

func TestWriteDiff_NoDifferences(t *testing.T) {
	result, err := ComputeDiff("same\n", "same\n", DefaultDiffOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteDiff(&buf, result, false)
	assert.Contains(t, buf.String(), "No differences")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n", "c"}, splitLines("a\nb\nc"))
	assert.Equal(t, []string{"a\n", "b\n", "c\n", ""}, splitLines("a\nb\nc\n"))
	assert.Equal(t, []string{""}, splitLines(""))
}
