package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_IdenticalTexts(t *testing.T) {
	got := Compute("a\nb\nc", "a\nb\nc")

	require.Len(t, got, 3)
	for n, line := range got {
		assert.Equal(t, Unchanged, line.Kind)
		assert.Equal(t, n+1, line.OldNumber)
		assert.Equal(t, n+1, line.NewNumber)
	}
	assert.Equal(t, "a", got[0].Content)
	assert.Equal(t, "b", got[1].Content)
	assert.Equal(t, "c", got[2].Content)
}

func TestCompute_InsertedLine(t *testing.T) {
	got := Compute("a\nb", "a\nx\nb")

	require.Len(t, got, 3)
	assert.Equal(t, Line{Kind: Unchanged, Content: "a", OldNumber: 1, NewNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Added, Content: "x", NewNumber: 2}, got[1])
	assert.Equal(t, Line{Kind: Unchanged, Content: "b", OldNumber: 2, NewNumber: 3}, got[2])
}

func TestCompute_RemovedLine(t *testing.T) {
	got := Compute("a\nb\nc", "a\nc")

	require.Len(t, got, 3)
	assert.Equal(t, Line{Kind: Unchanged, Content: "a", OldNumber: 1, NewNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Removed, Content: "b", OldNumber: 2}, got[1])
	assert.Equal(t, Line{Kind: Unchanged, Content: "c", OldNumber: 3, NewNumber: 2}, got[2])
}

func TestCompute_Substitution(t *testing.T) {
	got := Compute("a\nb\nc", "a\nx\nc")

	require.Len(t, got, 4)
	assert.Equal(t, Line{Kind: Removed, Content: "b", OldNumber: 2}, got[1])
	assert.Equal(t, Line{Kind: Added, Content: "x", NewNumber: 2}, got[2])
}

func TestCompute_EmptyOldText(t *testing.T) {
	// Nothing existed before, so every new line is an addition.
	got := Compute("", "a\nb")

	require.Len(t, got, 2)
	assert.Equal(t, Line{Kind: Added, Content: "a", NewNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Added, Content: "b", NewNumber: 2}, got[1])
}

func TestCompute_EmptyOldTextLeadingBlankLine(t *testing.T) {
	got := Compute("", "\nnew line")

	require.Len(t, got, 2)
	assert.Equal(t, Line{Kind: Added, Content: "", NewNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Added, Content: "new line", NewNumber: 2}, got[1])
}

func TestCompute_EmptyNewText(t *testing.T) {
	got := Compute("a\nb", "")

	require.Len(t, got, 2)
	assert.Equal(t, Line{Kind: Removed, Content: "a", OldNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Removed, Content: "b", OldNumber: 2}, got[1])
}

func TestCompute_EverythingReplaced(t *testing.T) {
	got := Compute("one", "two")

	require.Len(t, got, 2)
	assert.Equal(t, Line{Kind: Removed, Content: "one", OldNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Added, Content: "two", NewNumber: 1}, got[1])
}

func TestCompute_TrailingNewlineNotNormalized(t *testing.T) {
	got := Compute("a", "a\n")

	require.Len(t, got, 2)
	assert.Equal(t, Line{Kind: Unchanged, Content: "a", OldNumber: 1, NewNumber: 1}, got[0])
	assert.Equal(t, Line{Kind: Added, Content: "", NewNumber: 2}, got[1])
}

func TestCompute_BothEmpty(t *testing.T) {
	got := Compute("", "")
	require.Len(t, got, 1)
	assert.Equal(t, Line{Kind: Unchanged, Content: "", OldNumber: 1, NewNumber: 1}, got[0])
}

func TestCompute_Deterministic(t *testing.T) {
	a, b := "x\ny\nz\nw", "y\nq\nx\nw"
	first := Compute(a, b)
	for range 5 {
		assert.Equal(t, first, Compute(a, b))
	}
}
