// Package diff computes line-oriented edit scripts between two text blobs.
//
// The algorithm is a greedy two-cursor line alignment, not a classic LCS:
// it is deterministic and fast but not guaranteed to produce a minimal
// script. That approximation is intentional; version history views only
// need a readable per-line picture, not an optimal one.
package diff

import "strings"

// Kind classifies one emitted line.
type Kind string

const (
	Added     Kind = "added"
	Removed   Kind = "removed"
	Unchanged Kind = "unchanged"
)

// Line is a single record of the edit script. Line numbers are 1-based in
// the array the record originates from: OldNumber is set for removed and
// unchanged lines, NewNumber for added and unchanged lines; zero means
// not applicable.
type Line struct {
	Kind      Kind
	Content   string
	OldNumber int
	NewNumber int
}

// Compute returns the edit script that turns oldText into newText.
//
// It is a total function: any two strings (including empty ones) produce a
// valid script. Texts are split on '\n' with no trailing-newline
// normalization, so a trailing newline contributes a trailing empty line.
func Compute(oldText, newText string) []Line {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	// An empty text contributes no lines when the other side has content;
	// strings.Split would otherwise yield a phantom empty line. Empty old
	// text therefore diffs to a pure-added script, empty new text to a
	// pure-removed one.
	if oldText == "" && newText != "" {
		oldLines = nil
	}
	if newText == "" && oldText != "" {
		newLines = nil
	}

	result := make([]Line, 0, len(oldLines)+len(newLines))
	i, j := 0, 0

	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			result = append(result, Line{Kind: Added, Content: newLines[j], NewNumber: j + 1})
			j++

		case j >= len(newLines):
			result = append(result, Line{Kind: Removed, Content: oldLines[i], OldNumber: i + 1})
			i++

		case oldLines[i] == newLines[j]:
			result = append(result, Line{Kind: Unchanged, Content: oldLines[i], OldNumber: i + 1, NewNumber: j + 1})
			i++
			j++

		default:
			// Look ahead on both sides for the nearest re-occurrence.
			oldInNew := indexFrom(newLines, j+1, oldLines[i])
			newInOld := indexFrom(oldLines, i+1, newLines[j])

			switch {
			case oldInNew >= 0 && (newInOld < 0 || oldInNew-j < newInOld-i):
				// The current old line shows up again in new first: the
				// new line in front of it was inserted.
				result = append(result, Line{Kind: Added, Content: newLines[j], NewNumber: j + 1})
				j++

			case newInOld >= 0:
				// The current new line shows up later in old: the old
				// line in front of it was deleted.
				result = append(result, Line{Kind: Removed, Content: oldLines[i], OldNumber: i + 1})
				i++

			default:
				// Neither side re-occurs: straight substitution.
				result = append(result, Line{Kind: Removed, Content: oldLines[i], OldNumber: i + 1})
				result = append(result, Line{Kind: Added, Content: newLines[j], NewNumber: j + 1})
				i++
				j++
			}
		}
	}

	return result
}

// indexFrom returns the index of the first occurrence of s in lines at or
// after position from, or -1 when absent.
func indexFrom(lines []string, from int, s string) int {
	for k := from; k < len(lines); k++ {
		if lines[k] == s {
			return k
		}
	}
	return -1
}
