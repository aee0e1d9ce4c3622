// Package diff renders line-oriented differences between two texts.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified compares expected and actual line by line and renders the result
// with "-", "+" and " " prefixes under ---/+++ headers. Identical inputs
// yield an empty string. Output longer than 10,000 lines is truncated.
func Unified(expected, actual, expectedLabel, actualLabel string) string {
	if expected == actual {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", expectedLabel, actualLabel)

	written := 2
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix + line + "\n")
			written++
		}
	}
	return buf.String()
}

// Changes counts the lines only in expected and only in actual.
func Changes(expected, actual string) (removed, added int) {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(expected, actual)
	for _, d := range dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray) {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed += len(splitLines(d.Text))
		case diffmatchpatch.DiffInsert:
			added += len(splitLines(d.Text))
		}
	}
	return removed, added
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
