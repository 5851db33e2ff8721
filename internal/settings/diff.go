package settings

import (
	"strings"

	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff between the encoded forms of before and after.
// Unchanged lines are prefixed with two spaces, removals with "- " and
// additions with "+ ". An empty string means no change.
func Diff(before, after merge.Document) (string, error) {
	a, err := Encode(before)
	if err != nil {
		return "", err
	}
	b, err := Encode(after)
	if err != nil {
		return "", err
	}
	if string(a) == string(b) {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	ca, cb, lineArray := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), nil
}
