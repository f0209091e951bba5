package driver

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff of before→after labelled with name.
// It returns "" when the inputs are equal.
func UnifiedDiff(name string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  3,
	})
}
