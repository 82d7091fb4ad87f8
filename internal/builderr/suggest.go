package builderr

import (
	"fmt"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance bounds how different a candidate may be and still be
// offered as a suggestion.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to name, or "" when none is close
// enough to be a plausible typo.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		d := levenshtein.Distance(name, c, nil)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Hint formats a " (did you mean %q?)" suffix, or "" when there is no
// suggestion.
func Hint(name string, candidates []string) string {
	s := Suggest(name, candidates)
	if s == "" || s == name {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", s)
}
