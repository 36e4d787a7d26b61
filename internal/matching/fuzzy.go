package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a case-insensitive edit similarity in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// BestMatch returns the candidate whose key is most similar to query.
// Ties keep the earliest candidate. ok is false for an empty slice.
func BestMatch[T any](query string, candidates []T, key func(T) string) (best T, ok bool) {
	bestScore := -1.0
	for _, c := range candidates {
		score := Similarity(query, key(c))
		if score > bestScore {
			best = c
			bestScore = score
			ok = true
		}
	}
	return best, ok
}
