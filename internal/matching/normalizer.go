// Package matching provides team-name normalization and fuzzy matching
package matching

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

	turkishLetters = strings.NewReplacer(
		"ç", "c", "Ç", "C",
		"ğ", "g", "Ğ", "G",
		"ı", "i", "İ", "I",
		"ö", "o", "Ö", "O",
		"ş", "s", "Ş", "S",
		"ü", "u", "Ü", "U",
	)
)

// Normalize lower-cases and trims a name
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// StripAccents removes combining marks after canonical decomposition
// and recomposes what is left.
func StripAccents(raw string) string {
	// transform.Chain keeps state, so a fresh chain is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, raw)
	if err != nil {
		return raw
	}
	return out
}

// SimplifyLocaleLetters maps Turkish letters to their ASCII equivalents
func SimplifyLocaleLetters(raw string) string {
	return turkishLetters.Replace(raw)
}

// Slugify builds a dedup key: lower-case ASCII alphanumerics separated by
// single hyphens. Not meant for display or querying.
func Slugify(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CanonicalTeamKey returns the registry key of a team, team:<cc>:<slug>.
// An empty country code becomes "xx".
func CanonicalTeamKey(countryCode, name string) string {
	cc := Normalize(countryCode)
	if cc == "" {
		cc = "xx"
	}
	return fmt.Sprintf("team:%s:%s", cc, Slugify(name))
}
