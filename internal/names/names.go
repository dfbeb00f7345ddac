package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a player or team name for matching: lowercase, accents
// removed, punctuation dropped, whitespace collapsed
func Normalize(name string) string {
	name = strings.ToLower(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	name, _, _ = transform.String(t, name)

	name = strings.Map(func(r rune) rune {
		if r == '.' || r == '\'' || r == '-' {
			return ' '
		}
		return r
	}, name)

	return strings.Join(strings.Fields(name), " ")
}

// Matches reports whether query is contained in name after normalization.
// An empty query matches everything.
func Matches(name, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Normalize(name), q)
}
