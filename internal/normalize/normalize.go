// Package normalize folds free-form crop and location strings into stable
// lookup keys. Region names arrive in whatever form users type them
// ("Nashik", "nashik, maharashtra", "Nāshik"), so table lookups key on the
// normalized form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string.
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Key normalizes a free-form name into a lookup key: diacritics stripped,
// lowercased, inner whitespace folded to single spaces.
func Key(s string) string {
	s = RemoveDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// RegionKey extracts the primary region token from a "City, State" style
// location and normalizes it. "Delhi, India" and "delhi" map to the same key.
func RegionKey(location string) string {
	primary := location
	if idx := strings.IndexByte(location, ','); idx >= 0 {
		primary = location[:idx]
	}
	return Key(primary)
}
