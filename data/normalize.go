package data

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nameReplacer = strings.NewReplacer(" ", "-", ".", "", "'", "", "’", "")

// NormalizeName turns a display name into the lowercase, ASCII slug used by
// PokéAPI and the cache ("Mr. Mime" -> "mr-mime", "Flabébé" -> "flabebe").
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}
	return nameReplacer.Replace(name)
}
