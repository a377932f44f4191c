package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases, strips diacritics and joins words with hyphens.
// "Vịnh Hạ Long" becomes "vinh-ha-long".
func Slugify(value string) string {
	folded := strings.NewReplacer("đ", "d", "Đ", "d").Replace(value)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}
	slug := slugSeparator.ReplaceAllString(strings.ToLower(stripped), "-")
	return strings.Trim(slug, "-")
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
