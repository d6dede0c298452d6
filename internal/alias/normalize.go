package alias

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	digitRegex      = regexp.MustCompile(`\d+`)
)

const article = "the"

// Squash collapses whitespace and trims the result.
func Squash(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// StripArticle drops the lowercase word "the" wherever it stands on its own,
// so "the Gambia" and "Congo, Republic of the" lose their article while
// "Netherlands" and "The Bahamas" are untouched.
func StripArticle(name string) string {
	fields := strings.Fields(name)
	kept := fields[:0]
	for _, f := range fields {
		if f == article {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// StripDistance keeps the text before the first digit of a neighbor segment:
// "Greece 282 km" becomes "Greece".
func StripDistance(segment string) string {
	return Squash(digitRegex.Split(segment, 2)[0])
}

// Acronym returns the uppercase letters of value: "United States of America"
// gives "USA".
func Acronym(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fold returns a lookup key insensitive to case, diacritics, apostrophe style
// and spacing: "Côte D’Ivoire" and "cote d'ivoire" fold to the same key.
func Fold(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	folded = strings.ReplaceAll(folded, string(typographicApostrophe), string(asciiApostrophe))
	return strings.ToLower(Squash(folded))
}
