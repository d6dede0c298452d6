package alias

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// "Korea, South" but not "Gambia, The".
	invertedRegex = regexp.MustCompile(`, [A-SU-Z]`)
	commaRegex    = regexp.MustCompile(`,\s+`)
	andRegex      = regexp.MustCompile(`\s+and\s+`)
)

const (
	asciiApostrophe       = '\''
	typographicApostrophe = '’'
)

// Generate returns the candidate spellings for a name found in the border
// dataset. The first rule that applies wins:
//
//  1. "X, Y" with Y capitalised (other than "The")  -> [original, "Y X"]
//  2. apostrophe                                    -> [original, case-flipped variant]
//  3. "P (B) S"                                     -> ["P S", "B S", original]
//  4. any other "X, Y"                              -> [original, "X", "Y X"]
//  5. "X and Y"                                     -> [original, "X-Y"]
//
// Names matching no rule yield [original].
func Generate(name string) []string {
	name = Squash(name)
	if name == "" {
		return nil
	}

	if invertedRegex.MatchString(name) {
		if parts := commaRegex.Split(name, -1); len(parts) > 1 {
			return unique(name, join(parts[1], parts[0]))
		}
	}

	if hasApostrophe(name) {
		return unique(name, FlipApostrophe(name))
	}

	if parts, ok := brackets(name); ok {
		return parts
	}

	if parts := commaRegex.Split(name, -1); len(parts) > 1 {
		return unique(name, Squash(parts[0]), join(parts[1], parts[0]))
	}

	if parts := andRegex.Split(name, -1); len(parts) > 1 {
		return unique(name, Squash(parts[0])+"-"+Squash(parts[1]))
	}

	return []string{name}
}

// Bootstrap returns the aliases of a name from the identity dataset. A
// parenthetical alternate wins over a slash-separated dual name; the first
// element is the display name.
func Bootstrap(name string) []string {
	name = Squash(name)
	if name == "" {
		return nil
	}
	if parts, ok := brackets(name); ok {
		return parts
	}
	if parts := strings.Split(name, "/"); len(parts) > 1 {
		return unique(parts[0], parts[1])
	}
	return []string{name}
}

// CommaSwap turns "Korea, South" into "South Korea". ok is false when the
// name has no ", " separator.
func CommaSwap(name string) (string, bool) {
	parts := commaRegex.Split(name, -1)
	if len(parts) < 2 {
		return "", false
	}
	return join(parts[1], parts[0]), true
}

// HyphenToAnd turns "Bosnia-Herzegovina" into "Bosnia and Herzegovina". ok
// is false when the name has no hyphen.
func HyphenToAnd(name string) (string, bool) {
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return "", false
	}
	return Squash(parts[0]) + " and " + Squash(parts[1]), true
}

// FlipApostrophe flips the case of the letter right before the first
// apostrophe and swaps the apostrophe style: "Cote d'Ivoire" becomes
// "Cote D’Ivoire" and back.
func FlipApostrophe(name string) string {
	idx := strings.IndexFunc(name, isApostrophe)
	if idx <= 0 {
		return name
	}
	prev, size := utf8.DecodeLastRuneInString(name[:idx])
	flipped := unicode.ToUpper(prev)
	if unicode.IsUpper(prev) {
		flipped = unicode.ToLower(prev)
	}
	apostrophe, width := utf8.DecodeRuneInString(name[idx:])
	swapped := asciiApostrophe
	if apostrophe == asciiApostrophe {
		swapped = typographicApostrophe
	}
	return name[:idx-size] + string(flipped) + string(swapped) + name[idx+width:]
}

// brackets splits "P (B) S" into ["P S", "B S", original]. ok is false when
// the name has no opening parenthesis.
func brackets(name string) ([]string, bool) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return nil, false
	}
	prefix := name[:open]
	rest := name[open+1:]
	inner, suffix := rest, ""
	if end := strings.IndexByte(rest, ')'); end >= 0 {
		inner, suffix = rest[:end], rest[end+1:]
	}
	return unique(join(prefix, suffix), join(inner, suffix), name), true
}

func hasApostrophe(name string) bool {
	return strings.IndexFunc(name, isApostrophe) >= 0
}

func isApostrophe(r rune) bool {
	return r == asciiApostrophe || r == typographicApostrophe
}

func join(first, second string) string {
	return Squash(Squash(first) + " " + Squash(second))
}

func unique(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
