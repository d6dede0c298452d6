package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/roadtrip/roadtrip/internal/alias"
)

// Stage names the resolver heuristic that produced a match.
type Stage int

const (
	StageNone Stage = iota
	StageExact
	StageContains
	StageAcronym
	StageTrimmed
	StageWord
	StageOverride
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageContains:
		return "contains"
	case StageAcronym:
		return "acronym"
	case StageTrimmed:
		return "trimmed"
	case StageWord:
		return "word"
	case StageOverride:
		return "override"
	default:
		return "none"
	}
}

// minReverseContainment is the shortest registered alias accepted when the
// candidate contains it rather than the other way round.
const minReverseContainment = 4

// Match is a successful resolution.
type Match struct {
	ID    string
	Stage Stage
}

// Resolver maps surface names onto canonical ids. It favours false
// positives over missed joins.
type Resolver struct {
	table     *Table
	overrides *Overrides
}

// NewResolver returns a resolver over table. A nil overrides uses the
// built-in table.
func NewResolver(table *Table, overrides *Overrides) *Resolver {
	if overrides == nil {
		overrides = DefaultOverrides()
	}
	return &Resolver{table: table, overrides: overrides}
}

// Resolve finds the canonical id of name given its generated aliases. Each
// stage is tried against every candidate before the next stage runs:
// exact, containment, acronym, trailing-character trim, single word and
// finally the override table. The id of an override match may not be
// registered yet.
func (r *Resolver) Resolve(name string, aliases []string) (Match, bool) {
	candidates := candidateList(name, aliases)
	if len(candidates) == 0 {
		return Match{}, false
	}

	stages := []struct {
		stage Stage
		try   func(string) (string, bool)
	}{
		{StageExact, r.exact},
		{StageContains, r.contains},
		{StageAcronym, r.acronym},
		{StageTrimmed, r.trimmed},
		{StageWord, r.word},
		{StageOverride, r.overrides.Lookup},
	}
	for _, s := range stages {
		for _, c := range candidates {
			if id, ok := s.try(c); ok {
				return Match{ID: id, Stage: s.stage}, true
			}
		}
	}
	return Match{}, false
}

func (r *Resolver) exact(c string) (string, bool) {
	if id, ok := r.table.Lookup(c); ok {
		return id, true
	}
	return r.table.LookupStripped(c)
}

func (r *Resolver) contains(c string) (string, bool) {
	for _, id := range r.table.order {
		for _, s := range r.table.aliases(id) {
			if strings.Contains(s, c) {
				return id, true
			}
			if utf8.RuneCountInString(s) >= minReverseContainment && containsWord(c, s) {
				return id, true
			}
		}
	}
	return "", false
}

// acronym matches "USA" against "United States of America" and also "US",
// registering the full acronym on the way.
func (r *Resolver) acronym(c string) (string, bool) {
	for _, id := range r.table.order {
		for _, s := range r.table.aliases(id) {
			upper := alias.Acronym(s)
			if upper == "" {
				continue
			}
			if upper == c {
				return id, true
			}
			_, size := utf8.DecodeLastRuneInString(upper)
			if len(upper) > size && upper[:len(upper)-size] == c {
				r.table.RegisterAlias(id, upper)
				return id, true
			}
		}
	}
	return "", false
}

func (r *Resolver) trimmed(c string) (string, bool) {
	_, size := utf8.DecodeLastRuneInString(c)
	short := c[:len(c)-size]
	if short == "" {
		return "", false
	}
	for _, id := range r.table.order {
		for _, s := range r.table.aliases(id) {
			if s == short || strings.Contains(s+" ", short+" ") {
				return id, true
			}
		}
	}
	return "", false
}

func (r *Resolver) word(c string) (string, bool) {
	words := strings.Fields(c)
	if len(words) < 2 {
		return "", false
	}
	for _, w := range words {
		if id, ok := r.table.Lookup(w); ok {
			return id, true
		}
	}
	return "", false
}

func candidateList(name string, aliases []string) []string {
	out := make([]string, 0, len(aliases)+1)
	seen := make(map[string]struct{}, len(aliases)+1)
	all := make([]string, 0, len(aliases)+1)
	all = append(all, aliases...)
	all = append(all, name)
	for _, a := range all {
		a = alias.Squash(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// containsWord reports whether word occurs in text bounded by spaces or
// the ends of text.
func containsWord(text, word string) bool {
	for from := 0; from <= len(text)-len(word); {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(word)
		if (start == 0 || text[start-1] == ' ') && (end == len(text) || text[end] == ' ') {
			return true
		}
		from = start + 1
	}
	return false
}
