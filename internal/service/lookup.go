package service

import (
	"cmp"
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/biter777/countries"
	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/alias"
)

// minSimilarity discards suggestions that share little more than a letter
// or two with the input.
const minSimilarity = 0.7

// Lookup resolves a user supplied name to a canonical id. The name is
// matched exactly, then without the article "the", then case and diacritic
// insensitively, and finally as an ISO 3166 name or code.
func (rt *RoadTrip) Lookup(name string) (string, error) {
	name = alias.Squash(name)
	if name == "" {
		return "", errors.Wrap(ErrUnknownCountry, "empty name")
	}

	if id, ok := rt.table.Lookup(name); ok {
		return id, nil
	}
	if id, ok := rt.table.LookupStripped(name); ok {
		return id, nil
	}
	if id, ok := rt.table.LookupFolded(alias.StripArticle(name)); ok {
		return id, nil
	}
	if id, ok := rt.lookupISO(name); ok {
		return id, nil
	}
	return "", errors.Wrapf(ErrUnknownCountry, "%q", name)
}

// IsValidCountry reports whether name resolves to a country of the graph.
func (rt *RoadTrip) IsValidCountry(name string) bool {
	id, err := rt.Lookup(name)
	return err == nil && rt.graph.HasVertex(id)
}

func (rt *RoadTrip) lookupISO(name string) (string, bool) {
	code := countries.ByName(name)
	if code == countries.Unknown {
		return "", false
	}
	// ISO alpha-3 codes are not table ids: "MAC" is Macao in ISO but
	// Macedonia in the state name dataset. Only the ISO name is trusted.
	return rt.table.LookupFolded(code.Info().Name)
}

type suggestion struct {
	name  string
	score float64
	rank  int
}

// Suggest returns the display names closest to name by Jaro-Winkler
// similarity, best first. Results are cached per folded input.
func (rt *RoadTrip) Suggest(name string) []string {
	key := alias.Fold(name)
	if key == "" || rt.suggestions <= 0 {
		return nil
	}
	if cached, ok := rt.cache.Get(key); ok {
		return slices.Clone(cached)
	}

	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	var ranked []suggestion
	for i, c := range rt.Countries() {
		best := 0.0
		for _, a := range c.Aliases {
			if s := strutil.Similarity(key, alias.Fold(a), jw); s > best {
				best = s
			}
		}
		if best >= minSimilarity {
			ranked = append(ranked, suggestion{name: c.DisplayName, score: best, rank: i})
		}
	}
	slices.SortFunc(ranked, func(a, b suggestion) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.rank, b.rank)
	})

	out := make([]string, 0, rt.suggestions)
	for _, s := range ranked {
		if len(out) == rt.suggestions {
			break
		}
		out = append(out, s.name)
	}
	rt.cache.Add(key, out)
	return slices.Clone(out)
}
