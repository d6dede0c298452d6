package repository

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/graphstore"
)

var (
	// ErrMissingID is returned when a country or border lacks an id.
	ErrMissingID = errors.New("country id is required")
)

// Repository writes the resolved country graph to a graph database.
type Repository struct {
	client graphstore.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graphstore.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraint on country ids.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.ExecuteWrite(ctx, countryConstraintCypher, nil); err != nil {
		return errors.Wrap(err, "create country constraint")
	}
	return nil
}

// UpsertCountry ensures a country node exists with the latest name and aliases.
func (r *Repository) UpsertCountry(ctx context.Context, c domain.Country) error {
	if c.ID == "" {
		return ErrMissingID
	}

	params := map[string]any{
		"id":    c.ID,
		"props": countryProperties(c),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertCountryCypher, params); err != nil {
		return errors.Wrapf(err, "upsert country %s", c.ID)
	}
	return nil
}

// UpsertBorders replaces the outgoing BORDERS relationships of one country.
// Both endpoints are merged so the hops may reference countries that have
// not been written yet.
func (r *Repository) UpsertBorders(ctx context.Context, id string, hops []domain.Hop) error {
	if id == "" {
		return ErrMissingID
	}

	borders := make([]map[string]any, 0, len(hops))
	for _, h := range hops {
		if h.From != id {
			return errors.Newf("border %s -> %s does not start at %s", h.From, h.To, id)
		}
		borders = append(borders, borderParams(h))
	}

	params := map[string]any{
		"id":      id,
		"borders": borders,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertBordersCypher, params); err != nil {
		return errors.Wrapf(err, "upsert borders of %s", id)
	}
	return nil
}

func countryProperties(c domain.Country) map[string]any {
	return map[string]any{
		"name":        c.DisplayName,
		"aliases":     append([]string(nil), c.Aliases...),
		"provisional": c.Provisional,
	}
}

func borderParams(h domain.Hop) map[string]any {
	km, known := h.Distance.KM()
	params := map[string]any{
		"to":    h.To,
		"known": known,
		"km":    nil,
	}
	if known {
		params["km"] = int64(km)
	}
	return params
}

const countryConstraintCypher = `
CREATE CONSTRAINT country_id IF NOT EXISTS
FOR (c:Country) REQUIRE c.id IS UNIQUE
`

const upsertCountryCypher = `
MERGE (c:Country {id: $id})
SET c += $props
`

const upsertBordersCypher = `
MERGE (src:Country {id: $id})
WITH src
OPTIONAL MATCH (src)-[old:BORDERS]->()
DELETE old
WITH DISTINCT src
FOREACH (b IN $borders |
	MERGE (dst:Country {id: b.to})
	MERGE (src)-[rel:BORDERS]->(dst)
	SET rel.km = b.km,
		rel.known = b.known
)
`
