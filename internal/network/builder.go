package network

import (
	"io"
	"log/slog"

	"github.com/roadtrip/roadtrip/internal/alias"
	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/identity"
)

// BuildStats summarises what the builder and loader did with the datasets.
type BuildStats struct {
	BorderRecords    int
	SkippedRecords   int
	Minted           int
	DroppedNeighbors int
	MeasuredEdges    int
	IgnoredDistances int
}

// Builder turns border records into graph edges, registering every alias it
// discovers in the identity table.
type Builder struct {
	table    *identity.Table
	resolver *identity.Resolver
	graph    *Graph
	logger   *slog.Logger
	stats    BuildStats
}

// NewBuilder returns a builder writing into a fresh graph.
func NewBuilder(table *identity.Table, resolver *identity.Resolver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		table:    table,
		resolver: resolver,
		graph:    NewGraph(),
		logger:   logger,
	}
}

// AddBorders ingests border records in order. Every primary country becomes
// a vertex; every resolvable neighbor becomes an edge weighted Unknown.
func (b *Builder) AddBorders(records []domain.BorderRecord) {
	for _, rec := range records {
		b.stats.BorderRecords++
		name := alias.StripArticle(rec.Country)
		from, ok := b.resolveOrMint(name)
		if !ok {
			b.stats.SkippedRecords++
			b.logger.Debug("skipping border record", "country", rec.Country)
			continue
		}
		b.graph.AddVertex(from)

		for _, n := range rec.Neighbors {
			neighbor := alias.StripArticle(alias.StripDistance(n.Name))
			to, ok := b.resolveOrMint(neighbor)
			if !ok {
				b.stats.DroppedNeighbors++
				b.logger.Debug("dropping neighbor", "country", from, "neighbor", n.Name)
				continue
			}
			b.graph.AddEdge(from, to, domain.Unknown)
		}
	}
}

// LoadDistances applies capital distances to the graph built so far.
func (b *Builder) LoadDistances(records []domain.DistanceRecord) {
	measured, ignored := LoadDistances(b.graph, records)
	b.stats.MeasuredEdges += measured
	b.stats.IgnoredDistances += ignored
}

func (b *Builder) resolveOrMint(name string) (string, bool) {
	aliases := alias.Generate(name)
	if len(aliases) == 0 {
		return "", false
	}

	match, ok := b.resolver.Resolve(name, aliases)
	switch {
	case !ok:
		id := b.table.Mint(aliases)
		b.stats.Minted++
		b.logger.Debug("minted provisional country", "name", name, "id", id)
		return id, true
	case !b.table.Has(match.ID):
		b.table.Register(match.ID, aliases, true)
		b.stats.Minted++
		b.logger.Debug("registered override country", "name", name, "id", match.ID)
		return match.ID, true
	}

	for _, a := range aliases {
		b.table.RegisterAlias(match.ID, a)
	}
	if match.Stage != identity.StageExact {
		b.logger.Debug("resolved country", "name", name, "id", match.ID, "stage", match.Stage.String())
	}
	return match.ID, true
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph { return b.graph }

// Stats returns the counters collected so far.
func (b *Builder) Stats() BuildStats { return b.stats }
