package service

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roadtrip/roadtrip/internal/dataset"
	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/identity"
	"github.com/roadtrip/roadtrip/internal/network"
)

// ErrUnknownCountry is returned when a user supplied name matches no country.
var ErrUnknownCountry = errors.New("unknown country")

const (
	defaultSuggestions         = 3
	defaultSuggestionCacheSize = 256
)

// Options tunes how the datasets are resolved and queried.
type Options struct {
	// CurrentDate selects the identity records still in effect.
	CurrentDate string
	// Overrides is consulted after every resolver heuristic failed. Nil
	// means the built-in table.
	Overrides           *identity.Overrides
	Suggestions         int
	SuggestionCacheSize int
	Logger              *slog.Logger
}

// RoadTrip answers route queries over the resolved border graph. It is
// immutable once built.
type RoadTrip struct {
	table       *identity.Table
	graph       *network.Graph
	stats       network.BuildStats
	logger      *slog.Logger
	suggestions int
	cache       *lru.Cache[string, []string]
}

// Load reads the datasets at paths and builds a RoadTrip from them.
func Load(paths dataset.Paths, opts Options) (*RoadTrip, error) {
	ds, err := dataset.Load(paths)
	if err != nil {
		return nil, err
	}
	return ResolveAndBuildGraph(ds, opts)
}

// ResolveAndBuildGraph bootstraps the identity table, ingests the borders
// and applies the capital distances.
func ResolveAndBuildGraph(ds dataset.Dataset, opts Options) (*RoadTrip, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.CurrentDate == "" {
		opts.CurrentDate = identity.DefaultCurrentDate
	}
	if opts.Suggestions == 0 {
		opts.Suggestions = defaultSuggestions
	}
	if opts.SuggestionCacheSize <= 0 {
		opts.SuggestionCacheSize = defaultSuggestionCacheSize
	}

	table := identity.NewTable()
	kept := table.Bootstrap(ds.Identities, opts.CurrentDate)
	if kept == 0 {
		return nil, errors.Newf("no identity record ends on %s", opts.CurrentDate)
	}

	builder := network.NewBuilder(table, identity.NewResolver(table, opts.Overrides), logger)
	builder.AddBorders(ds.Borders)
	builder.LoadDistances(ds.Distances)

	cache, err := lru.New[string, []string](opts.SuggestionCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create suggestion cache")
	}

	stats := builder.Stats()
	g := builder.Graph()
	logger.Info("border graph built",
		"identities", kept,
		"countries", g.Order(),
		"borders", g.Size(),
		"minted", stats.Minted,
		"dropped_neighbors", stats.DroppedNeighbors,
		"measured", stats.MeasuredEdges,
		"ignored_distances", stats.IgnoredDistances,
	)

	return &RoadTrip{
		table:       table,
		graph:       g,
		stats:       stats,
		logger:      logger,
		suggestions: opts.Suggestions,
		cache:       cache,
	}, nil
}

// ShortestPath returns the cheapest route between two user supplied names.
// An empty route without error means the countries are not connected or
// are the same country.
func (rt *RoadTrip) ShortestPath(from, to string) (domain.Route, error) {
	src, err := rt.Lookup(from)
	if err != nil {
		return domain.Route{}, err
	}
	dst, err := rt.Lookup(to)
	if err != nil {
		return domain.Route{}, err
	}

	route := domain.Route{
		From:  rt.table.DisplayName(src),
		To:    rt.table.DisplayName(dst),
		Total: domain.Known(0),
	}
	if src == dst {
		return route, nil
	}
	if !rt.graph.HasVertex(src) || !rt.graph.HasVertex(dst) {
		route.Total = domain.Unknown
		return route, nil
	}

	paths, err := network.ShortestPaths(rt.graph, src)
	if err != nil {
		return domain.Route{}, err
	}
	ids := paths.PathTo(dst)
	if len(ids) == 0 {
		route.Total = domain.Unknown
		return route, nil
	}
	for i := 1; i < len(ids); i++ {
		w, _ := rt.graph.Weight(ids[i-1], ids[i])
		route.Hops = append(route.Hops, domain.Hop{
			From:     rt.table.DisplayName(ids[i-1]),
			To:       rt.table.DisplayName(ids[i]),
			Distance: w,
		})
		route.Total = route.Total.Add(w)
	}
	rt.logger.Debug("route computed", "from", src, "to", dst, "hops", len(route.Hops), "total", route.Total.String())
	return route, nil
}

// DirectDistance returns the weight of the border from one country to a
// neighbor. It is Unknown when either name is unknown, the countries do not
// share a border or the border was never measured.
func (rt *RoadTrip) DirectDistance(from, to string) domain.Distance {
	src, err := rt.Lookup(from)
	if err != nil {
		return domain.Unknown
	}
	dst, err := rt.Lookup(to)
	if err != nil {
		return domain.Unknown
	}
	w, _ := rt.graph.Weight(src, dst)
	return w
}

// FormatRoute renders a route hop by hop as "A --> B (D km.)", looking up
// each hop's distance again.
func (rt *RoadTrip) FormatRoute(route domain.Route) []string {
	fresh := domain.Route{From: route.From, To: route.To, Hops: make([]domain.Hop, 0, len(route.Hops))}
	for _, h := range route.Hops {
		fresh.Hops = append(fresh.Hops, domain.Hop{From: h.From, To: h.To, Distance: rt.DirectDistance(h.From, h.To)})
	}
	return fresh.Lines()
}

// Countries returns the canonical countries that are part of the graph, in
// registration order.
func (rt *RoadTrip) Countries() []domain.Country {
	var out []domain.Country
	for _, c := range rt.table.Countries() {
		if rt.graph.HasVertex(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Country returns the canonical country registered under id.
func (rt *RoadTrip) Country(id string) (domain.Country, bool) {
	return rt.table.ByID(id)
}

// Graph exposes the resolved border graph. Callers must not modify it.
func (rt *RoadTrip) Graph() *network.Graph { return rt.graph }

// Stats reports what happened while building the graph.
func (rt *RoadTrip) Stats() network.BuildStats { return rt.stats }
