package network

import (
	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
)

var (
	// ErrVertexNotFound is returned when an id is not a vertex of the graph.
	ErrVertexNotFound = errors.New("vertex not found")
	// ErrEmptySource is returned when no source id is supplied.
	ErrEmptySource = errors.New("source vertex is required")
)

// Edge is a directed border from one country to a neighbor.
type Edge struct {
	From   string
	To     string
	Weight domain.Distance
}

// Graph is a directed weighted graph. Vertices and each vertex's outgoing
// edges keep insertion order.
type Graph struct {
	order []string
	adj   map[string]*adjacency
}

type adjacency struct {
	order   []string
	weights map[string]domain.Distance
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]*adjacency)}
}

// AddVertex adds id and reports whether it was new.
func (g *Graph) AddVertex(id string) bool {
	if _, ok := g.adj[id]; ok {
		return false
	}
	g.adj[id] = &adjacency{weights: make(map[string]domain.Distance)}
	g.order = append(g.order, id)
	return true
}

// HasVertex reports whether id is a vertex.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// AddEdge inserts or replaces the edge from -> to. Missing endpoints are
// added as vertices.
func (g *Graph) AddEdge(from, to string, weight domain.Distance) {
	g.AddVertex(from)
	g.AddVertex(to)
	a := g.adj[from]
	if _, ok := a.weights[to]; !ok {
		a.order = append(a.order, to)
	}
	a.weights[to] = weight
}

// SetWeight overwrites the weight of an existing edge. It reports false and
// leaves the graph unchanged when the edge does not exist.
func (g *Graph) SetWeight(from, to string, weight domain.Distance) bool {
	a, ok := g.adj[from]
	if !ok {
		return false
	}
	if _, ok := a.weights[to]; !ok {
		return false
	}
	a.weights[to] = weight
	return true
}

// Weight returns the weight of the edge from -> to.
func (g *Graph) Weight(from, to string) (domain.Distance, bool) {
	a, ok := g.adj[from]
	if !ok {
		return domain.Unknown, false
	}
	w, ok := a.weights[to]
	return w, ok
}

// Neighbors returns the outgoing edges of id in insertion order.
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	a, ok := g.adj[id]
	if !ok {
		return nil, errors.Wrapf(ErrVertexNotFound, "neighbors of %q", id)
	}
	edges := make([]Edge, 0, len(a.order))
	for _, to := range a.order {
		edges = append(edges, Edge{From: id, To: to, Weight: a.weights[to]})
	}
	return edges, nil
}

// Vertices returns all vertex ids in insertion order.
func (g *Graph) Vertices() []string {
	return append([]string(nil), g.order...)
}

// Edges returns every edge, grouped by source in vertex order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, id := range g.order {
		out, _ := g.Neighbors(id)
		edges = append(edges, out...)
	}
	return edges
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.order) }

// Size returns the number of edges.
func (g *Graph) Size() int {
	n := 0
	for _, a := range g.adj {
		n += len(a.order)
	}
	return n
}
