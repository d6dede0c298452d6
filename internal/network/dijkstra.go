package network

import (
	"container/heap"

	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
)

// Paths is the result of a single-source shortest path run.
type Paths struct {
	Source string
	// Dist holds the best cost of every reached vertex. Unreached vertices
	// are absent. A cost is Unknown when every path to the vertex crosses
	// a border without a measured distance.
	Dist map[string]domain.Distance
	// Prev maps a reached vertex to its predecessor on the best path.
	Prev map[string]string
}

// ShortestPaths runs Dijkstra from source over g. Unknown edges make the
// path cost Unknown, which orders after every known cost, so they are only
// used when no fully measured path exists. Relaxation is strict, and ties
// are broken by discovery order. The run is exhaustive.
func ShortestPaths(g *Graph, source string) (Paths, error) {
	if source == "" {
		return Paths{}, ErrEmptySource
	}
	if !g.HasVertex(source) {
		return Paths{}, errors.Wrapf(ErrVertexNotFound, "source %q", source)
	}

	r := &runner{
		g:       g,
		dist:    make(map[string]domain.Distance, g.Order()),
		prev:    make(map[string]string, g.Order()),
		visited: make(map[string]bool, g.Order()),
	}
	r.dist[source] = domain.Known(0)
	heap.Push(&r.pq, &nodeItem{id: source, dist: domain.Known(0), seq: r.nextSeq()})

	if err := r.process(); err != nil {
		return Paths{}, err
	}
	return Paths{Source: source, Dist: r.dist, Prev: r.prev}, nil
}

// PathTo returns the vertex ids from the source to target, or nil when
// target was not reached.
func (p Paths) PathTo(target string) []string {
	if _, ok := p.Dist[target]; !ok {
		return nil
	}
	var path []string
	for v := target; ; v = p.Prev[v] {
		path = append(path, v)
		if v == p.Source {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type runner struct {
	g       *Graph
	dist    map[string]domain.Distance
	prev    map[string]string
	visited map[string]bool
	pq      nodePQ
	seq     int
}

func (r *runner) nextSeq() int {
	r.seq++
	return r.seq
}

func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		if err := r.relax(item.id); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) relax(u string) error {
	edges, err := r.g.Neighbors(u)
	if err != nil {
		return errors.Wrap(err, "dijkstra")
	}
	for _, e := range edges {
		if r.visited[e.To] {
			continue
		}
		candidate := r.dist[u].Add(e.Weight)
		if current, reached := r.dist[e.To]; reached && !candidate.Less(current) {
			continue
		}
		r.dist[e.To] = candidate
		r.prev[e.To] = u
		heap.Push(&r.pq, &nodeItem{id: e.To, dist: candidate, seq: r.nextSeq()})
	}
	return nil
}

// nodeItem is a heap entry. seq records push order so equal costs pop in
// the order they were discovered.
type nodeItem struct {
	id   string
	dist domain.Distance
	seq  int
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist.Less(pq[j].dist) {
		return true
	}
	if pq[j].dist.Less(pq[i].dist) {
		return false
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
