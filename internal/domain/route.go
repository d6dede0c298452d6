package domain

import "fmt"

// Hop is one border crossing of a route.
type Hop struct {
	From     string
	To       string
	Distance Distance
}

func (h Hop) String() string {
	return fmt.Sprintf("%s --> %s (%s km.)", h.From, h.To, h.Distance)
}

// Route is the result of a shortest path query. A route without hops means
// no route exists between the requested countries.
type Route struct {
	From  string
	To    string
	Hops  []Hop
	Total Distance
}

// Found reports whether the route has at least one hop.
func (r Route) Found() bool { return len(r.Hops) > 0 }

// Lines renders each hop in "A --> B (D km.)" form.
func (r Route) Lines() []string {
	lines := make([]string, 0, len(r.Hops))
	for _, h := range r.Hops {
		lines = append(lines, h.String())
	}
	return lines
}
