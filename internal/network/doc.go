// Package network holds the border graph keyed by canonical country id.
//
// Builder reads the border dataset through the identity resolver and adds
// one directed edge per listed neighbor, weighted Unknown. LoadDistances
// replaces those weights with measured capital-to-capital distances, and
// ShortestPaths runs Dijkstra from a single source over the result.
//
// Complexity of ShortestPaths:
//
//   - Time:  O((V + E) log V), lazy decrease-key on a binary heap.
//   - Space: O(V + E).
package network
