// Package graphstore talks to the graph database that receives exported
// border graphs.
package graphstore

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Client runs write statements against a graph database. Export never
// reads back, so there is no read path.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the rows a write statement returned, if any.
type Result struct {
	Records []Record
}

// Record is one returned row keyed by column name.
type Record map[string]any

// Options locates and authenticates a Bolt endpoint.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI is returned when export is asked for without GRAPH_URI.
var ErrMissingURI = errors.New("graph URI is required")
