// Package whatif answers independent circuit queries concurrently.
//
// Every query runs in its own evaluation context with an empty cache, so
// queries never see each other's signals or overrides. Only the immutable
// topology.Circuit is shared between goroutines.
package whatif

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/wiregrid/internal/circuit"
	"github.com/specialistvlad/wiregrid/internal/ctxlog"
	"github.com/specialistvlad/wiregrid/internal/topology"
)

// Assignment forces one wire to a fixed signal.
type Assignment struct {
	Wire  string
	Value uint16
}

// Query asks for the signal on Target, optionally with one wire overridden.
type Query struct {
	Name     string
	Target   string
	Override *Assignment
}

// Result is the answer to a Query.
type Result struct {
	Query  Query
	Signal uint16
}

// Answer resolves a single query in a fresh context.
func Answer(ctx context.Context, c *topology.Circuit, q Query) (uint16, error) {
	if q.Override != nil {
		return circuit.OverrideAndResolve(ctx, c, q.Override.Wire, q.Override.Value, q.Target)
	}
	return circuit.New(c).Resolve(ctx, q.Target)
}

// Run answers all queries using at most workers goroutines. Results are in
// query order. The first failure stops queries that have not started yet and
// is returned wrapped with the query name.
func Run(ctx context.Context, c *topology.Circuit, queries []Query, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("What-if run starting.", "queries", len(queries), "workers", workers)

	results := make([]Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			qctx := ctxlog.With(gctx, "query", q.Name)
			v, err := Answer(qctx, c, q)
			if err != nil {
				return fmt.Errorf("query %q: %w", q.Name, err)
			}
			results[i] = Result{Query: q, Signal: v}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("What-if run finished.", "queries", len(queries))
	return results, nil
}
