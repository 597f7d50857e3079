// Package pathfind is the path-enumeration driver: it wires query-based
// seeding, the traversal engine, and result concatenation into one
// operation — seed the project, then for every candidate sink step, traverse
// backward against the candidate sources and concatenate the resulting
// paths.
package pathfind

import (
	"context"
	"fmt"

	"github.com/viant/scanexr/oracle"
	"github.com/viant/scanexr/provider"
	"github.com/viant/scanexr/seed"
	"github.com/viant/scanexr/step"
	"github.com/viant/scanexr/traverse"
)

func defaultTraverse(p provider.Provider, o oracle.Oracle, start step.Step, stack []provider.Frame, stopAt []step.Step) ([]step.Stacktrace, error) {
	return traverse.FindPaths(p, o, start, stack, stopAt)
}

// Request is everything one run needs: where to seed from, which provider
// automaton to drive, the oracle backing it, and the two query sets that
// pick out candidate sources and sinks.
type Request struct {
	ProjectRoot   string
	Provider      provider.Provider
	Oracle        oracle.Oracle
	SourceQueries []seed.QuerySpec
	SinkQuery     seed.QuerySpec
}

// Run seeds candidate source/sink steps, then traverses backward from every
// sink against the set of candidate sources, returning the concatenated
// union of every discovered stacktrace in order, sink by sink. No cross-sink
// deduplication is performed: overlapping source/sink queries can
// legitimately rediscover the same trace more than once, and duplicates are
// emitted as-is rather than silently dropped. Seeding failure is fatal —
// without a readable project tree there is nothing to analyse; a failure
// traversing one sink aborts the whole run rather than silently dropping
// results, since a provider transition error signals an engine invariant
// violation, not an ordinary unmatched-shape outcome.
func Run(ctx context.Context, req Request) ([]step.Stacktrace, error) {
	candidates, err := seed.Seed(ctx, seed.Config{
		ProjectRoot:   req.ProjectRoot,
		Parser:        req.Provider.Parser(),
		SourceQueries: req.SourceQueries,
		SinkQuery:     req.SinkQuery,
	})
	if err != nil {
		return nil, err
	}

	var all []step.Stacktrace

	for _, sink := range candidates.Sinks {
		paths, err := findPathsFrom(req, sink, candidates.Sources)
		if err != nil {
			return nil, fmt.Errorf("pathfind: traversal failed from %s:%v-%v: %w", sink.Path, sink.Start, sink.End, err)
		}
		all = append(all, paths...)
	}

	return all, nil
}

func findPathsFrom(req Request, sink step.Step, sources []step.Step) ([]step.Stacktrace, error) {
	return traverseFunc(req.Provider, req.Oracle, sink, req.Provider.InitialStack(), sources)
}

// traverseFunc is a package-level indirection to the traverse engine's
// entry point, kept as a var so tests can substitute a stub traversal
// without constructing a real provider/oracle pair.
var traverseFunc = defaultTraverse
