// Package seed enumerates source and sink candidate Steps by running the
// configured tree-queries across every file under a project root.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	afsurl "github.com/viant/afs/url"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/step"
)

// QuerySpec names a tree-query together with the capture index whose nodes
// become candidate Steps.
type QuerySpec struct {
	Name  string
	Query cst.Query
}

// Config is the input to Seed: the project root, the parser for the
// configured language, the candidate sink query, and one or more candidate
// source queries.
type Config struct {
	ProjectRoot   string
	Parser        cst.Parser
	SourceQueries []QuerySpec
	SinkQuery     QuerySpec
}

// Result holds the deduplicated, first-seen-order candidate steps.
type Result struct {
	Sources []step.Step
	Sinks   []step.Step
}

// Seed walks cfg.ProjectRoot with afs, parsing every regular file and
// running both query sets against it. A non-UTF-8 or unreadable file aborts
// seeding entirely — without a readable project tree there is nothing to
// analyse.
func Seed(ctx context.Context, cfg Config) (Result, error) {
	fs := afs.New()

	var result Result
	seenSources := newSeenSet()
	seenSinks := newSeenSet()

	visitor := storage.OnVisit(func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}

		path := afsurl.Path(afsurl.Join(baseURL, parent, info.Name()))
		tree, err := cfg.Parser.Parse(path)
		if err != nil {
			return false, fmt.Errorf("seed: failed to parse %s: %w", path, err)
		}
		root := tree.RootNode()

		for _, spec := range cfg.SourceQueries {
			nodes, err := cfg.Parser.RunQuery(tree, root, spec.Query)
			if err != nil {
				return false, fmt.Errorf("seed: source query %q failed on %s: %w", spec.Name, path, err)
			}
			for _, n := range nodes {
				candidate := step.New(path, n.Start(), n.End())
				if seenSources.add(candidate) {
					result.Sources = append(result.Sources, candidate)
				}
			}
		}

		sinkNodes, err := cfg.Parser.RunQuery(tree, root, cfg.SinkQuery.Query)
		if err != nil {
			return false, fmt.Errorf("seed: sink query failed on %s: %w", path, err)
		}
		for _, n := range sinkNodes {
			candidate := step.New(path, n.Start(), n.End())
			if seenSinks.add(candidate) {
				result.Sinks = append(result.Sinks, candidate)
			}
		}

		return true, nil
	})

	if err := fs.Walk(ctx, cfg.ProjectRoot, visitor); err != nil {
		return Result{}, fmt.Errorf("seed: failed to walk %s: %w", cfg.ProjectRoot, err)
	}

	return result, nil
}
