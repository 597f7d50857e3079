package solidity

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	afsurl "github.com/viant/afs/url"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/oracle"
	"github.com/viant/scanexr/step"
)

// Lsp adapts an external go-to-definition oracle (typically a real
// language-server client) and adds a query-based find_references
// fallback for languages whose LSP server has no native "references"
// request: every call expression's callee is resolved via
// FindDefinitions and kept as a reference if it points back at the
// target step.
type Lsp struct {
	// Definitions answers textDocument/definition-style lookups. It is the
	// only genuinely external collaborator; this module never implements
	// it (see DESIGN.md).
	Definitions func(s step.Step) oracle.Result

	Parser      cst.Parser
	ProjectRoot string
}

// NewLsp builds a Solidity oracle around an externally supplied
// definitions lookup.
func NewLsp(definitions func(s step.Step) oracle.Result, parser cst.Parser, projectRoot string) *Lsp {
	return &Lsp{Definitions: definitions, Parser: parser, ProjectRoot: projectRoot}
}

func (l *Lsp) FindDefinitions(s step.Step) oracle.Result {
	return l.Definitions(s)
}

// FindReferences has no direct LSP equivalent for Solidity, so it walks
// the project looking for call expressions whose callee resolves (via
// FindDefinitions) to s, mirroring the fallback the original Rust
// implementation performs for this language.
func (l *Lsp) FindReferences(s step.Step) oracle.Result {
	fs := afs.New()
	var callees []candidate

	visitor := storage.OnVisit(func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		path := afsurl.Path(afsurl.Join(baseURL, parent, info.Name()))
		tree, err := l.Parser.Parse(path)
		if err != nil {
			// Non-Solidity or unparsable files are simply not call sites.
			return true, nil
		}
		nodes, err := l.Parser.RunQuery(tree, tree.RootNode(), cst.Query{Pattern: callExpressionQuery, CaptureIndex: 0})
		if err != nil {
			return false, fmt.Errorf("solidity: callee query failed on %s: %w", path, err)
		}
		for _, n := range nodes {
			callees = append(callees, candidate{step: step.New(path, n.Start(), n.End())})
		}
		return true, nil
	})

	if err := fs.Walk(context.Background(), l.ProjectRoot, visitor); err != nil {
		return oracle.Failed(fmt.Errorf("solidity: find_references walk failed: %w", err))
	}

	var references []step.Step
	for _, c := range callees {
		defs := l.Definitions(c.step)
		if !defs.IsOk() {
			// A callee the oracle can't resolve is skipped, not fatal —
			// the whole point of the fallback is to survive partial
			// oracle coverage.
			continue
		}
		for _, d := range defs.Steps {
			if d.Equal(s) {
				references = append(references, c.step)
				break
			}
		}
	}
	return oracle.Ok(references)
}

type candidate struct {
	step step.Step
}
