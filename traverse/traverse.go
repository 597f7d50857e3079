// Package traverse implements the traversal engine: the orchestration that
// walks a provider's automaton from a sink step back to the configured stop
// set, emitting every distinct non-cyclic path it finds.
package traverse

import (
	"fmt"

	"github.com/viant/scanexr/oracle"
	"github.com/viant/scanexr/provider"
	"github.com/viant/scanexr/step"
)

// FindPaths explores every alternative the provider offers from start,
// recursively, until each branch either reaches a step in stopAt or the
// provider reports no successor. Every branch recurses on the step the
// provider just returned, never on the step it was called with — recursing
// on the wrong step would silently truncate every multi-hop path to
// length 2.
func FindPaths(p provider.Provider, o oracle.Oracle, start step.Step, stack []provider.Frame, stopAt []step.Step) ([]step.Stacktrace, error) {
	if step.Contains(stopAt, start) {
		return []step.Stacktrace{{Steps: []step.Step{start}}}, nil
	}

	definitions := o.FindDefinitions(start)
	references := o.FindReferences(start)

	if len(stack) == 0 {
		return nil, fmt.Errorf("traverse: empty stack on entry for %s:%v-%v", start.Path, start.Start, start.End)
	}
	top := stack[len(stack)-1]
	remaining := stack[:len(stack)-1]

	nextSteps, err := p.Transition(start, top, definitions, references)
	if err != nil {
		return nil, err
	}

	if len(nextSteps) == 0 {
		// The provider signals branch completion by returning no
		// successor; record the trace ending here rather than treating it
		// as an error.
		return []step.Stacktrace{{Steps: []step.Step{start}}}, nil
	}

	var paths []step.Stacktrace
	for _, next := range nextSteps {
		childStack := make([]provider.Frame, len(remaining), len(remaining)+len(next.Pushed))
		copy(childStack, remaining)
		childStack = append(childStack, next.Pushed...)

		childPaths, err := FindPaths(p, o, next.Step, childStack, stopAt)
		if err != nil {
			return nil, err
		}
		for _, childPath := range childPaths {
			paths = append(paths, childPath.Prepend(start))
		}
	}

	return paths, nil
}
