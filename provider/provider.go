// Package provider defines the language-provider contract: a push-down
// automaton that, given a syntactic position and the head of a per-branch
// context stack, decides what the next backward step is and what new
// frames to push. One concrete provider — Solidity — lives in
// provider/solidity; this package is the interface any provider must meet.
package provider

import (
	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/oracle"
	"github.com/viant/scanexr/step"
)

// Frame is one element of a branch's context stack. It is opaque to the
// engine: the engine only pops the head and passes it to the provider, and
// pushes back whatever the provider returns. Concrete providers define their
// own Frame-shaped type (see provider/solidity.Frame) and the engine treats
// it as `any`.
type Frame = any

// Next is one alternative next step a transition can produce: the step to
// continue from, and the frames to push on top of the remaining stack (in
// order — the first element pushed first, so it ends up deepest of the
// pushed frames).
type Next struct {
	Step   step.Step
	Pushed []Frame
}

// Provider is the per-language push-down automaton. Implementations must
// never crash on unrecognised syntax: an unmatched shape is "no successor",
// returned as a nil/empty slice, not an error.
type Provider interface {
	// Parser returns the cst.Parser configured for this provider's grammar.
	Parser() cst.Parser
	// InitialStack is the per-seed starting context stack, e.g. a single
	// Start frame for the Solidity provider.
	InitialStack() []Frame
	// Transition computes every alternative next step from s, given the
	// current top-of-stack frame and the oracle's (possibly failed) answers
	// for s. The stack is guaranteed non-empty at call time — popping top
	// from it is the engine's job, done once before this call.
	Transition(s step.Step, top Frame, definitions, references oracle.Result) ([]Next, error)
}
