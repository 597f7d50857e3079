// Package oracle defines the language-server oracle the engine consults for
// go-to-definition and find-references answers. The JSON-RPC transport that
// backs a real implementation is an external collaborator — this package
// only specifies the contract the traversal engine and language providers
// depend on.
package oracle

import "github.com/viant/scanexr/step"

// Oracle answers the two questions the traversal engine needs about a Step.
// Both operations may fail — a failed request is handed to the provider as
// an error-carrying Result rather than aborting the branch outright.
type Oracle interface {
	FindDefinitions(s step.Step) Result
	FindReferences(s step.Step) Result
}

// Result is the outcome of one oracle request: either a set of fresh,
// default-context steps, or the error that prevented the request from
// completing. Exactly one of Err or Steps is meaningful at a time.
type Result struct {
	Steps []step.Step
	Err   error
}

// Ok builds a successful Result.
func Ok(steps []step.Step) Result { return Result{Steps: steps} }

// Failed builds a failed Result.
func Failed(err error) Result { return Result{Err: err} }

// IsOk reports whether the request succeeded.
func (r Result) IsOk() bool { return r.Err == nil }
