package solidity

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/oracle"
	"github.com/viant/scanexr/provider"
	"github.com/viant/scanexr/step"
)

// Provider is the concrete Solidity push-down automaton: it resolves a
// sink-side position backward through the grammar, one syntactic shape
// at a time.
type Provider struct {
	parser cst.Parser
}

// New builds a Solidity provider bound to parser, which must have been
// configured with a Solidity grammar (see cst.NewSitterParser).
func New(parser cst.Parser) *Provider {
	return &Provider{parser: parser}
}

func (p *Provider) Parser() cst.Parser { return p.parser }

func (p *Provider) InitialStack() []provider.Frame {
	return []provider.Frame{newStart()}
}

// Transition pattern-matches the node at s's position against the
// syntactic shapes this provider understands. Inability to pattern-match a
// shape is treated as "no successor", never an error — unrecognised syntax
// must not crash the traversal.
func (p *Provider) Transition(s step.Step, top provider.Frame, definitions, references oracle.Result) ([]provider.Next, error) {
	frame, ok := top.(Frame)
	if !ok {
		return nil, fmt.Errorf("solidity: unexpected frame type %T", top)
	}

	tree, err := p.parser.Parse(s.Path)
	if err != nil {
		return nil, err
	}
	node, err := p.parser.NodeAt(tree, s.Start, s.End)
	if err != nil {
		return nil, err
	}
	crumbs := cst.Breadcrumbs(tree, node)
	kinds := cst.Kinds(crumbs)

	switch frame.Kind {
	case GotoDefinition:
		return p.onGotoDefinition(s, definitions)
	case GotoReference:
		return p.onGotoReference(kinds, references)
	case GotoArgument:
		return p.onGotoArgument(s.Path, crumbs, kinds, frame)
	case Start:
		return []provider.Next{{Step: s, Pushed: []provider.Frame{newStart(), newResolve(nil, noTupleIndex)}}}, nil
	case Resolve:
		return p.onResolve(s.Path, crumbs, kinds, frame)
	default:
		return nil, fmt.Errorf("solidity: unknown frame kind %v", frame.Kind)
	}
}

// onGotoDefinition consumes the oracle's definitions answer regardless of
// syntactic shape: one branch per definition, no frames pushed. A definition
// identical to s itself (a self-referential declaration) is dropped rather
// than emitted — following it would re-enter this exact position with an
// unchanged stack and recurse forever, so the automaton treats it as its own
// cycle boundary instead of relying on the traversal engine to catch it.
func (p *Provider) onGotoDefinition(s step.Step, definitions oracle.Result) ([]provider.Next, error) {
	if !definitions.IsOk() {
		return nil, errors.Wrap(definitions.Err, "solidity: find_definitions failed")
	}
	nexts := make([]provider.Next, 0, len(definitions.Steps))
	for _, d := range definitions.Steps {
		if d.Equal(s) {
			continue
		}
		nexts = append(nexts, provider.Next{Step: d})
	}
	return nexts, nil
}

// onGotoReference consumes the oracle's references answer when currently
// positioned at a function name within its definition head.
func (p *Provider) onGotoReference(kinds []string, references oracle.Result) ([]provider.Next, error) {
	if !matchesFunctionName(kinds) {
		return nil, nil
	}
	if !references.IsOk() {
		return nil, errors.Wrap(references.Err, "solidity: find_references failed")
	}
	nexts := make([]provider.Next, 0, len(references.Steps))
	for _, r := range references.Steps {
		nexts = append(nexts, provider.Next{Step: r})
	}
	return nexts, nil
}

// onGotoArgument picks the i-th named call_argument of the call expression
// at the current location (typically a reference returned by GotoReference,
// or an anchor recorded by a prior Resolve).
func (p *Provider) onGotoArgument(path string, crumbs []cst.Node, kinds []string, frame Frame) ([]provider.Next, error) {
	callExpr := findAncestor(crumbs, kinds, kindCallExpression)
	if callExpr == nil {
		return nil, nil
	}
	args := namedChildrenOfKind(callExpr, kindCallArgument)
	if frame.ArgIndex >= len(args) {
		return nil, nil
	}
	arg := args[frame.ArgIndex]
	return []provider.Next{{Step: stepFromNode(path, arg)}}, nil
}

// onResolve is the syntax-driven core of the automaton: given the node the
// step addresses and its ancestor chain, decide the next backward step.
func (p *Provider) onResolve(path string, crumbs []cst.Node, kinds []string, frame Frame) ([]provider.Next, error) {
	if len(crumbs) == 0 {
		return nil, nil
	}
	node := crumbs[0]

	switch node.Kind() {
	case kindNumberLiteral:
		return nil, nil

	case kindIdentifier:
		if len(kinds) >= 2 && kinds[1] == kindMemberExpression {
			memberExpr := crumbs[1]
			if isField(memberExpr, fieldProperty, node) {
				object, ok := memberExpr.ChildByFieldName(fieldObject)
				if !ok {
					return nil, nil
				}
				next := stepFromNode(path, object)
				return []provider.Next{{Step: next, Pushed: []provider.Frame{newResolve(frame.Anchor, frame.TupleIndex)}}}, nil
			}
			// object position: go to its definition, then re-resolve.
			return []provider.Next{{Step: nodeStep(path, node), Pushed: []provider.Frame{newResolve(frame.Anchor, frame.TupleIndex), newGotoDefinition()}}}, nil
		}

		if len(kinds) >= 3 && kinds[1] == kindParameter && kinds[2] == kindFunctionDefinition {
			return p.onParameterIdentifier(path, crumbs, frame)
		}

		if len(kinds) >= 2 && kinds[1] == kindFunctionDefinition {
			return p.onFunctionNameIdentifier(path, crumbs, frame)
		}

		if len(kinds) >= 2 && kinds[1] == kindVariableDeclaration {
			return p.onVariableDeclarationIdentifier(path, crumbs, frame)
		}

		// call-argument, return-statement, or any other plain value
		// position: go to its definition, then re-resolve.
		return []provider.Next{{Step: nodeStep(path, node), Pushed: []provider.Frame{newResolve(frame.Anchor, frame.TupleIndex), newGotoDefinition()}}}, nil

	case kindCallExpression:
		fn, ok := node.ChildByFieldName(fieldFunction)
		if !ok {
			return nil, nil
		}
		anchor := nodeStep(path, node)
		return []provider.Next{{
			Step:   stepFromNode(path, fn),
			Pushed: []provider.Frame{newResolve(&anchor, frame.TupleIndex), newGotoDefinition()},
		}}, nil

	case kindTupleExpression:
		if !frame.hasTupleIndex() {
			return nil, nil
		}
		children := node.NamedChildren()
		if frame.TupleIndex >= len(children) {
			return nil, nil
		}
		target := children[frame.TupleIndex]
		return []provider.Next{{Step: stepFromNode(path, target), Pushed: []provider.Frame{newResolve(frame.Anchor, noTupleIndex)}}}, nil
	}

	return nil, nil
}

// onVariableDeclarationIdentifier handles landing on a declared identifier,
// plain or as one element of a tuple-destructuring declaration.
func (p *Provider) onVariableDeclarationIdentifier(path string, crumbs []cst.Node, frame Frame) ([]provider.Next, error) {
	declStmt := findAncestor(crumbs, cst.Kinds(crumbs), kindVariableDeclarationStmt)
	if declStmt == nil {
		return nil, nil
	}
	value, ok := declStmt.ChildByFieldName(fieldValue)
	if !ok {
		return nil, nil
	}

	if tuple := findAncestorBefore(crumbs, kindTupleExpression, kindVariableDeclarationStmt); tuple != nil {
		decls := namedChildrenOfKind(tuple, kindVariableDeclaration)
		index := indexOfDeclaration(decls, crumbs[1])
		if index < 0 {
			return nil, nil
		}
		return []provider.Next{{Step: stepFromNode(path, value), Pushed: []provider.Frame{newResolve(frame.Anchor, index)}}}, nil
	}

	return []provider.Next{{Step: stepFromNode(path, value), Pushed: []provider.Frame{newResolve(frame.Anchor, noTupleIndex)}}}, nil
}

// onParameterIdentifier handles landing on a function parameter via
// go-to-definition: find the parameter's position, then either jump
// straight back to a known call-site anchor or fan out over every
// reference to the function.
func (p *Provider) onParameterIdentifier(path string, crumbs []cst.Node, frame Frame) ([]provider.Next, error) {
	parameter := crumbs[1]
	functionDef := crumbs[2]
	params := namedChildrenOfKind(functionDef, kindParameter)
	index := indexOfDeclaration(params, parameter)
	if index < 0 {
		return nil, nil
	}

	if frame.Anchor != nil {
		return []provider.Next{{
			Step:   *frame.Anchor,
			Pushed: []provider.Frame{newResolve(nil, frame.TupleIndex), newGotoArgument(index)},
		}}, nil
	}

	name, ok := functionDef.ChildByFieldName(fieldName)
	if !ok {
		return nil, nil
	}
	return []provider.Next{{
		Step:   stepFromNode(path, name),
		Pushed: []provider.Frame{newResolve(nil, frame.TupleIndex), newGotoArgument(index), newGotoReference()},
	}}, nil
}

// onFunctionNameIdentifier handles landing on a function's own name (via
// go-to-definition from a call site): fan out over every return statement
// in its body.
func (p *Provider) onFunctionNameIdentifier(path string, crumbs []cst.Node, frame Frame) ([]provider.Next, error) {
	functionDef := crumbs[1]
	returns, err := p.parser.RunQuery(nil, functionDef, cst.Query{Pattern: returnStatementQuery, CaptureIndex: 0})
	if err != nil {
		return nil, fmt.Errorf("solidity: failed to query return statements: %w", err)
	}
	if len(returns) == 0 {
		return nil, nil
	}

	nexts := make([]provider.Next, 0, len(returns))
	for _, ret := range returns {
		nexts = append(nexts, provider.Next{
			Step:   stepFromNode(path, ret),
			Pushed: []provider.Frame{newResolve(frame.Anchor, frame.TupleIndex)},
		})
	}
	return nexts, nil
}

func matchesFunctionName(kinds []string) bool {
	return len(kinds) >= 2 && kinds[0] == kindIdentifier && kinds[1] == kindFunctionDefinition
}

func isField(parent cst.Node, field string, node cst.Node) bool {
	got, ok := parent.ChildByFieldName(field)
	return ok && sameRange(got, node)
}

func sameRange(a, b cst.Node) bool {
	return a.Start() == b.Start() && a.End() == b.End() && a.Kind() == b.Kind()
}

func nodeStep(path string, node cst.Node) step.Step {
	return stepFromNode(path, node)
}

func stepFromNode(path string, node cst.Node) step.Step {
	return step.New(path, node.Start(), node.End())
}

// namedChildrenOfKind filters a node's named children to those of a given
// grammar kind, preserving source order — "named children" always skips
// anonymous tokens like commas, since NamedChildren already does.
func namedChildrenOfKind(node cst.Node, kind string) []cst.Node {
	var matched []cst.Node
	for _, child := range node.NamedChildren() {
		if child.Kind() == kind {
			matched = append(matched, child)
		}
	}
	return matched
}

func indexOfDeclaration(candidates []cst.Node, target cst.Node) int {
	for i, c := range candidates {
		if sameRange(c, target) {
			return i
		}
	}
	return -1
}

// findAncestor returns the first breadcrumb (including the innermost node)
// whose kind equals kind.
func findAncestor(crumbs []cst.Node, kinds []string, kind string) cst.Node {
	for i, k := range kinds {
		if k == kind {
			return crumbs[i]
		}
	}
	return nil
}

// findAncestorBefore returns the ancestor of kind `want` if it appears
// before (closer than) the first ancestor of kind `boundary`, used to check
// whether a variable declaration sits inside a tuple-destructuring pattern
// without escaping past the statement that owns it.
func findAncestorBefore(crumbs []cst.Node, want, boundary string) cst.Node {
	for _, c := range crumbs {
		if c.Kind() == boundary {
			return nil
		}
		if c.Kind() == want {
			return c
		}
	}
	return nil
}
