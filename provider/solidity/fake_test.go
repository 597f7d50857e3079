package solidity

import (
	"fmt"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/step"
)

// fakeNode is a hand-built cst.Node test double. The Solidity automaton is
// tested against these instead of a real tree-sitter grammar binding (see
// DESIGN.md's Open Question resolution on why no concrete Solidity
// grammar ships with this module).
type fakeNode struct {
	kind     string
	start    step.Position
	end      step.Position
	parent   *fakeNode
	fields   map[string]*fakeNode
	children []*fakeNode
	content  string
}

func (n *fakeNode) Kind() string         { return n.kind }
func (n *fakeNode) Start() step.Position { return n.start }
func (n *fakeNode) End() step.Position   { return n.end }
func (n *fakeNode) Content() string      { return n.content }

func (n *fakeNode) Parent() (cst.Node, bool) {
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

func (n *fakeNode) ChildByFieldName(name string) (cst.Node, bool) {
	c, ok := n.fields[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func (n *fakeNode) NamedChildren() []cst.Node {
	out := make([]cst.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// fakeTree wraps a root fakeNode.
type fakeTree struct{ root *fakeNode }

func (t *fakeTree) RootNode() cst.Node { return t.root }

// fakeParser resolves a fixed set of registered (path -> tree) pairs and
// answers RunQuery for the two query patterns this provider issues by
// walking the subtree directly, emulating what the real tree-sitter
// queries in kinds.go would capture.
type fakeParser struct {
	trees map[string]*fakeTree
}

func newFakeParser() *fakeParser { return &fakeParser{trees: map[string]*fakeTree{}} }

func (p *fakeParser) register(path string, root *fakeNode) *fakeTree {
	t := &fakeTree{root: root}
	p.trees[path] = t
	return t
}

func (p *fakeParser) Parse(path string) (cst.Tree, error) {
	t, ok := p.trees[path]
	if !ok {
		return nil, fmt.Errorf("fakeParser: no tree registered for %s", path)
	}
	return t, nil
}

func (p *fakeParser) NodeAt(tree cst.Tree, start, end step.Position) (cst.Node, error) {
	t := tree.(*fakeTree)
	var found *fakeNode
	var walk func(n *fakeNode)
	// Keep descending after a match so a child sharing its parent's exact
	// range wins: NodeAt returns the innermost node covering the range.
	walk = func(n *fakeNode) {
		if n.start == start && n.end == end {
			found = n
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	if found == nil {
		return nil, fmt.Errorf("fakeParser: no node at %+v-%+v", start, end)
	}
	return found, nil
}

func (p *fakeParser) RunQuery(_ cst.Tree, root cst.Node, q cst.Query) ([]cst.Node, error) {
	rn := root.(*fakeNode)
	var matches []cst.Node
	var walk func(n *fakeNode)
	walk = func(n *fakeNode) {
		switch q.Pattern {
		case returnStatementQuery:
			if n.kind == kindReturnStatement && len(n.children) == 1 {
				matches = append(matches, n.children[0])
			}
		case callExpressionQuery:
			if n.kind == kindCallExpression {
				if fn, ok := n.fields[fieldFunction]; ok {
					matches = append(matches, fn)
				}
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(rn)
	return matches, nil
}

func pos(line, char uint32) step.Position { return step.Position{Line: line, Character: char} }

func leaf(kind string, start, end step.Position) *fakeNode {
	return &fakeNode{kind: kind, start: start, end: end}
}

func attach(parent *fakeNode, field string, child *fakeNode) {
	child.parent = parent
	if field != "" {
		if parent.fields == nil {
			parent.fields = map[string]*fakeNode{}
		}
		parent.fields[field] = child
	}
	parent.children = append(parent.children, child)
}
