// Package cst is the thin adapter over a concrete-syntax tree that the rest
// of the engine consumes. It never holds onto tree-internal memory past a
// single transition, and it never invents a range that doesn't correspond to
// a real named node.
package cst

import "github.com/viant/scanexr/step"

// Node is the minimal shape a concrete-syntax node must expose for the
// language provider to pattern-match on syntactic context. Implementations
// wrap a specific parser's node type (see sitterNode for go-tree-sitter).
type Node interface {
	// Kind is the node's grammar production name, e.g. "identifier",
	// "member_expression", "call_argument".
	Kind() string
	Start() step.Position
	End() step.Position
	Parent() (Node, bool)
	// ChildByFieldName returns the node's child registered under the given
	// grammar field name (e.g. "object", "property", "value", "function"),
	// if the grammar defines one at this production.
	ChildByFieldName(name string) (Node, bool)
	// NamedChildren returns only named grammar children, skipping anonymous
	// tokens such as commas and parentheses.
	NamedChildren() []Node
	// Content returns the node's source text.
	Content() string
}

// Tree is a parsed file. RootNode is the translation-unit node; it is never
// itself returned to a provider (breadcrumbs stop one level below it).
type Tree interface {
	RootNode() Node
}

// Query is a compiled tree-query pattern plus the capture index whose nodes
// the caller wants back.
type Query struct {
	Pattern      string
	CaptureIndex uint32
}

// Parser parses files and runs queries against parsed trees. Implementations
// may cache compiled grammars but must treat every Parse call as
// independent: no shared tree cache is required or assumed.
type Parser interface {
	// Parse reads and parses path. It fails only if the file is unreadable
	// or not valid UTF-8.
	Parse(path string) (Tree, error)
	// NodeAt returns the innermost named descendant of tree whose range
	// covers [start, end]. Behaviour is undefined if the range lies outside
	// the tree — callers must only pass ranges derived from a Step that was
	// itself derived from this same tree or file.
	NodeAt(tree Tree, start, end step.Position) (Node, error)
	// RunQuery runs q against the subtree rooted at root and returns every
	// match's capture at q.CaptureIndex, in source order.
	RunQuery(tree Tree, root Node, q Query) ([]Node, error)
}

// Breadcrumbs returns the chain of nodes from node up to, but not including,
// the tree root — innermost first. Providers use
// this to pattern-match nested syntactic context without needing direct
// access to a concrete parser type.
func Breadcrumbs(tree Tree, node Node) []Node {
	root := tree.RootNode()
	if sameNode(node, root) {
		return nil
	}
	crumbs := []Node{node}
	for n := node; ; {
		parent, ok := n.Parent()
		if !ok || sameNode(parent, root) {
			break
		}
		crumbs = append(crumbs, parent)
		n = parent
	}
	return crumbs
}

func sameNode(a, b Node) bool {
	return a.Kind() == b.Kind() && a.Start() == b.Start() && a.End() == b.End()
}

// Kinds is a convenience for providers that want to match breadcrumbs
// against []string{...} shapes.
func Kinds(nodes []Node) []string {
	kinds := make([]string, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind()
	}
	return kinds
}
