package cst

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/scanexr/step"
)

// SitterParser implements Parser on top of go-tree-sitter. It is
// parameterised by the grammar to use so any tree-sitter language binding —
// Solidity included — can be plugged in without this package depending on a
// specific grammar package. See DESIGN.md for why the Solidity grammar
// itself is not a go.mod dependency of this module.
type SitterParser struct {
	Language *sitter.Language
}

// NewSitterParser builds a Parser bound to the given grammar.
func NewSitterParser(language *sitter.Language) *SitterParser {
	return &SitterParser{Language: language}
}

func (p *SitterParser) Parse(path string) (Tree, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s is not valid UTF-8", path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(p.Language)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &sitterTree{root: &sitterNode{node: tree.RootNode(), src: content}}, nil
}

func (p *SitterParser) NodeAt(tree Tree, start, end step.Position) (Node, error) {
	st, ok := tree.(*sitterTree)
	if !ok {
		return nil, fmt.Errorf("cst: NodeAt called with a tree not produced by SitterParser")
	}
	point := func(pos step.Position) sitter.Point {
		return sitter.Point{Row: pos.Line, Column: pos.Character}
	}
	found := st.root.node.NamedDescendantForPointRange(point(start), point(end))
	if found == nil {
		return nil, fmt.Errorf("cst: no node covers range %+v-%+v", start, end)
	}
	return &sitterNode{node: found, src: st.root.src}, nil
}

func (p *SitterParser) RunQuery(tree Tree, root Node, q Query) ([]Node, error) {
	rn, ok := root.(*sitterNode)
	if !ok {
		return nil, fmt.Errorf("cst: RunQuery called with a node not produced by SitterParser")
	}

	query, err := sitter.NewQuery([]byte(q.Pattern), p.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to compile query %q: %w", q.Pattern, err)
	}
	cursor := sitter.NewQueryCursor()
	cursor.Exec(query, rn.node)

	var matches []Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			if capture.Index != q.CaptureIndex {
				continue
			}
			matches = append(matches, &sitterNode{node: capture.Node, src: rn.src})
		}
	}
	return matches, nil
}

type sitterTree struct {
	root *sitterNode
}

func (t *sitterTree) RootNode() Node { return t.root }

type sitterNode struct {
	node *sitter.Node
	src  []byte
}

func (n *sitterNode) Kind() string { return n.node.Type() }

func (n *sitterNode) Start() step.Position {
	p := n.node.StartPoint()
	return step.Position{Line: p.Row, Character: p.Column}
}

func (n *sitterNode) End() step.Position {
	p := n.node.EndPoint()
	return step.Position{Line: p.Row, Character: p.Column}
}

func (n *sitterNode) Parent() (Node, bool) {
	parent := n.node.Parent()
	if parent == nil {
		return nil, false
	}
	return &sitterNode{node: parent, src: n.src}, true
}

func (n *sitterNode) ChildByFieldName(name string) (Node, bool) {
	child := n.node.ChildByFieldName(name)
	if child == nil {
		return nil, false
	}
	return &sitterNode{node: child, src: n.src}, true
}

func (n *sitterNode) NamedChildren() []Node {
	count := int(n.node.NamedChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, &sitterNode{node: n.node.NamedChild(i), src: n.src})
	}
	return children
}

func (n *sitterNode) Content() string {
	return n.node.Content(n.src)
}
