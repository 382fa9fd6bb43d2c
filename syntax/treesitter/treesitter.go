// Package treesitter exposes tree-sitter parse trees as syntax.Node, so that a tree produced by a tree-sitter NDF
// grammar can be fed to the document builder.
//
// Node types of the grammar map onto syntax kinds by name. A node type the mapping does not know becomes a literal
// when it sits where a value is expected, and otherwise keeps its own type as its kind, which the builder reports as
// a structural error.
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sblinch/ndf-go/syntax"
)

var kinds = map[string]syntax.Kind{
	"visibility":            syntax.KindVisibility,
	"assignment":            syntax.KindAssignment,
	"template":              syntax.KindTemplate,
	"object":                syntax.KindObject,
	"member":                syntax.KindMember,
	"param":                 syntax.KindParam,
	"map":                   syntax.KindMap,
	"pair":                  syntax.KindPair,
	"list":                  syntax.KindArray,
	"vector_type":           syntax.KindArray,
	"comment_inline":        syntax.KindComment,
	"comment_block_classic": syntax.KindComment,
	"comment_block_round":   syntax.KindComment,
	"comment_block_curly":   syntax.KindComment,
}

// childFields names the field holding the children of each container kind; the root's children are its own
var childFields = map[syntax.Kind]string{
	syntax.KindObject: "members",
	syntax.KindArray:  "items",
	syntax.KindMap:    "pairs",
}

func classify(n *sitter.Node, value bool) syntax.Kind {
	if k, ok := kinds[n.Type()]; ok {
		return k
	}
	if value {
		return syntax.KindLiteral
	}
	return syntax.Kind(n.Type())
}

// Node adapts a tree-sitter node
type Node struct {
	n    *sitter.Node
	src  []byte
	kind syntax.Kind
}

// Wrap returns root, parsed from src, as the KindSource root of a syntax tree
func Wrap(root *sitter.Node, src []byte) *Node {
	return &Node{n: root, src: src, kind: syntax.KindSource}
}

func (n *Node) Kind() syntax.Kind { return n.kind }
func (n *Node) Text() string      { return n.n.Content(n.src) }

func (n *Node) Span() syntax.Span {
	p := n.n.StartPoint()
	return syntax.Span{
		Start:  int(n.n.StartByte()),
		End:    int(n.n.EndByte()),
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}

func (n *Node) Children() []syntax.Node {
	parent := n.n
	if n.kind != syntax.KindSource && n.kind != syntax.KindParams {
		name, ok := childFields[n.kind]
		if !ok {
			return nil
		}
		if parent = n.n.ChildByFieldName(name); parent == nil {
			return nil
		}
	}

	count := int(parent.NamedChildCount())
	out := make([]syntax.Node, 0, count)
	for i := 0; i < count; i++ {
		child := parent.NamedChild(i)
		// list items may be bare values; every other container holds rows
		out = append(out, &Node{n: child, src: n.src, kind: classify(child, n.kind == syntax.KindArray)})
	}
	return out
}

func (n *Node) Field(name string) syntax.Node {
	child := n.n.ChildByFieldName(name)
	if child == nil {
		return nil
	}
	var kind syntax.Kind
	switch {
	case n.kind == syntax.KindTemplate && name == "params":
		kind = syntax.KindParams
	case name == "name" || name == "type":
		kind = syntax.KindName
	case name == "item":
		kind = classify(child, false)
	default:
		kind = classify(child, true)
	}
	return &Node{n: child, src: n.src, kind: kind}
}

var _ syntax.Node = (*Node)(nil)

// Parser parses source with a tree-sitter language. Each call uses its own tree-sitter parser, so a Parser may be
// shared between goroutines.
type Parser struct {
	lang *sitter.Language
}

// New returns a Parser for lang
func New(lang *sitter.Language) *Parser {
	return &Parser{lang: lang}
}

func (p *Parser) Parse(src []byte) (syntax.Node, error) {
	return p.ParseContext(context.Background(), src)
}

// ParseContext parses src, stopping early if ctx is cancelled. A tree containing error or missing nodes is reported
// as a *syntax.Error at the first of them.
func (p *Parser) ParseContext(ctx context.Context, src []byte) (syntax.Node, error) {
	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		if bad == nil {
			bad = root
		}
		pos := bad.StartPoint()
		msg := "unexpected " + bad.Type()
		if bad.IsMissing() {
			msg = "missing " + bad.Type()
		}
		return nil, syntax.NewError(src, int(bad.StartByte()), int(pos.Row)+1, int(pos.Column)+1, "%s", msg)
	}
	return Wrap(root, src), nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

var _ syntax.Parser = (*Parser)(nil)
