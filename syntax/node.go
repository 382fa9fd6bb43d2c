// Package syntax defines the parse tree consumed by the document builder.
//
// Any concrete NDF parser can feed the builder by exposing its tree through Node. The module ships two: the
// recursive-descent parser in internal/parser and an adapter for tree-sitter trees in syntax/treesitter.
package syntax

// Kind identifies the syntactic category of a Node
type Kind string

const (
	// KindSource is the root of a file or snippet; its children are the top-level items
	KindSource Kind = "source"
	// KindLiteral is any opaque value: numbers, strings, references, expressions
	KindLiteral Kind = "literal"
	// KindArray is a (possibly typed) array; optional field "type", children are the items
	KindArray Kind = "array"
	// KindObject is a typed object; field "type", children are the members
	KindObject Kind = "object"
	// KindTemplate is a template declaration; fields "name", "params" and "value" (an object)
	KindTemplate Kind = "template"
	// KindMap is a MAP[...] literal; children are pairs
	KindMap Kind = "map"
	// KindPair is a (left, right) tuple; fields "left" and "right"
	KindPair Kind = "pair"
	// KindParams is a template parameter list; children are params
	KindParams Kind = "params"
	// KindAssignment is `name is value`; fields "name" and "value"
	KindAssignment Kind = "assignment"
	// KindVisibility is a visibility-qualified item; fields "type" (the keyword) and "item"
	KindVisibility Kind = "visibility"
	// KindMember is an object member; fields "name" (optional), "type" (optional) and "value"
	KindMember Kind = "member"
	// KindParam is a template parameter; fields "name", "type" (optional) and "value" (optional)
	KindParam Kind = "param"
	// KindName is an identifier or a type name
	KindName Kind = "name"
	// KindComment is a comment of any style; builders skip it
	KindComment Kind = "comment"
)

// Span locates a Node in its source; Start and End are byte offsets, Line and Column are 1-based
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Node is one node of a parse tree
type Node interface {
	// Kind returns the node's syntactic category
	Kind() Kind
	// Text returns the exact source text spanned by the node
	Text() string
	// Span returns the node's location
	Span() Span
	// Children returns the node's ordered child nodes (items, members, params or pairs)
	Children() []Node
	// Field returns the named child, or nil if absent
	Field(name string) Node
}

// Parser produces a parse tree from NDF source
type Parser interface {
	Parse(src []byte) (Node, error)
}

// Element is a plain in-memory Node
type Element struct {
	kind     Kind
	text     string
	span     Span
	children []Node
	fields   map[string]Node
}

// NewElement returns a new Element of the given kind spanning text
func NewElement(kind Kind, text string, span Span) *Element {
	return &Element{kind: kind, text: text, span: span}
}

// NewName returns a new KindName Element
func NewName(text string, span Span) *Element {
	return NewElement(KindName, text, span)
}

func (e *Element) Kind() Kind       { return e.kind }
func (e *Element) Text() string     { return e.text }
func (e *Element) Span() Span       { return e.span }
func (e *Element) Children() []Node { return e.children }

func (e *Element) Field(name string) Node {
	if n, ok := e.fields[name]; ok {
		return n
	}
	return nil
}

// AddChild appends n to e's children
func (e *Element) AddChild(n Node) *Element {
	e.children = append(e.children, n)
	return e
}

// SetField sets the named child of e; a nil n is ignored
func (e *Element) SetField(name string, n Node) *Element {
	if n == nil {
		return e
	}
	if e.fields == nil {
		e.fields = make(map[string]Node, 4)
	}
	e.fields[name] = n
	return e
}

// SetText replaces the text spanned by e
func (e *Element) SetText(text string, end int) {
	e.text = text
	e.span.End = end
}
