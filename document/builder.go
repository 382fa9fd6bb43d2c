package document

import (
	"errors"

	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/syntax"
)

// Builder converts syntax trees into model entities
type Builder struct {
	// Root marks the list built from a source node as a file root, printed one row per line; otherwise it is an
	// inline list
	Root bool
	// Logger receives debug records; nil disables logging
	Logger *zap.Logger
}

// NewBuilder returns a Builder that builds root lists
func NewBuilder() *Builder {
	return &Builder{Root: true}
}

// Build converts n into the one entity its kind calls for: a *List for a source or array node, *Object, *Template,
// *Map, *Pair or Literal for the corresponding value nodes, a *ListRow for an assignment or visibility node, a
// *MemberRow, *ParamRow or *Params for member, param and params nodes.
func (b *Builder) Build(n syntax.Node) (interface{}, error) {
	switch n.Kind() {
	case syntax.KindSource:
		return b.BuildList(n)
	case syntax.KindAssignment, syntax.KindVisibility:
		return b.listRow(n)
	case syntax.KindMember:
		return b.memberRow(n)
	case syntax.KindParam:
		return b.paramRow(n)
	case syntax.KindParams:
		p := newParams(nil)
		if err := b.fillParams(p, n); err != nil {
			return nil, err
		}
		return p, nil
	}
	return b.value(n)
}

// BuildList converts a source node into a List of its top-level items
func (b *Builder) BuildList(n syntax.Node) (*List, error) {
	if n.Kind() != syntax.KindSource {
		return nil, b.structural(n, "expected source node")
	}
	l := NewList()
	l.Root = b.Root
	if err := b.fillList(l, n); err != nil {
		b.logger().Warn("build failed", zap.Error(err))
		return nil, err
	}
	b.logger().Debug("built list", zap.Bool("root", l.Root), zap.Int("rows", l.Len()))
	return l, nil
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) structural(n syntax.Node, reason string) error {
	return &StructuralError{Kind: n.Kind(), Span: n.Span(), Text: n.Text(), Reason: reason}
}

// wrap reports a row that could not be built from n as a StructuralError
func (b *Builder) wrap(n syntax.Node, err error) error {
	if errors.Is(err, ErrStructural) {
		return err
	}
	return b.structural(n, err.Error())
}

func (b *Builder) value(n syntax.Node) (Value, error) {
	switch n.Kind() {
	case syntax.KindLiteral:
		return Literal(n.Text()), nil

	case syntax.KindArray:
		l := NewList()
		if typ := n.Field("type"); typ != nil {
			l.Type = typ.Text()
		}
		if err := b.fillList(l, n); err != nil {
			return nil, err
		}
		return l, nil

	case syntax.KindObject:
		o := NewObject(fieldText(n, "type"))
		if err := b.fillMembers(&o.collection, n); err != nil {
			return nil, err
		}
		return o, nil

	case syntax.KindTemplate:
		return b.template(n)

	case syntax.KindMap:
		m := NewMap()
		for _, child := range n.Children() {
			if child.Kind() == syntax.KindComment {
				continue
			}
			r, err := b.mapRow(child)
			if err != nil {
				return nil, err
			}
			if err := m.appendRow(r); err != nil {
				return nil, b.wrap(child, err)
			}
		}
		return m, nil

	case syntax.KindPair:
		left, right := n.Field("left"), n.Field("right")
		if left == nil || right == nil {
			return nil, b.structural(n, "pair needs two elements")
		}
		lv, err := b.value(left)
		if err != nil {
			return nil, err
		}
		rv, err := b.value(right)
		if err != nil {
			return nil, err
		}
		return NewPair(lv, rv), nil
	}
	return nil, b.structural(n, "")
}

func (b *Builder) template(n syntax.Node) (*Template, error) {
	body := n.Field("value")
	if body == nil || body.Kind() != syntax.KindObject {
		return nil, b.structural(n, "template needs an object body")
	}
	t := NewTemplate(fieldText(body, "type"))
	if err := b.fillMembers(&t.collection, body); err != nil {
		return nil, err
	}
	if params := n.Field("params"); params != nil {
		if err := b.fillParams(t.params, params); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (b *Builder) fillList(l *List, n syntax.Node) error {
	rows, err := buildRows(n, b.listRow)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := l.appendRow(r); err != nil {
			return b.structural(n, err.Error())
		}
	}
	return nil
}

func (b *Builder) fillMembers(c *collection[*MemberRow], n syntax.Node) error {
	rows, err := buildRows(n, b.memberRow)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.appendRow(r); err != nil {
			return b.structural(n, err.Error())
		}
	}
	return nil
}

func (b *Builder) fillParams(p *Params, n syntax.Node) error {
	rows, err := buildRows(n, b.paramRow)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := p.appendRow(r); err != nil {
			return b.structural(n, err.Error())
		}
	}
	return nil
}

func (b *Builder) listRow(n syntax.Node) (*ListRow, error) {
	f, err := b.fields(n)
	if err != nil {
		return nil, err
	}
	r, err := NewListRow(f)
	if err != nil {
		return nil, b.wrap(n, err)
	}
	return r, nil
}

func (b *Builder) memberRow(n syntax.Node) (*MemberRow, error) {
	f, err := b.fields(n)
	if err != nil {
		return nil, err
	}
	r, err := NewMemberRow(f)
	if err != nil {
		return nil, b.wrap(n, err)
	}
	return r, nil
}

func (b *Builder) paramRow(n syntax.Node) (*ParamRow, error) {
	if n.Kind() != syntax.KindParam {
		return nil, b.structural(n, "expected template parameter")
	}
	f, err := b.fields(n)
	if err != nil {
		return nil, err
	}
	r, err := NewParamRow(f)
	if err != nil {
		return nil, b.wrap(n, err)
	}
	return r, nil
}

func (b *Builder) mapRow(n syntax.Node) (*MapRow, error) {
	if n.Kind() != syntax.KindPair {
		return nil, b.structural(n, "map entry is not a pair")
	}
	p, err := b.value(n)
	if err != nil {
		return nil, err
	}
	r, err := NewMapRowFromPair(p.(*Pair))
	if err != nil {
		return nil, b.wrap(n, err)
	}
	return r, nil
}

// fields collects the row fields an item node describes, descending through visibility, assignment and member
// wrappers down to the value
func (b *Builder) fields(n syntax.Node) (Fields, error) {
	switch n.Kind() {
	case syntax.KindVisibility:
		kw, item := n.Field("type"), n.Field("item")
		if kw == nil || item == nil {
			return nil, b.structural(n, "visibility needs a keyword and an item")
		}
		f, err := b.fields(item)
		if err != nil {
			return nil, err
		}
		f["visibility"] = kw.Text()
		return f, nil

	case syntax.KindAssignment:
		name, value := n.Field("name"), n.Field("value")
		if name == nil || value == nil {
			return nil, b.structural(n, "assignment needs a name and a value")
		}
		f, err := b.fields(value)
		if err != nil {
			return nil, err
		}
		f["namespace"] = name.Text()
		return f, nil

	case syntax.KindTemplate:
		t, err := b.template(n)
		if err != nil {
			return nil, err
		}
		f := Fields{"value": t}
		if name := n.Field("name"); name != nil {
			f["namespace"] = name.Text()
		}
		return f, nil

	case syntax.KindMember:
		value := n.Field("value")
		if value == nil {
			return nil, b.structural(n, "member needs a value")
		}
		f, err := b.fields(value)
		if err != nil {
			return nil, err
		}
		if name := n.Field("name"); name != nil {
			f["member"] = name.Text()
		}
		if typ := n.Field("type"); typ != nil {
			f["type"] = typ.Text()
		}
		return f, nil

	case syntax.KindParam:
		name := n.Field("name")
		if name == nil {
			return nil, b.structural(n, "parameter needs a name")
		}
		f := Fields{"param": name.Text()}
		if typ := n.Field("type"); typ != nil {
			f["type"] = typ.Text()
		}
		if value := n.Field("value"); value != nil {
			v, err := b.value(value)
			if err != nil {
				return nil, err
			}
			f["value"] = v
		}
		return f, nil
	}

	v, err := b.value(n)
	if err != nil {
		return nil, err
	}
	return Fields{"value": v}, nil
}

func fieldText(n syntax.Node, name string) string {
	if f := n.Field(name); f != nil {
		return f.Text()
	}
	return ""
}
