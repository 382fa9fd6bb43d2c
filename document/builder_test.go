package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sblinch/ndf-go/internal/parser"
	"github.com/sblinch/ndf-go/syntax"
)

func parse(t *testing.T, src string) *List {
	t.Helper()
	n, err := parser.New().Parse([]byte(src))
	require.NoError(t, err)
	l, err := NewBuilder().BuildList(n)
	require.NoError(t, err)
	return l
}

func TestBuilder_Kinds(t *testing.T) {
	root := parse(t, `
A is 12
export B is Obj(x = 1, y: int = "s")
template T[p: int = 3, q] is Base(v = <p>)
C is MAP[(k, [1, 2])]
D is [(1, 2), Z is 3]
unnamed Thing()
`)
	require.True(t, root.Root)
	require.Equal(t, 6, root.Len())

	a := root.Get(0)
	assert.Equal(t, "A", a.Namespace())
	assert.Equal(t, Literal("12"), a.Value())

	b := root.Get(1)
	assert.Equal(t, "export", b.Visibility())
	obj, ok := b.Value().(*Object)
	require.True(t, ok)
	assert.Equal(t, "Obj", obj.Type)
	assert.Same(t, b, obj.Parent())
	y, err := obj.ByMember("y")
	require.NoError(t, err)
	assert.Equal(t, "int", y.Type())
	assert.Equal(t, Literal(`"s"`), y.Value())
	assert.Same(t, obj, y.Owner())

	tr := root.Get(2)
	assert.Equal(t, "T", tr.Namespace())
	tmpl, ok := tr.Value().(*Template)
	require.True(t, ok)
	assert.Equal(t, "Base", tmpl.Type)
	require.Equal(t, 2, tmpl.Params().Len())
	p, err := tmpl.Params().ByParam("p")
	require.NoError(t, err)
	assert.Equal(t, "int", p.Type())
	assert.Equal(t, Literal("3"), p.Value())
	q, _ := tmpl.Params().ByParam("q")
	assert.Nil(t, q.Value())
	assert.Same(t, tmpl, q.Owner().Template())

	m, ok := root.Get(3).Value().(*Map)
	require.True(t, ok)
	entry, err := m.ByKey("k")
	require.NoError(t, err)
	inner, ok := entry.Value().(*List)
	require.True(t, ok)
	assert.False(t, inner.Root)
	assert.Equal(t, 2, inner.Len())

	d := root.Get(4).Value().(*List)
	pair, ok := d.Get(0).Value().(*Pair)
	require.True(t, ok)
	assert.Equal(t, Literal("1"), pair.Left)
	assert.Equal(t, "Z", d.Get(1).Namespace())

	thing := root.Get(5)
	assert.Equal(t, "unnamed", thing.Visibility())
	assert.Equal(t, "", thing.Namespace())
}

func TestBuilder_Build(t *testing.T) {
	n, err := parser.New().Parse([]byte("A is Obj(x = 1)"))
	require.NoError(t, err)

	v, err := NewBuilder().Build(n.Children()[0])
	require.NoError(t, err)
	row, ok := v.(*ListRow)
	require.True(t, ok)
	assert.True(t, row.Dangling())
	assert.Equal(t, "A", row.Namespace())

	v, err = NewBuilder().Build(n.Children()[0].Field("value"))
	require.NoError(t, err)
	_, ok = v.(*Object)
	assert.True(t, ok)

	b := &Builder{Root: false}
	l, err := b.BuildList(n)
	require.NoError(t, err)
	assert.False(t, l.Root)
	assert.Equal(t, "[\n    A is Obj\n    (\n        x = 1\n    )\n]", l.String())
}

func TestBuilder_Structural(t *testing.T) {
	src := syntax.NewElement(syntax.KindSource, "", syntax.Span{Line: 1, Column: 1})
	src.AddChild(syntax.NewElement("weird", "?!", syntax.Span{Start: 4, End: 6, Line: 3, Column: 2}))

	_, err := NewBuilder().BuildList(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructural))

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, syntax.Kind("weird"), se.Kind)
	assert.Equal(t, 3, se.Span.Line)
	assert.Contains(t, se.Error(), "unrecognized node")

	// a member is not a valid top-level item
	member := syntax.NewElement(syntax.KindMember, "x = 1", syntax.Span{Line: 1, Column: 1})
	member.SetField("name", syntax.NewName("x", syntax.Span{}))
	member.SetField("value", syntax.NewElement(syntax.KindLiteral, "1", syntax.Span{}))
	src = syntax.NewElement(syntax.KindSource, "x = 1", syntax.Span{Line: 1, Column: 1})
	src.AddChild(member)
	_, err = NewBuilder().BuildList(src)
	assert.True(t, errors.Is(err, ErrStructural))

	lit := syntax.NewElement(syntax.KindLiteral, "1", syntax.Span{})
	_, err = NewBuilder().BuildList(lit)
	assert.True(t, errors.Is(err, ErrStructural))
}

func TestBuilder_SkipsComments(t *testing.T) {
	src := syntax.NewElement(syntax.KindSource, "", syntax.Span{})
	src.AddChild(syntax.NewElement(syntax.KindComment, "// c", syntax.Span{}))
	src.AddChild(syntax.NewElement(syntax.KindLiteral, "1", syntax.Span{}))

	l, err := NewBuilder().BuildList(src)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}
