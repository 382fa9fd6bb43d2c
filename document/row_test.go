package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sblinch/ndf-go/syntax"
)

func TestRow_Edit(t *testing.T) {
	root := parse(t, "A is 1")
	r := root.Get(0)

	_, err := r.Edit(Fields{"n": "B", "vis": "export", "v": "2"})
	require.NoError(t, err)
	assert.Equal(t, "export B is 2", r.String())

	tests := []struct {
		name   string
		fields Fields
		target error
	}{
		{"unknown field", Fields{"namespace": "C", "bogus": "x"}, ErrUnknownField},
		{"required field cleared", Fields{"namespace": "C", "value": nil}, ErrMissingField},
		{"alias and name", Fields{"n": "C", "namespace": "D"}, ErrInvalidInput},
		{"wrong type", Fields{"namespace": "C", "visibility": 3}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Edit(tt.fields)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Equal(t, "export B is 2", r.String())
		})
	}

	_, err = r.EditLenient(Fields{"namespace": "C", "bogus": "x"})
	require.NoError(t, err)
	assert.Equal(t, "C", r.Namespace())

	var ufe *UnknownFieldError
	_, err = r.Edit(Fields{"bogus": "x"})
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "cannot set ListRow.bogus, field does not exist", ufe.Error())
}

func TestRow_EditDangling(t *testing.T) {
	// a dangling row may lack required fields until it is attached
	r, err := NewMemberRow(Fields{"member": "x"})
	require.NoError(t, err)
	assert.Nil(t, r.Value())

	o := NewObject("Obj")
	_, err = o.Add(r)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, 0, o.Len())

	_, err = r.SetValue(Literal("1"))
	require.NoError(t, err)
	_, err = o.Add(r)
	require.NoError(t, err)
	assert.Same(t, r, o.Get(0))
}

func TestRow_EditCode(t *testing.T) {
	root := parse(t, "A is 1\nB is 2")
	r := root.Get(1)

	_, err := r.EditCode("export C is Obj(x = 1)")
	require.NoError(t, err)
	assert.Equal(t, "export", r.Visibility())
	assert.Equal(t, "C", r.Namespace())
	obj, ok := r.Value().(*Object)
	require.True(t, ok)
	assert.Same(t, r, obj.Parent())
	assert.Same(t, r, root.Get(1))

	_, err = r.EditCode("D is 1\nE is 2")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "C", r.Namespace())

	m, err := obj.Get(0).EditCode("y: int = 2")
	require.NoError(t, err)
	assert.Equal(t, "y: int = 2", m.String())

	tmpl := parse(t, "template T[a = 1] is O()").Get(0).Value().(*Template)
	p, err := tmpl.Params().Get(0).EditCode("b: float")
	require.NoError(t, err)
	assert.Equal(t, "b: float", p.String())

	entry := parse(t, "A is MAP[(k, v)]").Get(0).Value().(*Map).Get(0)
	_, err = entry.EditCode("(k2, [1])")
	require.NoError(t, err)
	assert.Equal(t, Literal("k2"), entry.Key())
	inner, ok := entry.Value().(*List)
	require.True(t, ok)
	assert.Equal(t, 1, inner.Len())
}

func TestRow_FromCode(t *testing.T) {
	r, err := ListRowFromCode("private X is [1]")
	require.NoError(t, err)
	assert.True(t, r.Dangling())
	assert.Equal(t, "private X is [1]", r.String())

	m, err := MemberRowFromCode("Name is Other()")
	require.NoError(t, err)
	assert.Equal(t, "", m.Member())
	assert.Equal(t, "Name", m.Namespace())

	p, err := ParamRowFromCode("a: int = 3")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Param())
	assert.Equal(t, Literal("3"), p.Value())

	e, err := MapRowFromCode("(a, b)")
	require.NoError(t, err)
	assert.Equal(t, Literal("b"), e.Value())

	_, err = ListRowFromCode("   ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSnippet_ErrorLine(t *testing.T) {
	o := NewObject("Obj")
	_, err := o.Add("a = 1\nb = = 2")
	require.Error(t, err)

	var se *syntax.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 0, o.Len())
}

func TestSetParser(t *testing.T) {
	defer SetParser(currentParser())

	SetParser(stubParser{err: &syntax.Error{Line: 1, Column: 1, Msg: "stub"}})
	_, err := NewRoot().Add("A is 1")
	var se *syntax.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "stub", se.Msg)
}

type stubParser struct {
	err error
}

func (p stubParser) Parse([]byte) (syntax.Node, error) {
	return nil, p.err
}

func TestRow_ShortAccessors(t *testing.T) {
	root := parse(t, "export A is Obj(x = 1)\ntemplate T[p: int = 4] is O()\nM is MAP[(k, 5)]")

	a := root.Get(0)
	assert.Equal(t, "export", a.Vis())
	assert.Equal(t, "A", a.N())
	assert.Equal(t, a.Value(), a.V())

	x := a.V().(*Object).Get(0)
	assert.Equal(t, "x", x.M())
	assert.Equal(t, "", x.T())
	assert.Equal(t, Literal("1"), x.V())

	p := root.Get(1).V().(*Template).Params().Get(0)
	assert.Equal(t, "p", p.P())
	assert.Equal(t, "int", p.T())
	assert.Equal(t, Literal("4"), p.V())

	kv := root.Get(2).V().(*Map).Get(0)
	assert.Equal(t, Literal("k"), kv.K())
	assert.Equal(t, Literal("5"), kv.V())
}
