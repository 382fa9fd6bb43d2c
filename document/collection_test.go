package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single[R Row](t *testing.T, res Result[R]) R {
	t.Helper()
	r, ok := res.Single()
	require.True(t, ok, "expected a single result, got %d rows", res.Len())
	return r
}

func namespaces(l *List) []string {
	var out []string
	for _, r := range l.Rows() {
		out = append(out, r.Namespace())
	}
	return out
}

func TestList_LookupAndReplaceRange(t *testing.T) {
	root := parse(t, "A is 12\nB is 24\nC is 24")

	b, ok := root.LookupBy(func(r *ListRow) bool { return r.Value() == Literal("24") })
	require.True(t, ok)
	assert.Equal(t, "B", b.Namespace())
	i, ok := b.Index()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	a, c := root.Get(0), root.Get(2)
	res, err := root.Replace(Range{0, 2}, Fields{"value": "1", "namespace": "Z"})
	require.NoError(t, err)
	require.True(t, res.IsSingle())
	assert.Equal(t, "Z", single(t, res).Namespace())

	assert.Equal(t, "Z is 1\n\nC is 24\n", root.String())
	i, ok = c.Index()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.True(t, a.Dangling())
	assert.True(t, b.Dangling())
}

func TestList_Add(t *testing.T) {
	root := NewRoot()

	res, err := root.Add("A is 1")
	require.NoError(t, err)
	assert.True(t, res.IsSingle())

	res, err = root.Add("B is 2\nC is 3")
	require.NoError(t, err)
	assert.False(t, res.IsSingle())
	assert.Equal(t, 2, res.Len())

	res, err = root.Add([]string{"D is 4"})
	require.NoError(t, err)
	assert.False(t, res.IsSingle())
	_, isSingle := res.Single()
	assert.False(t, isSingle, "a one-row slice input is still plural")
	assert.Equal(t, 1, res.Len())

	res, err = root.Add(Fields{"n": "E", "v": "5"}, "F is 6")
	require.NoError(t, err)
	assert.False(t, res.IsSingle())

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, namespaces(root))
	for i, r := range root.Rows() {
		idx, ok := r.Index()
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Same(t, root, r.Owner())
	}
}

func TestList_Insert(t *testing.T) {
	root := parse(t, "A is 1\nB is 2")

	_, err := root.Insert(0, "Z is 0")
	require.NoError(t, err)
	_, err = root.Insert(100, "Y is 9")
	require.NoError(t, err)
	_, err = root.Insert(-1, "X is 8")
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "A", "B", "X", "Y"}, namespaces(root))
	assert.Equal(t, "Y", root.Get(-1).Namespace())
}

func TestList_Remove(t *testing.T) {
	root := parse(t, "A is 1\nB is 2\nC is 3\nD is 4\nE is 5")

	res, err := root.Remove(Range{1, 3})
	require.NoError(t, err)
	assert.False(t, res.IsSingle())
	require.Equal(t, 2, res.Len())
	assert.Equal(t, 3, root.Len())
	for _, r := range res.Rows() {
		assert.True(t, r.Dangling())
		_, ok := r.Index()
		assert.False(t, ok)
	}

	res, err = root.Remove(At(-1))
	require.NoError(t, err)
	assert.True(t, res.IsSingle())
	assert.Equal(t, "E", single(t, res).Namespace())

	d, err := root.RemoveByNamespace("D")
	require.NoError(t, err)
	assert.True(t, d.Dangling())
	assert.Equal(t, []string{"A"}, namespaces(root))

	res, err = root.Remove(From(0))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, 0, root.Len())
}

func TestList_RemoveLength(t *testing.T) {
	tests := []struct {
		key     Key
		removed int
	}{
		{At(0), 1},
		{At(-2), 1},
		{Range{0, 2}, 2},
		{Range{-3, End}, 3},
		{Range{3, 1}, 0},
		{Range{-100, 100}, 4},
		{From(2), 2},
	}
	for _, tt := range tests {
		root := parse(t, "A is 1\nB is 2\nC is 3\nD is 4")
		res, err := root.Remove(tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.removed, res.Len(), "%#v", tt.key)
		assert.Equal(t, 4-tt.removed, root.Len(), "%#v", tt.key)
	}
}

func TestList_CopyOnAttach(t *testing.T) {
	root := parse(t, "A is Obj(x = 1)")
	other := NewRoot()

	orig := root.Get(0)
	res, err := other.Add(orig)
	require.NoError(t, err)
	cp := single(t, res)
	assert.NotSame(t, orig, cp)
	assert.Same(t, root, orig.Owner())
	assert.Same(t, other, cp.Owner())
	assert.True(t, cp.Compare(orig, false))

	obj := orig.Value().(*Object)
	cpObj := cp.Value().(*Object)
	assert.NotSame(t, obj, cpObj)
	assert.Same(t, cp, cpObj.Parent())

	_, err = cpObj.Get(0).Edit(Fields{"value": "2"})
	require.NoError(t, err)
	assert.Equal(t, Literal("1"), obj.Get(0).Value())

	// an owned value handed to a new row is copied too
	r, err := NewListRow(Fields{"namespace": "B", "value": obj})
	require.NoError(t, err)
	assert.NotSame(t, obj, r.Value())
	assert.Same(t, orig, obj.Parent())
}

func TestList_AttachDangling(t *testing.T) {
	root := parse(t, "A is 1")
	r, err := NewListRow(Fields{"n": "X", "v": "2"})
	require.NoError(t, err)
	assert.True(t, r.Dangling())

	res, err := root.Add(r)
	require.NoError(t, err)
	assert.Same(t, r, single(t, res))
	assert.False(t, r.Dangling())
	i, _ := r.Index()
	assert.Equal(t, 1, i)

	// the same dangling row twice in one call is attached once and copied once
	s, _ := NewListRow(Fields{"n": "S", "v": "3"})
	res, err = root.Add(s, s)
	require.NoError(t, err)
	assert.Same(t, s, res.Rows()[0])
	assert.NotSame(t, s, res.Rows()[1])
}

func TestList_ReplaceSelf(t *testing.T) {
	root := parse(t, "A is 1\nB is 2")
	a := root.Get(0)

	res, err := root.Replace(At(0), a)
	require.NoError(t, err)
	assert.Same(t, a, single(t, res))
	assert.False(t, a.Dangling())

	// moving an owned row to another position copies it
	res, err = root.Replace(At(1), a)
	require.NoError(t, err)
	assert.NotSame(t, a, single(t, res))
	assert.Equal(t, []string{"A", "A"}, namespaces(root))

	res, err = root.Replace(root.Get(1), "C is 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, namespaces(root))
}

func TestList_Errors(t *testing.T) {
	root := parse(t, "A is 1\nB is 2")
	other := parse(t, "C is 3")
	dangling, _ := NewListRow(Fields{"value": "1"})

	tests := []struct {
		name string
		err  error
		fn   func() error
	}{
		{"unknown field", ErrUnknownField, func() error { _, err := root.Add(Fields{"junk": "1"}); return err }},
		{"alias and name", ErrInvalidInput, func() error { _, err := root.Add(Fields{"value": "1", "v": "2"}); return err }},
		{"wrong field type", ErrInvalidInput, func() error { _, err := root.Add(Fields{"value": 12}); return err }},
		{"missing value", ErrMissingField, func() error { _, err := root.Add(Fields{"namespace": "X"}); return err }},
		{"dangling index", ErrDanglingIndex, func() error { _, err := root.Remove(dangling); return err }},
		{"foreign index", ErrForeignContainer, func() error { _, err := root.Remove(other.Get(0)); return err }},
		{"out of range", ErrIndexOutOfRange, func() error { _, err := root.Remove(At(2)); return err }},
		{"negative out of range", ErrIndexOutOfRange, func() error { _, err := root.Replace(At(-3), "X is 1"); return err }},
		{"one with many", ErrInvalidInput, func() error { _, err := root.Replace(At(0), "X is 1\nY is 2"); return err }},
		{"no input", ErrInvalidInput, func() error { _, err := root.Add(); return err }},
		{"empty snippet", ErrInvalidInput, func() error { _, err := root.Add("  \n"); return err }},
		{"nested slice", ErrInvalidInput, func() error { _, err := root.Add([]interface{}{[]string{"X is 1"}}); return err }},
		{"wrong row kind", ErrInvalidInput, func() error { m, _ := NewMemberRow(Fields{"v": "1"}); _, err := root.Add(m); return err }},
		{"not found", ErrNotFound, func() error { _, err := root.ByNamespace("Q"); return err }},
		{"find by", ErrNotFound, func() error {
			_, err := root.FindBy(func(r *ListRow) bool { return false })
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := root.String()
			err := tt.fn()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
			assert.Equal(t, before, root.String())
		})
	}
}

func TestList_ErrorTypes(t *testing.T) {
	root := parse(t, "A is 1")

	_, err := root.Add(Fields{"junk": "1"})
	var ufe *UnknownFieldError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "ListRow", ufe.Row)
	assert.Equal(t, "junk", ufe.Field)

	_, err = root.ByNamespace("Q")
	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, `found no row in List with namespace == "Q"`, nfe.Error())

	_, err = root.Add(3)
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "Add", ie.Op)
}

func TestList_Cycles(t *testing.T) {
	l := NewList()
	_, err := l.Add(Fields{"value": l})
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Nil(t, l.Parent())
	assert.Equal(t, 0, l.Len())

	outer := NewObject("Outer")
	res, err := outer.Add(Fields{"m": "inner", "v": NewList()})
	require.NoError(t, err)
	inner := single(t, res).Value().(*List)
	_, err = inner.Add(Fields{"value": outer})
	assert.True(t, errors.Is(err, ErrCycle))

	root := parse(t, "A is 1")
	_, err = root.Get(0).SetValue(root)
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Equal(t, Literal("1"), root.Get(0).Value())
}

func TestList_PairPlacement(t *testing.T) {
	p := NewPair(Literal("1"), Literal("2"))

	r, err := NewListRow(Fields{"value": p})
	require.NoError(t, err)
	assert.Same(t, p, r.Value())

	_, err = NewMemberRow(Fields{"value": p})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewMapRow(Fields{"key": p, "value": "1"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	// a pair owned by one row is copied into another
	r2, err := NewListRow(Fields{"value": p})
	require.NoError(t, err)
	assert.NotSame(t, p, r2.Value())
	assert.True(t, Equal(p, r2.Value()))
}

func TestObject_Members(t *testing.T) {
	root := parse(t, "A is Obj(x = 1, Name is Sub(), y = 2)")
	obj := root.Get(0).Value().(*Object)

	x, err := obj.ByMember("x")
	require.NoError(t, err)
	assert.Equal(t, Literal("1"), x.Value())

	named, ok := obj.LookupNamespace("Name")
	require.True(t, ok)
	assert.Equal(t, "", named.Member())

	res, err := obj.Add("z: int = 3")
	require.NoError(t, err)
	assert.Equal(t, "int", single(t, res).Type())

	_, err = obj.RemoveByMember("y")
	require.NoError(t, err)
	_, ok = obj.LookupMember("y")
	assert.False(t, ok)
	assert.Equal(t, 3, obj.Len())
}

func TestTemplate_Params(t *testing.T) {
	root := parse(t, "template T[a = 1] is Obj(x = <a>)")
	tmpl := root.Get(0).Value().(*Template)
	params := tmpl.Params()

	res, err := params.Add("b: string = \"s\"", Fields{"param": "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
	assert.Equal(t, 3, params.Len())

	_, err = params.Add(Fields{"type": "int"})
	assert.True(t, errors.Is(err, ErrMissingField))

	_, err = params.Get(0).SetParam("")
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, "a", params.Get(0).Param())

	c, err := params.RemoveByParam("c")
	require.NoError(t, err)
	assert.True(t, c.Dangling())

	_, err = params.Get(0).SetValue(NewPair(Literal("1"), Literal("2")))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	// an owned template is copied rather than nested in itself
	_, err = tmpl.Get(0).SetValue(tmpl)
	require.NoError(t, err)
	assert.NotSame(t, tmpl, tmpl.Get(0).Value())

	free := NewTemplate("Obj")
	res, err = free.Params().Add("p")
	require.NoError(t, err)
	_, err = single(t, res).SetValue(free)
	assert.True(t, errors.Is(err, ErrCycle))
}

func TestMap_Entries(t *testing.T) {
	m := NewMap()
	res, err := m.Add(NewPair(Literal("k1"), Literal("v1")), NewPair(Literal("k2"), Literal("v2")))
	require.NoError(t, err)
	assert.False(t, res.IsSingle())
	assert.Equal(t, "MAP[(k1, v1), (k2, v2)]", m.String())

	res, err = m.Add([2]string{"k3", "v3"})
	require.NoError(t, err)
	assert.True(t, res.IsSingle())
	_, err = m.Add("(k4, v4)")
	require.NoError(t, err)

	assert.True(t, m.Contains("k3"))
	assert.False(t, m.Contains("v3"))
	e, err := m.ByKey("k4")
	require.NoError(t, err)
	assert.Equal(t, Literal("v4"), e.Value())

	_, err = m.RemoveByKey("k1")
	require.NoError(t, err)
	_, ok := m.LookupKey("k1")
	assert.False(t, ok)
	assert.Equal(t, 3, m.Len())

	_, err = m.Add(Fields{"key": "k5"})
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestMatcher(t *testing.T) {
	root := parse(t, `
Gun1 is Weapon(caliber = 5.56, ammo = 30)
Gun2 is Weapon(caliber = 7.62)
Gun3 is Weapon(caliber = 5.56, name = "x")
Car is Vehicle(caliber = 5.56)
`)

	m, err := root.MatchPattern("Weapon(caliber = 5.56)")
	require.NoError(t, err)
	var got []string
	var idx []int
	for m.Next() {
		got = append(got, m.Row().Namespace())
		idx = append(idx, m.Index())
	}
	require.NoError(t, m.Err())
	assert.Equal(t, []string{"Gun1", "Gun3"}, got)
	assert.Equal(t, []int{0, 2}, idx)

	m.Reset()
	rows, err := m.Collect()
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	m, err = root.MatchPattern("Gun2 is Weapon()")
	require.NoError(t, err)
	rows, err = m.Collect()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gun2", rows[0].Namespace())

	gun := root.Get(0).Value().(*Object)
	mm, err := gun.MatchPattern("caliber = 5.56")
	require.NoError(t, err)
	members, err := mm.Collect()
	require.NoError(t, err)
	assert.Len(t, members, 1)

	_, err = root.MatchPattern("A is 1\nB is 2")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = root.MatchPattern([]string{"A is 1"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatcher_Modified(t *testing.T) {
	root := parse(t, "A is 1\nB is 2\nC is 3")
	m, err := root.MatchPattern(Fields{})
	require.NoError(t, err)

	require.True(t, m.Next())
	m.Row().SetNamespace("Q")
	require.True(t, m.Next())

	_, err = root.Add("D is 4")
	require.NoError(t, err)
	assert.False(t, m.Next())
	assert.True(t, errors.Is(m.Err(), ErrModifiedDuringIteration))

	m.Reset()
	rows, err := m.Collect()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
