package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_QuotedLiterals(t *testing.T) {
	assert.False(t, Equal(Literal("12"), Literal(`"12"`)))
	assert.True(t, Equal(Quoted("12"), Literal(`"12"`)))

	a := parse(t, "A is 12")
	b := parse(t, `A is "12"`)
	assert.False(t, Equal(a, b))
	assert.False(t, a.Get(0).Compare(b.Get(0), false))
	assert.False(t, a.Get(0).Compare(b.Get(0), true))

	s, err := b.Get(0).Value().(Literal).Unquote()
	require.NoError(t, err)
	assert.Equal(t, "12", s)
	assert.True(t, b.Get(0).Value().(Literal).IsString())
	assert.False(t, a.Get(0).Value().(Literal).IsString())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"A is Obj(x = 1)", "A is Obj(x = 1)", true},
		{"A is Obj(x = 1)", "A is Obj(x = 2)", false},
		{"A is Obj(x = 1)", "A is Other(x = 1)", false},
		{"A is Obj(x = 1, y = 2)", "A is Obj(y = 2, x = 1)", false},
		{"A is RGBA[1, 2]", "A is RGBA[1, 2]", true},
		{"A is RGBA[1, 2]", "A is [1, 2]", false},
		{"A is MAP[(a, 1)]", "A is MAP[(a, 1)]", true},
		{"A is [(1, 2)]", "A is [(1, 3)]", false},
		{"template T[a = 1] is O()", "template T[a = 1] is O()", true},
		{"template T[a = 1] is O()", "template T[a = 2] is O()", false},
		{"export A is 1", "A is 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(parse(t, tt.a), parse(t, tt.b)))
		})
	}
}

func TestMatch(t *testing.T) {
	value := parse(t, "A is Weapon(caliber = 5.56, ammo = Box(n = 30))").Get(0).Value()

	tests := []struct {
		pattern string
		match   bool
	}{
		{"Weapon(caliber = 5.56)", true},
		{"Weapon(ammo = Box())", true},
		{"Weapon(ammo = Box(n = 30))", true},
		{"Weapon(ammo = Box(n = 31))", false},
		{"Weapon(ammo = Crate())", false},
		{"Vehicle(caliber = 5.56)", false},
		{"Weapon(ammo = Box(n = 30), caliber = 5.56)", true},
		{"Weapon(caliber = 7.62)", false},
		{"Weapon()", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pattern := parse(t, tt.pattern).Get(0).Value()
			assert.Equal(t, tt.match, Match(value, pattern))
		})
	}

	// an untyped pattern object matches any type
	untyped := NewObject("")
	_, err := untyped.Add("caliber = 5.56")
	require.NoError(t, err)
	assert.True(t, Match(value, untyped))
}

func TestContainer_Compare(t *testing.T) {
	obj := parse(t, "A is Obj(x = 1, y = 2)").Get(0).Value().(*Object)

	ok, err := obj.Compare("y = 2", true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = obj.Compare("x = 1\ny = 2", false)
	require.NoError(t, err)
	assert.False(t, ok, "a snippet has no type")

	untyped := obj.Copy()
	untyped.Type = ""
	ok, err = untyped.Compare("x = 1\ny = 2", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = obj.Compare(obj.Copy(), false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = obj.Compare(Fields{"member": "z"}, true)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = obj.Compare("x = = 1", true)
	assert.Error(t, err)

	m := NewMap()
	_, err = m.Add([2]string{"a", "1"})
	require.NoError(t, err)
	assert.True(t, m.Get(0).Compare(NewPair(Literal("a"), nil), true))
	assert.False(t, m.Get(0).Compare(NewPair(Literal("a"), nil), false))
	assert.True(t, m.Get(0).Compare(NewPair(Literal("a"), Literal("1")), false))
}

func TestRow_CompareExistingOnly(t *testing.T) {
	r, err := NewMemberRow(Fields{"member": "x", "type": "int", "value": "1"})
	require.NoError(t, err)

	pattern, err := NewMemberRow(Fields{"member": "x"})
	require.NoError(t, err)
	assert.True(t, r.Compare(pattern, true))
	assert.False(t, r.Compare(pattern, false))

	pattern.SetType("float")
	assert.False(t, r.Compare(pattern, true))

	lr, _ := NewListRow(Fields{"value": "1"})
	assert.False(t, r.Compare(lr, true))
}

func TestRow_AsMap(t *testing.T) {
	r, err := NewMemberRow(Fields{"m": "x", "t": "int", "v": "1", "vis": "private"})
	require.NoError(t, err)

	want := Fields{
		"value":      Literal("1"),
		"member":     "x",
		"type":       "int",
		"visibility": "private",
		"namespace":  nil,
	}
	if diff := cmp.Diff(want, r.AsMap()); diff != "" {
		t.Fatalf("AsMap() mismatch (-want +got):\n%s", diff)
	}
}
