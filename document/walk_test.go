package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	root := parse(t, "A is Obj(x = 1, y = [2, 3])\ntemplate T[p = 4] is O(z = <p>)\nM is MAP[(k, 5)]")

	var literals []Literal
	Walk(root, func(v interface{}) bool {
		if lit, ok := v.(Literal); ok {
			literals = append(literals, lit)
		}
		return true
	})
	assert.Equal(t, []Literal{"1", "2", "3", "4", "<p>", "k", "5"}, literals)

	literals = nil
	Walk(root, func(v interface{}) bool {
		if _, ok := v.(*Object); ok {
			return false
		}
		if lit, ok := v.(Literal); ok {
			literals = append(literals, lit)
		}
		return true
	})
	assert.Equal(t, []Literal{"4", "<p>", "k", "5"}, literals)
}

func TestFilter(t *testing.T) {
	root := parse(t, "A is Obj(x = 1, y = Sub(x = 2))\nB is [(1, Obj(x = 3))]")

	members := Filter(root, func(v interface{}) bool {
		m, ok := v.(*MemberRow)
		return ok && m.Member() == "x"
	})
	require.Len(t, members, 3)
	for i, want := range []Literal{"1", "2", "3"} {
		assert.Equal(t, want, members[i].(*MemberRow).Value())
	}

	pairs := Filter(root, func(v interface{}) bool {
		_, ok := v.(*Pair)
		return ok
	})
	assert.Len(t, pairs, 1)

	assert.Empty(t, Filter(nil, func(interface{}) bool { return true }))
}
