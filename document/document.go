// Package document is an editable in-memory model of NDF source.
//
// A parsed file is a root *List of *ListRow items. Values are opaque Literals or nested containers: *List, *Object,
// *Template, *Map and the (left, right) *Pair. Every row belongs to at most one container, and every container value
// to at most one row; attaching anything that already has an owner attaches a deep copy instead, so the model is
// always a tree.
//
// Containers accept rows in several shapes: NDF snippets, Fields, existing rows, and for *Map also pairs. Operations
// that were given a single row-shaped input return a single row; those given a slice return a slice.
//
// A model is not safe for concurrent mutation.
package document

import "math"

// Container is implemented by *List, *Object, *Template, *Params and *Map
type Container interface {
	// Len returns the number of rows
	Len() int
	// String returns the container rendered as NDF, or "" if it cannot be printed; WriteTo reports why
	String() string
	kind() string
}

type container interface {
	Container
	node
	indexOf(r Row, hint int) int
}

// Key selects rows of a container: an At position, a Range, or a row of that container
type Key interface {
	key()
}

// At selects the row at a position; negative positions count back from the end
type At int

func (At) key() {}

// Range selects the rows from Start up to but excluding Stop. Negative bounds count back from the end and both are
// clipped to the container.
type Range struct {
	Start int
	Stop  int
}

func (Range) key() {}

// End is a Range bound past the last row
const End = math.MaxInt

// From returns the Range from start to the end
func From(start int) Range {
	return Range{Start: start, Stop: End}
}

// Result is what a mutation returns: one row if it was given a single row-shaped input that produced one row,
// otherwise the slice of rows
type Result[R Row] struct {
	rows   []R
	single bool
}

// IsSingle reports whether the result stands for a single row
func (r Result[R]) IsSingle() bool {
	return r.single
}

// Single returns the row of a single result; ok is false for a plural result, even one holding a single row
func (r Result[R]) Single() (row R, ok bool) {
	if !r.single || len(r.rows) == 0 {
		return row, false
	}
	return r.rows[0], true
}

// Rows returns every row of the result
func (r Result[R]) Rows() []R {
	return r.rows
}

func (r Result[R]) Len() int {
	return len(r.rows)
}
