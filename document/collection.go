package document

import (
	"fmt"
	"reflect"
)

type rowType interface {
	Row
	comparable
}

// rowSource is implemented by each container to turn its accepted inputs into rows of its kind
type rowSource[R rowType] interface {
	container
	rowsFromCode(code string) ([]R, error)
	rowFromFields(f Fields) (R, error)
	// rowFromInput converts container-specific inputs; it returns false if in is not one of them
	rowFromInput(in interface{}) (R, bool, error)
}

// collection is the ordered row storage shared by every container
type collection[R rowType] struct {
	src  rowSource[R]
	rows []R
	// version changes whenever rows are added or removed
	version int
}

type input[R rowType] struct {
	row R
	// reused marks a row passed in by the caller rather than built from a snippet or Fields
	reused bool
}

func (c *collection[R]) init(src rowSource[R]) {
	c.src = src
}

// Len returns the number of rows
func (c *collection[R]) Len() int {
	return len(c.rows)
}

// Get returns the row at position i, counting back from the end if i is negative. It panics if i is out of range.
func (c *collection[R]) Get(i int) R {
	if i < 0 {
		i += len(c.rows)
	}
	return c.rows[i]
}

// Rows returns the rows in order; the slice is a copy
func (c *collection[R]) Rows() []R {
	out := make([]R, len(c.rows))
	copy(out, c.rows)
	return out
}

// Has reports whether r belongs to this container
func (c *collection[R]) Has(r R) bool {
	var zero R
	return r != zero && r.base().owner == container(c.src)
}

func (c *collection[R]) indexOf(r Row, hint int) int {
	if hint >= 0 && hint < len(c.rows) && Row(c.rows[hint]) == r {
		return hint
	}
	for i, x := range c.rows {
		if Row(x) == r {
			return i
		}
	}
	return -1
}

// Add appends rows built from inputs. Each input may be an NDF snippet, Fields, a row of this container's kind, or a
// slice of those; see the container for extra accepted shapes. Rows that already belong to a container are copied.
func (c *collection[R]) Add(inputs ...interface{}) (Result[R], error) {
	return c.insert("Add", len(c.rows), inputs)
}

// Insert inserts rows built from inputs before position at; at is clipped to the container and counts back from the
// end if negative
func (c *collection[R]) Insert(at int, inputs ...interface{}) (Result[R], error) {
	return c.insert("Insert", clip(at, len(c.rows)), inputs)
}

func (c *collection[R]) insert(op string, at int, inputs []interface{}) (Result[R], error) {
	items, single, err := c.gather(op, inputs)
	if err != nil {
		return Result[R]{}, err
	}
	rows, err := c.prepare(op, items, nil)
	if err != nil {
		return Result[R]{}, err
	}
	c.splice(at, at, rows)
	return Result[R]{rows: rows, single: single}, nil
}

// Replace replaces the rows selected by k with rows built from inputs. A single position or row may only be
// replaced by a single row; a Range may be replaced by any number.
func (c *collection[R]) Replace(k Key, inputs ...interface{}) (Result[R], error) {
	start, stop, one, err := c.resolve("Replace", k)
	if err != nil {
		return Result[R]{}, err
	}
	items, single, err := c.gather("Replace", inputs)
	if err != nil {
		return Result[R]{}, err
	}
	if one && len(items) != 1 {
		return Result[R]{}, inputError("Replace", nil, "cannot replace a single row with %d rows", len(items))
	}
	rows, err := c.prepare("Replace", items, c.rows[start:stop])
	if err != nil {
		return Result[R]{}, err
	}
	c.splice(start, stop, rows)
	return Result[R]{rows: rows, single: single}, nil
}

// Remove detaches and returns the rows selected by k
func (c *collection[R]) Remove(k Key) (Result[R], error) {
	start, stop, one, err := c.resolve("Remove", k)
	if err != nil {
		return Result[R]{}, err
	}
	removed := c.splice(start, stop, nil)
	return Result[R]{rows: removed, single: one}, nil
}

// LookupBy returns the first row for which cond holds
func (c *collection[R]) LookupBy(cond func(R) bool) (R, bool) {
	for _, r := range c.rows {
		if cond(r) {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// FindBy is like LookupBy but returns a NotFoundError if no row matches
func (c *collection[R]) FindBy(cond func(R) bool) (R, error) {
	if r, ok := c.LookupBy(cond); ok {
		return r, nil
	}
	var zero R
	return zero, &NotFoundError{Container: c.src.kind()}
}

// RemoveBy removes and returns the first row for which cond holds
func (c *collection[R]) RemoveBy(cond func(R) bool) (R, error) {
	r, err := c.FindBy(cond)
	if err != nil {
		return r, err
	}
	if _, err := c.Remove(r); err != nil {
		return r, err
	}
	return r, nil
}

func (c *collection[R]) lookupField(name, value string) (R, bool) {
	return c.LookupBy(func(r R) bool {
		switch v := r.get(name).(type) {
		case string:
			return v == value
		case Literal:
			return string(v) == value
		}
		return false
	})
}

func (c *collection[R]) findField(name, value string) (R, error) {
	if r, ok := c.lookupField(name, value); ok {
		return r, nil
	}
	var zero R
	return zero, &NotFoundError{Container: c.src.kind(), Field: name, Value: value}
}

func (c *collection[R]) removeField(name, value string) (R, error) {
	r, err := c.findField(name, value)
	if err != nil {
		return r, err
	}
	if _, err := c.Remove(r); err != nil {
		return r, err
	}
	return r, nil
}

// resolve returns the bounds selected by k and whether k names a single row
func (c *collection[R]) resolve(op string, k Key) (int, int, bool, error) {
	n := len(c.rows)
	switch k := k.(type) {
	case At:
		i := int(k)
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return 0, 0, false, fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, int(k), n)
		}
		return i, i + 1, true, nil
	case Range:
		start, stop := clip(k.Start, n), clip(k.Stop, n)
		if stop < start {
			stop = start
		}
		return start, stop, false, nil
	case Row:
		b := k.base()
		if b.owner == nil {
			return 0, 0, false, ErrDanglingIndex
		}
		if b.owner != container(c.src) {
			return 0, 0, false, ErrForeignContainer
		}
		i := c.indexOf(k, b.hint)
		if i < 0 {
			return 0, 0, false, ErrForeignContainer
		}
		return i, i + 1, true, nil
	}
	return 0, 0, false, inputError(op, k, "unsupported key")
}

func clip(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// gather converts inputs to rows; the result is single if exactly one non-slice input produced exactly one row
func (c *collection[R]) gather(op string, inputs []interface{}) ([]input[R], bool, error) {
	if len(inputs) == 0 {
		return nil, false, inputError(op, nil, "no rows given")
	}
	single := false
	if len(inputs) == 1 {
		switch in := inputs[0].(type) {
		case []interface{}:
			inputs = in
		case []string:
			inputs = anySlice(in)
		case []Fields:
			inputs = anySlice(in)
		case []R:
			inputs = anySlice(in)
		default:
			single = true
		}
	}

	var out []input[R]
	for _, in := range inputs {
		rows, err := c.convert(op, in)
		if err != nil {
			return nil, false, err
		}
		out = append(out, rows...)
	}
	return out, single && len(out) == 1, nil
}

func anySlice[T any](s []T) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func (c *collection[R]) convert(op string, in interface{}) ([]input[R], error) {
	switch v := in.(type) {
	case nil:
		return nil, inputError(op, nil, "nil input")
	case string:
		rows, err := c.src.rowsFromCode(v)
		if err != nil {
			return nil, err
		}
		out := make([]input[R], len(rows))
		for i, r := range rows {
			out[i] = input[R]{row: r}
		}
		return out, nil
	case Fields:
		r, err := c.src.rowFromFields(v)
		if err != nil {
			return nil, err
		}
		return []input[R]{{row: r}}, nil
	case R:
		var zero R
		if v == zero {
			return nil, inputError(op, in, "nil row")
		}
		return []input[R]{{row: v, reused: true}}, nil
	}

	r, ok, err := c.src.rowFromInput(in)
	if err != nil {
		return nil, err
	}
	if ok {
		return []input[R]{{row: r}}, nil
	}
	if reflect.ValueOf(in).Kind() == reflect.Slice {
		return nil, inputError(op, in, "nested sequences are not accepted")
	}
	return nil, inputError(op, in, "cannot make a %s row from this input", c.src.kind())
}

// prepare validates rows about to be attached and copies those that belong elsewhere. replacing holds the rows
// being replaced, positionally; a row that replaces itself is kept as is.
func (c *collection[R]) prepare(op string, items []input[R], replacing []R) ([]R, error) {
	out := make([]R, 0, len(items))
	seen := make(map[R]bool, len(items))
	for i, in := range items {
		r := in.row
		if err := missingField(r); err != nil {
			return nil, err
		}
		switch b := r.base(); {
		case in.reused && i < len(replacing) && replacing[i] == r && !seen[r]:
		case in.reused && (b.owner != nil || seen[r]):
			r = r.cloneRow().(R)
		case isAncestor(r, c.src):
			if !in.reused {
				release(r.Value(), r)
			}
			return nil, ErrCycle
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, nil
}

// splice replaces rows[start:stop] with rows, updates ownership and returns the rows that were detached
func (c *collection[R]) splice(start, stop int, rows []R) []R {
	keep := make(map[R]bool, len(rows))
	for _, r := range rows {
		keep[r] = true
	}
	removed := make([]R, 0, stop-start)
	for _, r := range c.rows[start:stop] {
		if !keep[r] {
			removed = append(removed, r)
		}
	}

	next := make([]R, 0, len(c.rows)-(stop-start)+len(rows))
	next = append(next, c.rows[:start]...)
	next = append(next, rows...)
	next = append(next, c.rows[stop:]...)
	c.rows = next

	for _, r := range removed {
		r.base().detach()
	}
	for i := start; i < len(c.rows); i++ {
		b := c.rows[i].base()
		b.owner = c.src
		b.hint = i
	}
	c.version++
	return removed
}

// appendRow attaches a freshly built row without copying it
func (c *collection[R]) appendRow(r R) error {
	if err := missingField(r); err != nil {
		return err
	}
	b := r.base()
	b.owner = c.src
	b.hint = len(c.rows)
	c.rows = append(c.rows, r)
	c.version++
	return nil
}

// copyRows attaches deep copies of rows
func (c *collection[R]) copyRows(rows []R) {
	for _, r := range rows {
		cp := r.cloneRow().(R)
		b := cp.base()
		b.owner = c.src
		b.hint = len(c.rows)
		c.rows = append(c.rows, cp)
	}
	c.version++
}
