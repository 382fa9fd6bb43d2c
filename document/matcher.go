package document

// Matcher iterates lazily over the rows of a container that match a pattern row. It fails with
// ErrModifiedDuringIteration if rows are added to or removed from the container between calls to Next; editing the
// fields of existing rows is allowed.
//
//	m, err := root.MatchPattern("unnamed Weapon(caliber = 5.56)")
//	for m.Next() {
//		fmt.Println(m.Index(), m.Row())
//	}
//	if err := m.Err(); err != nil { ... }
type Matcher[R rowType] struct {
	c       *collection[R]
	pattern R
	version int
	pos     int
	row     R
	index   int
	err     error
}

// MatchPattern returns a Matcher for the rows matching pattern, which must describe exactly one row: a snippet,
// Fields or a row. Fields unset in the pattern match anything.
func (c *collection[R]) MatchPattern(pattern interface{}) (*Matcher[R], error) {
	items, err := c.convert("MatchPattern", pattern)
	if err != nil {
		return nil, err
	}
	if len(items) != 1 {
		return nil, inputError("MatchPattern", nil, "expected exactly one pattern row, got %d", len(items))
	}
	return &Matcher[R]{c: c, pattern: items[0].row, version: c.version, index: -1}, nil
}

// Next advances to the next matching row and reports whether there is one
func (m *Matcher[R]) Next() bool {
	if m.err != nil {
		return false
	}
	if m.c.version != m.version {
		m.err = ErrModifiedDuringIteration
		return false
	}
	for m.pos < len(m.c.rows) {
		r := m.c.rows[m.pos]
		m.pos++
		if compareRows(r, m.pattern, true) {
			m.row, m.index = r, m.pos-1
			return true
		}
	}
	var zero R
	m.row, m.index = zero, -1
	return false
}

// Row returns the current row
func (m *Matcher[R]) Row() R {
	return m.row
}

// Index returns the position of the current row
func (m *Matcher[R]) Index() int {
	return m.index
}

// Err returns the error that stopped the iteration, if any
func (m *Matcher[R]) Err() error {
	return m.err
}

// Reset rewinds the matcher to the first row of the container as it is now
func (m *Matcher[R]) Reset() {
	var zero R
	m.pos, m.row, m.index, m.err = 0, zero, -1, nil
	m.version = m.c.version
}

// Collect returns every remaining match
func (m *Matcher[R]) Collect() ([]R, error) {
	var out []R
	for m.Next() {
		out = append(out, m.Row())
	}
	return out, m.Err()
}
