package document

// Equal reports whether a and b are structurally equal: the same kind, equal types, equal literal text, and rows equal
// field by field in the same order. A root list equals a non-root list with the same rows.
func Equal(a, b Value) bool {
	return equalValue(a, b)
}

// Match reports whether v matches pattern. Unset pattern fields match anything, an unset pattern type matches any
// type, and every row of a pattern container must match some row of the corresponding container in any order.
func Match(v, pattern Value) bool {
	return matchValue(v, pattern)
}

func compareValues(a, b Value, existingOnly bool) bool {
	if existingOnly {
		return matchValue(a, b)
	}
	return equalValue(a, b)
}

func equalValue(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Literal:
		y, ok := b.(Literal)
		return ok && x == y
	case *Pair:
		y, ok := b.(*Pair)
		return ok && equalValue(x.Left, y.Left) && equalValue(x.Right, y.Right)
	case *List:
		y, ok := b.(*List)
		return ok && x.Type == y.Type && equalRowSet(x.rows, y.rows)
	case *Object:
		y, ok := b.(*Object)
		return ok && x.Type == y.Type && equalRowSet(x.rows, y.rows)
	case *Template:
		y, ok := b.(*Template)
		return ok && x.Type == y.Type && equalRowSet(x.rows, y.rows) && equalRowSet(x.params.rows, y.params.rows)
	case *Map:
		y, ok := b.(*Map)
		return ok && equalRowSet(x.rows, y.rows)
	}
	return false
}

func matchValue(v, pattern Value) bool {
	switch p := pattern.(type) {
	case nil:
		return true
	case Literal:
		x, ok := v.(Literal)
		return ok && x == p
	case *Pair:
		x, ok := v.(*Pair)
		return ok && matchValue(x.Left, p.Left) && matchValue(x.Right, p.Right)
	case *List:
		x, ok := v.(*List)
		return ok && (p.Type == "" || x.Type == p.Type) && matchRowSet(x.rows, p.rows)
	case *Object:
		var typ string
		var rows []*MemberRow
		switch x := v.(type) {
		case *Object:
			typ, rows = x.Type, x.rows
		case *Template:
			typ, rows = x.Type, x.rows
		default:
			return false
		}
		return (p.Type == "" || typ == p.Type) && matchRowSet(rows, p.rows)
	case *Template:
		x, ok := v.(*Template)
		return ok && (p.Type == "" || x.Type == p.Type) && matchRowSet(x.rows, p.rows) &&
			matchRowSet(x.params.rows, p.params.rows)
	case *Map:
		x, ok := v.(*Map)
		return ok && matchRowSet(x.rows, p.rows)
	}
	return false
}

// compareRows compares two rows of the same kind field by field; with existingOnly set, fields unset in other are
// skipped and values are matched as patterns
func compareRows(r, other Row, existingOnly bool) bool {
	if other == nil || r.schema() != other.schema() {
		return false
	}
	for _, f := range r.schema().fields {
		want := other.get(f.name)
		if existingOnly && isEmpty(want) {
			continue
		}
		have := r.get(f.name)
		if f.value {
			if !compareValues(toValue(have), toValue(want), existingOnly) {
				return false
			}
			continue
		}
		hs, _ := have.(string)
		ws, _ := want.(string)
		if hs != ws {
			return false
		}
	}
	return true
}

func equalRowSet[R rowType](rows, other []R) bool {
	if len(rows) != len(other) {
		return false
	}
	for i := range rows {
		if !compareRows(rows[i], other[i], false) {
			return false
		}
	}
	return true
}

func matchRowSet[R rowType](rows, patterns []R) bool {
	for _, p := range patterns {
		found := false
		for _, r := range rows {
			if compareRows(r, p, true) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
