package document

// Walk calls fn for v and then, depth first, for everything beneath it: the rows of containers, the parameters of
// templates, the values held by rows and the elements of pairs. When fn returns false, the item's children are
// skipped.
func Walk(v interface{}, fn func(interface{}) bool) {
	if v == nil || !fn(v) {
		return
	}
	switch x := v.(type) {
	case *List:
		walkRows(x.rows, fn)
	case *Object:
		walkRows(x.rows, fn)
	case *Template:
		Walk(x.params, fn)
		walkRows(x.rows, fn)
	case *Params:
		walkRows(x.rows, fn)
	case *Map:
		walkRows(x.rows, fn)
	case *Pair:
		walkValue(x.Left, fn)
		walkValue(x.Right, fn)
	case *ListRow:
		walkValue(x.value, fn)
	case *MemberRow:
		walkValue(x.value, fn)
	case *ParamRow:
		walkValue(x.value, fn)
	case *MapRow:
		walkValue(x.mapKey, fn)
		walkValue(x.value, fn)
	}
}

func walkRows[R rowType](rows []R, fn func(interface{}) bool) {
	for _, r := range rows {
		Walk(r, fn)
	}
}

func walkValue(v Value, fn func(interface{}) bool) {
	if v != nil {
		Walk(v, fn)
	}
}

// Filter returns, in walk order, every item beneath and including v for which cond holds
func Filter(v interface{}, cond func(interface{}) bool) []interface{} {
	var out []interface{}
	Walk(v, func(x interface{}) bool {
		if cond(x) {
			out = append(out, x)
		}
		return true
	})
	return out
}
