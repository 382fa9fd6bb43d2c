package document

// List is an ordered sequence of ListRow items. A root list is a whole file and prints one item per line; any other
// list is a bracketed array, optionally typed as in RGBA[...].
type List struct {
	collection[*ListRow]
	// Root marks a file-level list
	Root bool
	// Type is the optional prefix of a typed array
	Type   string
	parent Row
}

// NewList returns an empty, unowned, non-root List
func NewList() *List {
	l := &List{}
	l.init(l)
	return l
}

// NewRoot returns an empty root List
func NewRoot() *List {
	l := NewList()
	l.Root = true
	return l
}

// Parent returns the row holding l, or nil
func (l *List) Parent() Row { return l.parent }

// ByNamespace returns the first row with namespace ns, or a NotFoundError
func (l *List) ByNamespace(ns string) (*ListRow, error) {
	return l.findField("namespace", ns)
}

// LookupNamespace returns the first row with namespace ns
func (l *List) LookupNamespace(ns string) (*ListRow, bool) {
	return l.lookupField("namespace", ns)
}

// RemoveByNamespace removes and returns the first row with namespace ns
func (l *List) RemoveByNamespace(ns string) (*ListRow, error) {
	return l.removeField("namespace", ns)
}

// Copy returns an unowned deep copy of l
func (l *List) Copy() *List {
	c := NewList()
	c.Root, c.Type = l.Root, l.Type
	c.copyRows(l.rows)
	return c
}

func (l *List) String() string { return render(l) }

// Compare reports whether l matches other: a *List, a snippet, Fields, a row or a slice of those. With existingOnly
// set other is a pattern; see Match. Otherwise see Equal.
func (l *List) Compare(other interface{}, existingOnly bool) (bool, error) {
	if o, ok := other.(*List); ok {
		return compareValues(l, o, existingOnly), nil
	}
	rows, err := l.otherRows("List.Compare", other)
	if err != nil {
		return false, err
	}
	if existingOnly {
		return matchRowSet(l.rows, rows), nil
	}
	return l.Type == "" && equalRowSet(l.rows, rows), nil
}

func (l *List) kind() string     { return "List" }
func (l *List) copyValue() Value { return l.Copy() }
func (l *List) parentRow() Row   { return l.parent }
func (l *List) setParent(r Row)  { l.parent = r }
func (l *List) up() node         { return upFrom(l.parent) }

func (l *List) rowFromFields(f Fields) (*ListRow, error) { return NewListRow(f) }

func (l *List) rowsFromCode(code string) ([]*ListRow, error) {
	return listRowsFromCode(code, l.Root)
}

func (l *List) rowFromInput(interface{}) (*ListRow, bool, error) {
	return nil, false, nil
}

func upFrom(r Row) node {
	if r == nil {
		return nil
	}
	return r
}

// Object is a typed object such as Weapon(...); its rows are members
type Object struct {
	collection[*MemberRow]
	// Type is the object's type name
	Type   string
	parent Row
}

// NewObject returns an empty, unowned Object of the given type
func NewObject(typ string) *Object {
	o := &Object{Type: typ}
	o.init(o)
	return o
}

func (o *Object) Parent() Row { return o.parent }

// ByMember returns the first row with member name m, or a NotFoundError
func (o *Object) ByMember(m string) (*MemberRow, error) {
	return o.findField("member", m)
}

func (o *Object) LookupMember(m string) (*MemberRow, bool) {
	return o.lookupField("member", m)
}

func (o *Object) RemoveByMember(m string) (*MemberRow, error) {
	return o.removeField("member", m)
}

func (o *Object) ByNamespace(ns string) (*MemberRow, error) {
	return o.findField("namespace", ns)
}

func (o *Object) LookupNamespace(ns string) (*MemberRow, bool) {
	return o.lookupField("namespace", ns)
}

func (o *Object) RemoveByNamespace(ns string) (*MemberRow, error) {
	return o.removeField("namespace", ns)
}

func (o *Object) Copy() *Object {
	c := NewObject(o.Type)
	c.copyRows(o.rows)
	return c
}

func (o *Object) String() string { return render(o) }

// Compare reports whether o matches other: an *Object, a *Template, a snippet of members, Fields, a row or a slice of
// those
func (o *Object) Compare(other interface{}, existingOnly bool) (bool, error) {
	switch x := other.(type) {
	case *Object:
		return compareValues(o, x, existingOnly), nil
	case *Template:
		return compareValues(o, x, existingOnly), nil
	}
	rows, err := o.otherRows("Object.Compare", other)
	if err != nil {
		return false, err
	}
	if existingOnly {
		return matchRowSet(o.rows, rows), nil
	}
	return o.Type == "" && equalRowSet(o.rows, rows), nil
}

func (o *Object) kind() string     { return "Object" }
func (o *Object) copyValue() Value { return o.Copy() }
func (o *Object) parentRow() Row   { return o.parent }
func (o *Object) setParent(r Row)  { o.parent = r }
func (o *Object) up() node         { return upFrom(o.parent) }

func (o *Object) rowsFromCode(code string) ([]*MemberRow, error) {
	return memberRowsFromCode(code)
}

func (o *Object) rowFromFields(f Fields) (*MemberRow, error) { return NewMemberRow(f) }

func (o *Object) rowFromInput(interface{}) (*MemberRow, bool, error) {
	return nil, false, nil
}

// Template is a template declaration: an Object body plus its parameters. The template's name is the namespace of
// the row holding it.
type Template struct {
	Object
	params *Params
}

// NewTemplate returns an empty, unowned Template whose body has the given type
func NewTemplate(typ string) *Template {
	t := &Template{}
	t.Type = typ
	t.init(t)
	t.params = newParams(t)
	return t
}

// Params returns the template's parameters
func (t *Template) Params() *Params { return t.params }

func (t *Template) Copy() *Template {
	c := NewTemplate(t.Type)
	c.copyRows(t.rows)
	c.params.copyRows(t.params.rows)
	return c
}

func (t *Template) String() string { return render(t) }

// Compare reports whether t matches other. A *Template is compared including parameters; anything else is compared
// against the members only.
func (t *Template) Compare(other interface{}, existingOnly bool) (bool, error) {
	switch x := other.(type) {
	case *Template:
		return compareValues(t, x, existingOnly), nil
	case *Object:
		if !existingOnly {
			return false, nil
		}
		return compareValues(t, x, true), nil
	}
	rows, err := t.otherRows("Template.Compare", other)
	if err != nil {
		return false, err
	}
	if existingOnly {
		return matchRowSet(t.rows, rows), nil
	}
	return t.Type == "" && t.params.Len() == 0 && equalRowSet(t.rows, rows), nil
}

func (t *Template) kind() string     { return "Template" }
func (t *Template) copyValue() Value { return t.Copy() }

// Params is the parameter list of a Template
type Params struct {
	collection[*ParamRow]
	template *Template
}

func newParams(t *Template) *Params {
	p := &Params{template: t}
	p.init(p)
	return p
}

// Template returns the template these parameters belong to
func (p *Params) Template() *Template { return p.template }

// ByParam returns the parameter named name, or a NotFoundError
func (p *Params) ByParam(name string) (*ParamRow, error) {
	return p.findField("param", name)
}

func (p *Params) LookupParam(name string) (*ParamRow, bool) {
	return p.lookupField("param", name)
}

func (p *Params) RemoveByParam(name string) (*ParamRow, error) {
	return p.removeField("param", name)
}

func (p *Params) String() string { return render(p) }

func (p *Params) Compare(other interface{}, existingOnly bool) (bool, error) {
	var rows []*ParamRow
	if o, ok := other.(*Params); ok {
		rows = o.rows
	} else {
		var err error
		if rows, err = p.otherRows("Params.Compare", other); err != nil {
			return false, err
		}
	}
	if existingOnly {
		return matchRowSet(p.rows, rows), nil
	}
	return equalRowSet(p.rows, rows), nil
}

func (p *Params) kind() string { return "Params" }

func (p *Params) up() node {
	if p.template == nil {
		return nil
	}
	return p.template
}

func (p *Params) rowsFromCode(code string) ([]*ParamRow, error) {
	return paramRowsFromCode(code)
}

func (p *Params) rowFromFields(f Fields) (*ParamRow, error) { return NewParamRow(f) }

func (p *Params) rowFromInput(interface{}) (*ParamRow, bool, error) {
	return nil, false, nil
}

// Map is a MAP[...] literal of (key, value) entries. Besides the usual inputs it accepts a *Pair, a [2]string or a
// [2]Value for each entry.
type Map struct {
	collection[*MapRow]
	parent Row
}

// NewMap returns an empty, unowned Map
func NewMap() *Map {
	m := &Map{}
	m.init(m)
	return m
}

func (m *Map) Parent() Row { return m.parent }

// ByKey returns the first entry whose key is the literal key, or a NotFoundError
func (m *Map) ByKey(key string) (*MapRow, error) {
	return m.findField("key", key)
}

func (m *Map) LookupKey(key string) (*MapRow, bool) {
	return m.lookupField("key", key)
}

func (m *Map) RemoveByKey(key string) (*MapRow, error) {
	return m.removeField("key", key)
}

// Contains reports whether some entry has the literal key
func (m *Map) Contains(key string) bool {
	_, ok := m.lookupField("key", key)
	return ok
}

func (m *Map) Copy() *Map {
	c := NewMap()
	c.copyRows(m.rows)
	return c
}

func (m *Map) String() string { return render(m) }

func (m *Map) Compare(other interface{}, existingOnly bool) (bool, error) {
	if o, ok := other.(*Map); ok {
		return compareValues(m, o, existingOnly), nil
	}
	rows, err := m.otherRows("Map.Compare", other)
	if err != nil {
		return false, err
	}
	if existingOnly {
		return matchRowSet(m.rows, rows), nil
	}
	return equalRowSet(m.rows, rows), nil
}

func (m *Map) kind() string     { return "Map" }
func (m *Map) copyValue() Value { return m.Copy() }
func (m *Map) parentRow() Row   { return m.parent }
func (m *Map) setParent(r Row)  { m.parent = r }
func (m *Map) up() node         { return upFrom(m.parent) }

func (m *Map) rowsFromCode(code string) ([]*MapRow, error) {
	return mapRowsFromCode(code)
}

func (m *Map) rowFromFields(f Fields) (*MapRow, error) { return NewMapRow(f) }

func (m *Map) rowFromInput(in interface{}) (*MapRow, bool, error) {
	var r *MapRow
	var err error
	switch v := in.(type) {
	case *Pair:
		if v == nil {
			return nil, false, nil
		}
		r, err = NewMapRowFromPair(v)
	case [2]string:
		r, err = NewMapRow(Fields{"key": v[0], "value": v[1]})
	case [2]Value:
		r, err = NewMapRow(Fields{"key": v[0], "value": v[1]})
	default:
		return nil, false, nil
	}
	return r, err == nil, err
}

// otherRows converts a comparison operand into rows without attaching them
func (c *collection[R]) otherRows(op string, other interface{}) ([]R, error) {
	items, _, err := c.gather(op, []interface{}{other})
	if err != nil {
		return nil, err
	}
	rows := make([]R, len(items))
	for i, in := range items {
		rows[i] = in.row
	}
	return rows, nil
}

var (
	_ valueContainer = (*List)(nil)
	_ valueContainer = (*Object)(nil)
	_ valueContainer = (*Template)(nil)
	_ valueContainer = (*Map)(nil)
	_ container      = (*Params)(nil)
)
