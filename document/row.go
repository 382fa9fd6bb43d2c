package document

import (
	"fmt"
	"strings"
)

// Row is one entry of a container: a *ListRow, *MemberRow, *ParamRow or *MapRow. A row belongs to at most one
// container; a row that belongs to none is dangling.
type Row interface {
	Key
	// String renders the row as NDF. A row that cannot be printed, such as a template row without a namespace,
	// renders as ""; WriteTo returns the error.
	fmt.Stringer
	// Value returns the row's value field
	Value() Value
	// Index returns the row's position in its container, or false if it is dangling
	Index() (int, bool)
	// Dangling reports whether the row belongs to no container
	Dangling() bool
	// AsMap returns every field of the row under its canonical name; unset fields are nil
	AsMap() Fields

	base() *rowBase
	schema() *schema
	get(name string) interface{}
	set(name string, v interface{})
	cloneRow() Row
	up() node
}

type rowBase struct {
	owner container
	hint  int
}

func (rowBase) key() {}

func (b *rowBase) base() *rowBase {
	return b
}

func (b *rowBase) Dangling() bool {
	return b.owner == nil
}

func (b *rowBase) up() node {
	if b.owner == nil {
		return nil
	}
	return b.owner
}

func (b *rowBase) index(self Row) (int, bool) {
	if b.owner == nil {
		return -1, false
	}
	i := b.owner.indexOf(self, b.hint)
	if i < 0 {
		return -1, false
	}
	b.hint = i
	return i, true
}

func (b *rowBase) container() Container {
	if b.owner == nil {
		return nil
	}
	return b.owner
}

func (b *rowBase) detach() {
	b.owner = nil
	b.hint = -1
}

func toValue(x interface{}) Value {
	v, _ := x.(Value)
	return v
}

func isEmpty(x interface{}) bool {
	switch v := x.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// editRow applies f to r all at once: either every field is set or, on error, none is
func editRow(op string, r Row, f Fields, strict bool) error {
	s := r.schema()
	cells, err := s.resolve(op, f, strict)
	if err != nil {
		return err
	}

	for name, v := range cells {
		spec, _ := s.field(name)
		if !spec.value {
			continue
		}
		nv, err := adoptValue(op, r, toValue(v), spec.pair)
		if err != nil {
			return err
		}
		cells[name] = nv
	}

	if !r.Dangling() {
		for _, name := range s.required {
			v, ok := cells[name]
			if !ok {
				v = r.get(name)
			}
			if isEmpty(v) {
				return fmt.Errorf("%w: %s.%s", ErrMissingField, s.row, name)
			}
		}
	}

	for name, v := range cells {
		spec, _ := s.field(name)
		if !spec.value {
			r.set(name, v)
			continue
		}
		old, nv := toValue(r.get(name)), toValue(v)
		if old != nv {
			release(old, r)
		}
		r.set(name, nv)
		claim(nv, r)
	}
	return nil
}

// missingField returns an error if r lacks a field required to attach it to a container
func missingField(r Row) error {
	s := r.schema()
	for _, name := range s.required {
		if isEmpty(r.get(name)) {
			return fmt.Errorf("%w: %s.%s", ErrMissingField, s.row, name)
		}
	}
	return nil
}

func asMap(r Row) Fields {
	s := r.schema()
	f := make(Fields, len(s.fields))
	for _, name := range s.names() {
		v := r.get(name)
		if isEmpty(v) {
			f[name] = nil
		} else {
			f[name] = v
		}
	}
	return f
}

// copyFields copies every field of src into dst, deep-copying values
func copyFields(dst, src Row) Row {
	for _, f := range src.schema().fields {
		v := src.get(f.name)
		if f.value {
			nv := copyOf(toValue(v))
			dst.set(f.name, nv)
			claim(nv, dst)
			continue
		}
		dst.set(f.name, v)
	}
	dst.base().hint = -1
	return dst
}

func goString(r Row) string {
	b := strings.Builder{}
	b.WriteString(r.schema().row)
	if i, ok := r.Index(); ok {
		fmt.Fprintf(&b, "[%d]", i)
	} else {
		b.WriteString("[DANGLING]")
	}
	b.WriteByte('(')
	n := 0
	for _, name := range r.schema().names() {
		v := r.get(name)
		if isEmpty(v) {
			continue
		}
		if n > 0 {
			b.WriteString(", ")
		}
		n++
		b.WriteString(name)
		b.WriteByte('=')
		switch x := v.(type) {
		case string:
			b.WriteString(x)
		case Literal:
			b.WriteString(string(x))
		case *Pair:
			b.WriteString("Pair")
		case Container:
			fmt.Fprintf(&b, "%s[%d]", x.kind(), x.Len())
		}
	}
	b.WriteByte(')')
	return b.String()
}

// ListRow is an item of a List: a value with an optional namespace and visibility
type ListRow struct {
	rowBase
	value      Value
	visibility string
	namespace  string
}

var listRowSchema = newSchema("ListRow", []string{"value"},
	fieldSpec{name: "value", alias: "v", value: true, pair: true},
	fieldSpec{name: "visibility", alias: "vis"},
	fieldSpec{name: "namespace", alias: "n"},
)

// NewListRow returns a dangling ListRow with the given fields; unknown field names are an error
func NewListRow(f Fields) (*ListRow, error) {
	r := &ListRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewListRow", r, f, true); err != nil {
		return nil, err
	}
	return r, nil
}

// NewListRowLenient is like NewListRow but ignores unknown field names
func NewListRowLenient(f Fields) (*ListRow, error) {
	r := &ListRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewListRowLenient", r, f, false); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRowFromCode parses code as a single top-level item
func ListRowFromCode(code string) (*ListRow, error) {
	rows, err := listRowsFromCode(code, true)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, inputError("ListRowFromCode", nil, "expected exactly one row, got %d", len(rows))
	}
	return rows[0], nil
}

func (r *ListRow) Value() Value       { return r.value }
func (r *ListRow) Visibility() string { return r.visibility }
func (r *ListRow) Namespace() string  { return r.namespace }

// V, Vis and N are short forms of Value, Visibility and Namespace
func (r *ListRow) V() Value    { return r.value }
func (r *ListRow) Vis() string { return r.visibility }
func (r *ListRow) N() string   { return r.namespace }

// SetValue replaces the row's value; a value that already belongs elsewhere is copied first
func (r *ListRow) SetValue(v Value) (*ListRow, error) {
	return r, editRow("ListRow.SetValue", r, Fields{"value": v}, true)
}

func (r *ListRow) SetVisibility(vis string) *ListRow {
	r.visibility = vis
	return r
}

func (r *ListRow) SetNamespace(ns string) *ListRow {
	r.namespace = ns
	return r
}

// Edit sets every named field at once; unknown names are an error and nothing changes on failure
func (r *ListRow) Edit(f Fields) (*ListRow, error) {
	return r, editRow("ListRow.Edit", r, f, true)
}

// EditLenient is like Edit but ignores unknown field names
func (r *ListRow) EditLenient(f Fields) (*ListRow, error) {
	return r, editRow("ListRow.EditLenient", r, f, false)
}

// EditCode replaces the row's fields with those of the item parsed from code
func (r *ListRow) EditCode(code string) (*ListRow, error) {
	parsed, err := ListRowFromCode(code)
	if err != nil {
		return r, err
	}
	return r.Edit(parsed.AsMap())
}

// Copy returns a dangling deep copy of r
func (r *ListRow) Copy() *ListRow {
	return copyFields(&ListRow{}, r).(*ListRow)
}

// Owner returns the List holding r, or nil if r is dangling
func (r *ListRow) Owner() *List {
	l, _ := r.container().(*List)
	return l
}

func (r *ListRow) Index() (int, bool) { return r.index(r) }
func (r *ListRow) AsMap() Fields      { return asMap(r) }
func (r *ListRow) String() string     { return render(r) }
func (r *ListRow) GoString() string   { return goString(r) }

// Compare reports whether r matches other. With existingOnly set, only the fields set in other are compared and
// nested containers are compared as patterns; otherwise every field must be equal.
func (r *ListRow) Compare(other Row, existingOnly bool) bool {
	return compareRows(r, other, existingOnly)
}

func (r *ListRow) schema() *schema { return listRowSchema }
func (r *ListRow) cloneRow() Row   { return r.Copy() }

func (r *ListRow) get(name string) interface{} {
	switch name {
	case "value":
		return r.value
	case "visibility":
		return r.visibility
	case "namespace":
		return r.namespace
	}
	return nil
}

func (r *ListRow) set(name string, v interface{}) {
	switch name {
	case "value":
		r.value = toValue(v)
	case "visibility":
		r.visibility, _ = v.(string)
	case "namespace":
		r.namespace, _ = v.(string)
	}
}

// MemberRow is a member of an Object or Template: a value with an optional member name, type annotation, namespace
// and visibility
type MemberRow struct {
	rowBase
	value      Value
	member     string
	typ        string
	visibility string
	namespace  string
}

var memberRowSchema = newSchema("MemberRow", []string{"value"},
	fieldSpec{name: "value", alias: "v", value: true},
	fieldSpec{name: "member", alias: "m"},
	fieldSpec{name: "type", alias: "t"},
	fieldSpec{name: "visibility", alias: "vis"},
	fieldSpec{name: "namespace", alias: "n"},
)

// NewMemberRow returns a dangling MemberRow with the given fields; unknown field names are an error
func NewMemberRow(f Fields) (*MemberRow, error) {
	r := &MemberRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewMemberRow", r, f, true); err != nil {
		return nil, err
	}
	return r, nil
}

// NewMemberRowLenient is like NewMemberRow but ignores unknown field names
func NewMemberRowLenient(f Fields) (*MemberRow, error) {
	r := &MemberRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewMemberRowLenient", r, f, false); err != nil {
		return nil, err
	}
	return r, nil
}

// MemberRowFromCode parses code as a single object member
func MemberRowFromCode(code string) (*MemberRow, error) {
	rows, err := memberRowsFromCode(code)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, inputError("MemberRowFromCode", nil, "expected exactly one row, got %d", len(rows))
	}
	return rows[0], nil
}

func (r *MemberRow) Value() Value       { return r.value }
func (r *MemberRow) Member() string     { return r.member }
func (r *MemberRow) Type() string       { return r.typ }
func (r *MemberRow) Visibility() string { return r.visibility }
func (r *MemberRow) Namespace() string  { return r.namespace }

func (r *MemberRow) V() Value    { return r.value }
func (r *MemberRow) M() string   { return r.member }
func (r *MemberRow) T() string   { return r.typ }
func (r *MemberRow) Vis() string { return r.visibility }
func (r *MemberRow) N() string   { return r.namespace }

// SetValue replaces the row's value; a value that already belongs elsewhere is copied first
func (r *MemberRow) SetValue(v Value) (*MemberRow, error) {
	return r, editRow("MemberRow.SetValue", r, Fields{"value": v}, true)
}

func (r *MemberRow) SetMember(m string) *MemberRow {
	r.member = m
	return r
}

func (r *MemberRow) SetType(t string) *MemberRow {
	r.typ = t
	return r
}

func (r *MemberRow) SetVisibility(vis string) *MemberRow {
	r.visibility = vis
	return r
}

func (r *MemberRow) SetNamespace(ns string) *MemberRow {
	r.namespace = ns
	return r
}

func (r *MemberRow) Edit(f Fields) (*MemberRow, error) {
	return r, editRow("MemberRow.Edit", r, f, true)
}

func (r *MemberRow) EditLenient(f Fields) (*MemberRow, error) {
	return r, editRow("MemberRow.EditLenient", r, f, false)
}

func (r *MemberRow) EditCode(code string) (*MemberRow, error) {
	parsed, err := MemberRowFromCode(code)
	if err != nil {
		return r, err
	}
	return r.Edit(parsed.AsMap())
}

func (r *MemberRow) Copy() *MemberRow {
	return copyFields(&MemberRow{}, r).(*MemberRow)
}

// Owner returns the *Object or *Template holding r, or nil if r is dangling
func (r *MemberRow) Owner() Container {
	return r.container()
}

func (r *MemberRow) Index() (int, bool) { return r.index(r) }
func (r *MemberRow) AsMap() Fields      { return asMap(r) }
func (r *MemberRow) String() string     { return render(r) }
func (r *MemberRow) GoString() string   { return goString(r) }

func (r *MemberRow) Compare(other Row, existingOnly bool) bool {
	return compareRows(r, other, existingOnly)
}

func (r *MemberRow) schema() *schema { return memberRowSchema }
func (r *MemberRow) cloneRow() Row   { return r.Copy() }

func (r *MemberRow) get(name string) interface{} {
	switch name {
	case "value":
		return r.value
	case "member":
		return r.member
	case "type":
		return r.typ
	case "visibility":
		return r.visibility
	case "namespace":
		return r.namespace
	}
	return nil
}

func (r *MemberRow) set(name string, v interface{}) {
	switch name {
	case "value":
		r.value = toValue(v)
	case "member":
		r.member, _ = v.(string)
	case "type":
		r.typ, _ = v.(string)
	case "visibility":
		r.visibility, _ = v.(string)
	case "namespace":
		r.namespace, _ = v.(string)
	}
}

// ParamRow is a template parameter: a name with an optional type annotation and default value
type ParamRow struct {
	rowBase
	param string
	typ   string
	value Value
}

var paramRowSchema = newSchema("ParamRow", []string{"param"},
	fieldSpec{name: "param", alias: "p"},
	fieldSpec{name: "type", alias: "t"},
	fieldSpec{name: "value", alias: "v", value: true},
)

func NewParamRow(f Fields) (*ParamRow, error) {
	r := &ParamRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewParamRow", r, f, true); err != nil {
		return nil, err
	}
	return r, nil
}

func NewParamRowLenient(f Fields) (*ParamRow, error) {
	r := &ParamRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewParamRowLenient", r, f, false); err != nil {
		return nil, err
	}
	return r, nil
}

// ParamRowFromCode parses code as a single template parameter
func ParamRowFromCode(code string) (*ParamRow, error) {
	rows, err := paramRowsFromCode(code)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, inputError("ParamRowFromCode", nil, "expected exactly one row, got %d", len(rows))
	}
	return rows[0], nil
}

func (r *ParamRow) Param() string { return r.param }
func (r *ParamRow) Type() string  { return r.typ }
func (r *ParamRow) Value() Value  { return r.value }

func (r *ParamRow) P() string { return r.param }
func (r *ParamRow) T() string { return r.typ }
func (r *ParamRow) V() Value  { return r.value }

// SetParam renames the parameter; an attached parameter cannot lose its name
func (r *ParamRow) SetParam(p string) (*ParamRow, error) {
	return r, editRow("ParamRow.SetParam", r, Fields{"param": p}, true)
}

func (r *ParamRow) SetType(t string) *ParamRow {
	r.typ = t
	return r
}

// SetValue replaces the default value; nil removes it
func (r *ParamRow) SetValue(v Value) (*ParamRow, error) {
	return r, editRow("ParamRow.SetValue", r, Fields{"value": v}, true)
}

func (r *ParamRow) Edit(f Fields) (*ParamRow, error) {
	return r, editRow("ParamRow.Edit", r, f, true)
}

func (r *ParamRow) EditLenient(f Fields) (*ParamRow, error) {
	return r, editRow("ParamRow.EditLenient", r, f, false)
}

func (r *ParamRow) EditCode(code string) (*ParamRow, error) {
	parsed, err := ParamRowFromCode(code)
	if err != nil {
		return r, err
	}
	return r.Edit(parsed.AsMap())
}

func (r *ParamRow) Copy() *ParamRow {
	return copyFields(&ParamRow{}, r).(*ParamRow)
}

// Owner returns the Params holding r, or nil if r is dangling
func (r *ParamRow) Owner() *Params {
	p, _ := r.container().(*Params)
	return p
}

func (r *ParamRow) Index() (int, bool) { return r.index(r) }
func (r *ParamRow) AsMap() Fields      { return asMap(r) }
func (r *ParamRow) String() string     { return render(r) }
func (r *ParamRow) GoString() string   { return goString(r) }

func (r *ParamRow) Compare(other Row, existingOnly bool) bool {
	return compareRows(r, other, existingOnly)
}

func (r *ParamRow) schema() *schema { return paramRowSchema }
func (r *ParamRow) cloneRow() Row   { return r.Copy() }

func (r *ParamRow) get(name string) interface{} {
	switch name {
	case "param":
		return r.param
	case "type":
		return r.typ
	case "value":
		return r.value
	}
	return nil
}

func (r *ParamRow) set(name string, v interface{}) {
	switch name {
	case "param":
		r.param, _ = v.(string)
	case "type":
		r.typ, _ = v.(string)
	case "value":
		r.value = toValue(v)
	}
}

// MapRow is an entry of a Map: a key and a value
type MapRow struct {
	rowBase
	mapKey Value
	value  Value
}

var mapRowSchema = newSchema("MapRow", []string{"key", "value"},
	fieldSpec{name: "key", alias: "k", value: true},
	fieldSpec{name: "value", alias: "v", value: true, pair: true},
)

func NewMapRow(f Fields) (*MapRow, error) {
	r := &MapRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewMapRow", r, f, true); err != nil {
		return nil, err
	}
	return r, nil
}

func NewMapRowLenient(f Fields) (*MapRow, error) {
	r := &MapRow{rowBase: rowBase{hint: -1}}
	if err := editRow("NewMapRowLenient", r, f, false); err != nil {
		return nil, err
	}
	return r, nil
}

// NewMapRowFromPair returns a dangling MapRow keyed by p.Left and holding p.Right
func NewMapRowFromPair(p *Pair) (*MapRow, error) {
	return NewMapRow(Fields{"key": p.Left, "value": p.Right})
}

// MapRowFromCode parses code as a single (key, value) entry
func MapRowFromCode(code string) (*MapRow, error) {
	rows, err := mapRowsFromCode(code)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, inputError("MapRowFromCode", nil, "expected exactly one row, got %d", len(rows))
	}
	return rows[0], nil
}

func (r *MapRow) Key() Value   { return r.mapKey }
func (r *MapRow) Value() Value { return r.value }

func (r *MapRow) K() Value { return r.mapKey }
func (r *MapRow) V() Value { return r.value }

func (r *MapRow) SetKey(k Value) (*MapRow, error) {
	return r, editRow("MapRow.SetKey", r, Fields{"key": k}, true)
}

func (r *MapRow) SetValue(v Value) (*MapRow, error) {
	return r, editRow("MapRow.SetValue", r, Fields{"value": v}, true)
}

func (r *MapRow) Edit(f Fields) (*MapRow, error) {
	return r, editRow("MapRow.Edit", r, f, true)
}

func (r *MapRow) EditLenient(f Fields) (*MapRow, error) {
	return r, editRow("MapRow.EditLenient", r, f, false)
}

func (r *MapRow) EditCode(code string) (*MapRow, error) {
	parsed, err := MapRowFromCode(code)
	if err != nil {
		return r, err
	}
	return r.Edit(parsed.AsMap())
}

func (r *MapRow) Copy() *MapRow {
	return copyFields(&MapRow{}, r).(*MapRow)
}

// Owner returns the Map holding r, or nil if r is dangling
func (r *MapRow) Owner() *Map {
	m, _ := r.container().(*Map)
	return m
}

func (r *MapRow) Index() (int, bool) { return r.index(r) }
func (r *MapRow) AsMap() Fields      { return asMap(r) }
func (r *MapRow) String() string     { return render(r) }
func (r *MapRow) GoString() string   { return goString(r) }

// Compare reports whether r matches other, which may be a *MapRow or a *Pair
func (r *MapRow) Compare(other interface{}, existingOnly bool) bool {
	switch o := other.(type) {
	case *MapRow:
		return compareRows(r, o, existingOnly)
	case *Pair:
		return compareRows(r, &MapRow{mapKey: o.Left, value: o.Right}, existingOnly)
	}
	return false
}

func (r *MapRow) schema() *schema { return mapRowSchema }
func (r *MapRow) cloneRow() Row   { return r.Copy() }

func (r *MapRow) get(name string) interface{} {
	switch name {
	case "key":
		return r.mapKey
	case "value":
		return r.value
	}
	return nil
}

func (r *MapRow) set(name string, v interface{}) {
	switch name {
	case "key":
		r.mapKey = toValue(v)
	case "value":
		r.value = toValue(v)
	}
}
