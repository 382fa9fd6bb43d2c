package document

// Value is anything a row can hold: a Literal, a *Pair, or one of the containers *List, *Object, *Template and *Map.
// The set is closed.
type Value interface {
	// String returns the value rendered as NDF, or "" if it cannot be printed; WriteTo reports why
	String() string
	copyValue() Value
}

// Literal is an opaque NDF value kept exactly as written: numbers, references, GUIDs, expressions and quoted strings
// alike. Quotes are part of the text, so `"12"` and `12` are different literals.
type Literal string

func (l Literal) String() string {
	return string(l)
}

func (l Literal) copyValue() Value {
	return l
}

// IsString reports whether l is a quoted string literal
func (l Literal) IsString() bool {
	if len(l) < 2 {
		return false
	}
	q := l[0]
	return (q == '"' || q == '\'') && l[len(l)-1] == q
}

// Unquote returns the contents of a quoted string literal
func (l Literal) Unquote() (string, error) {
	return UnquoteString(string(l))
}

// Quoted returns a double-quoted string literal holding s
func Quoted(s string) Literal {
	return Literal(QuoteString(s))
}

// Pair is a (left, right) tuple; it may be the value of a list row or a map row, or an element of another pair
type Pair struct {
	Left  Value
	Right Value
	owner Row
}

// NewPair returns a new unowned Pair
func NewPair(left, right Value) *Pair {
	return &Pair{Left: left, Right: right}
}

func (p *Pair) String() string {
	return render(p)
}

// Copy returns a deep copy of p with no owner
func (p *Pair) Copy() *Pair {
	return &Pair{Left: copyOf(p.Left), Right: copyOf(p.Right)}
}

func (p *Pair) copyValue() Value {
	return p.Copy()
}

func copyOf(v Value) Value {
	if v == nil {
		return nil
	}
	return v.copyValue()
}

// node is anything in the ownership tree; up returns the node that holds it, or nil at the top
type node interface {
	up() node
}

// valueContainer is implemented by the container values
type valueContainer interface {
	Value
	node
	parentRow() Row
	setParent(r Row)
}

// isAncestor reports whether anc is n or lies on the ownership chain above n
func isAncestor(anc node, n node) bool {
	for x := n; x != nil; x = x.up() {
		if x == anc {
			return true
		}
	}
	return false
}

// adoptValue prepares v to be stored in holder: values owned elsewhere are deep-copied, unowned containers are checked
// for cycles. Nothing is attached until claim.
func adoptValue(op string, holder Row, v Value, allowPair bool) (Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Literal:
		if x == "" {
			return nil, nil
		}
		return x, nil
	case *Pair:
		if x == nil {
			return nil, nil
		}
		if !allowPair {
			return nil, inputError(op, v, "a pair is only allowed as a list item, a map value or inside another pair")
		}
		if x.owner != nil && x.owner != holder {
			return x.Copy(), nil
		}
		left, err := adoptValue(op, holder, x.Left, true)
		if err != nil {
			return nil, err
		}
		right, err := adoptValue(op, holder, x.Right, true)
		if err != nil {
			return nil, err
		}
		if left != x.Left || right != x.Right {
			return &Pair{Left: left, Right: right}, nil
		}
		return x, nil
	case valueContainer:
		if p := x.parentRow(); p != nil && p != holder {
			return x.copyValue(), nil
		}
		if isAncestor(x, holder) {
			return nil, ErrCycle
		}
		return x, nil
	}
	return nil, inputError(op, v, "unsupported value")
}

// claim attaches v and everything nested in pairs beneath it to holder
func claim(v Value, holder Row) {
	switch x := v.(type) {
	case *Pair:
		x.owner = holder
		claim(x.Left, holder)
		claim(x.Right, holder)
	case valueContainer:
		x.setParent(holder)
	}
}

// release detaches v from holder if holder still owns it
func release(v Value, holder Row) {
	switch x := v.(type) {
	case *Pair:
		if x.owner == holder {
			x.owner = nil
			release(x.Left, holder)
			release(x.Right, holder)
		}
	case valueContainer:
		if x.parentRow() == holder {
			x.setParent(nil)
		}
	}
}

// structured reports whether v is a container or a pair
func structured(v Value) bool {
	switch v.(type) {
	case nil, Literal:
		return false
	}
	return true
}
