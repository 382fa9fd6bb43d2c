package document

import (
	"fmt"
	"io"
	"strings"
)

// WriteOptions control NDF output
type WriteOptions struct {
	// Indent is written once per nesting level
	Indent string
	// LineWidth is the width a list, map or pair may take before it is broken over several lines
	LineWidth int
}

// DefaultWriteOptions indents by four spaces and condenses containers up to 100 columns
var DefaultWriteOptions = WriteOptions{Indent: "    ", LineWidth: 100}

// WriteTo writes v as NDF to w using DefaultWriteOptions. v may be a Value, a row or *Params; a root List is written
// one item per line, separated by blank lines, with a trailing newline.
func WriteTo(v interface{}, w io.StringWriter) error {
	return WriteToOptions(v, w, DefaultWriteOptions)
}

// WriteToOptions writes v as NDF to w using opts
func WriteToOptions(v interface{}, w io.StringWriter, opts WriteOptions) error {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultWriteOptions.LineWidth
	}
	p := &printer{w: w, opts: opts}
	switch x := v.(type) {
	case nil:
	case *List:
		if x.Root {
			p.source(x)
		} else {
			p.list(x)
		}
	case Value:
		p.value(x)
	case *ListRow:
		p.listRow(x)
	case *MemberRow:
		p.member(x)
	case *ParamRow:
		p.param(x)
	case *MapRow:
		p.pair(x.mapKey, x.value)
	case *Params:
		p.params(x)
	default:
		return fmt.Errorf("cannot write %T as ndf", v)
	}
	p.finish()
	return p.err
}

// render is the String form of v; output is all or nothing, so a value WriteTo rejects renders as ""
func render(v interface{}) string {
	b := strings.Builder{}
	if err := WriteTo(v, &b); err != nil {
		return ""
	}
	return b.String()
}

// printer writes NDF text. Line breaks are deferred so that a break never leaves trailing whitespace: a pending
// space is dropped at a break, and an empty line request is only written once something follows it.
type printer struct {
	w     io.StringWriter
	opts  WriteOptions
	depth int
	// space is a separating space owed before the next text
	space bool
	// newline is a line break owed before the next text
	newline bool
	// started is set once anything has been written; output never begins with a line break
	started bool
	err     error
}

func (p *printer) emit(s string) {
	if p.err == nil && s != "" {
		p.started = true
		_, p.err = p.w.WriteString(s)
	}
}

func (p *printer) lineBreak() string {
	if !p.started {
		return p.indent()
	}
	return "\n" + p.indent()
}

func (p *printer) indent() string {
	return strings.Repeat(p.opts.Indent, p.depth)
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}
	if p.newline {
		p.newline, p.space = false, false
		p.emit(p.lineBreak())
	}
	if p.space {
		p.space = false
		p.emit(" ")
	}
	p.emit(s)
}

// word writes s and owes a space before whatever follows on the same line
func (p *printer) word(s string) {
	p.write(s)
	p.space = true
}

// writeLine starts a new line holding s; an empty s starts a line whose indentation is written with its content
func (p *printer) writeLine(s string) {
	p.space = false
	if s == "" {
		if p.newline && p.started {
			p.emit("\n")
		}
		p.newline = true
		return
	}
	p.newline = false
	p.emit(p.lineBreak() + s)
}

func (p *printer) finish() {
	if p.newline && p.started {
		p.emit("\n")
	}
	p.newline = false
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) spaceLeft() int {
	return p.opts.LineWidth - len(p.opts.Indent)*p.depth
}

// sequence writes n items between open and close, either on one line joined by sep and a space or one per line
// with sep at the end of each but the last
func (p *printer) sequence(n int, open, close, sep string, multiline bool, item func(i int)) {
	if !multiline {
		p.write(open)
		for i := 0; i < n; i++ {
			if i > 0 {
				p.write(sep + " ")
			}
			item(i)
		}
		p.write(close)
		return
	}

	depth := p.depth
	p.writeLine(open)
	p.depth++
	for i := 0; i < n; i++ {
		if i > 0 {
			p.write(sep)
		}
		p.writeLine("")
		item(i)
	}
	p.depth = depth
	p.writeLine(close)
}

func (p *printer) value(v Value) {
	switch x := v.(type) {
	case Literal:
		p.write(string(x))
	case *Pair:
		p.pair(x.Left, x.Right)
	case *List:
		p.list(x)
	case *Object:
		p.object(x)
	case *Template:
		p.template(x, "_")
	case *Map:
		p.mapValue(x)
	}
}

func (p *printer) source(l *List) {
	for i, r := range l.rows {
		if i > 0 {
			p.writeLine("")
			p.writeLine("")
		}
		p.listRow(r)
	}
	p.writeLine("")
}

func (p *printer) listRow(r *ListRow) {
	if r.visibility != "" {
		p.word(r.visibility)
	}
	if t, ok := r.value.(*Template); ok {
		if r.namespace == "" {
			p.fail(fmt.Errorf("%w: template row has no namespace", ErrMissingField))
			return
		}
		p.template(t, r.namespace)
		return
	}
	if r.namespace != "" {
		p.word(r.namespace + " is")
	}
	p.value(r.value)
}

func (p *printer) list(l *List) {
	p.write(l.Type)
	if len(l.rows) == 0 {
		p.write("[]")
		return
	}
	p.sequence(len(l.rows), "[", "]", ",", p.listNeedsLines(l.rows), func(i int) {
		p.listRow(l.rows[i])
	})
}

func (p *printer) listNeedsLines(rows []*ListRow) bool {
	total := 0
	for _, r := range rows {
		if r.namespace != "" || r.visibility != "" {
			return true
		}
		lit, ok := r.value.(Literal)
		if !ok {
			return true
		}
		total += len(lit) + 2
	}
	return total > p.spaceLeft()
}

func (p *printer) object(o *Object) {
	p.write(o.Type)
	if len(o.rows) == 0 {
		p.write("()")
		return
	}
	p.sequence(len(o.rows), "(", ")", "", true, func(i int) {
		p.member(o.rows[i])
	})
}

func (p *printer) member(m *MemberRow) {
	if m.member != "" {
		s := m.member
		if m.typ != "" {
			s += ": " + m.typ
		}
		p.word(s + " =")
	}
	if m.visibility != "" {
		p.word(m.visibility)
	}
	if m.namespace != "" {
		p.word(m.namespace + " is")
	}
	p.value(m.value)
}

func (p *printer) template(t *Template, name string) {
	p.write("template " + name)
	p.params(t.params)
	p.word(" is")
	p.object(&t.Object)
}

func (p *printer) params(ps *Params) {
	if len(ps.rows) == 0 {
		p.write("[]")
		return
	}
	p.sequence(len(ps.rows), "[", "]", ",", true, func(i int) {
		p.param(ps.rows[i])
	})
}

func (p *printer) param(r *ParamRow) {
	s := r.param
	if r.typ != "" {
		s += ": " + r.typ
	}
	if r.value == nil {
		p.write(s)
		return
	}
	p.word(s + " =")
	p.value(r.value)
}

func (p *printer) mapValue(m *Map) {
	p.write("MAP")
	if len(m.rows) == 0 {
		p.write("[]")
		return
	}
	multiline := false
	total := 0
	for _, r := range m.rows {
		if structured(r.mapKey) || structured(r.value) {
			multiline = true
			break
		}
		total += width(r.mapKey) + width(r.value) + 6
	}
	multiline = multiline || total > p.spaceLeft()
	p.sequence(len(m.rows), "[", "]", ",", multiline, func(i int) {
		p.pair(m.rows[i].mapKey, m.rows[i].value)
	})
}

func (p *printer) pair(left, right Value) {
	multiline := structured(left) || structured(right) || width(left)+width(right)+4 > p.spaceLeft()
	p.sequence(2, "(", ")", ",", multiline, func(i int) {
		if i == 0 {
			p.value(left)
		} else {
			p.value(right)
		}
	})
}

func width(v Value) int {
	if lit, ok := v.(Literal); ok {
		return len(lit)
	}
	return 0
}
