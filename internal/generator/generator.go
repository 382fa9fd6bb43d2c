// Package generator writes NDF text for document values to an io.Writer.
package generator

import (
	"bufio"
	"io"

	"github.com/sblinch/ndf-go/document"
)

type Options struct {
	// Indent specifies the character(s) written once per nesting level
	Indent string
	// LineWidth is the width past which lists, maps and pairs are broken over several lines
	LineWidth int
}

// Generator generates NDF from document values
type Generator struct {
	w       io.Writer
	options Options
}

// DefaultOptions sets the default options for a new Generator
var DefaultOptions = Options{
	Indent:    document.DefaultWriteOptions.Indent,
	LineWidth: document.DefaultWriteOptions.LineWidth,
}

// NewOptions creates a new Generator with the provided Options, that writes to w
func NewOptions(w io.Writer, opts Options) *Generator {
	return &Generator{
		w:       w,
		options: opts,
	}
}

// New creates a new Generator with the default options, that writes to w
func New(w io.Writer) *Generator {
	return NewOptions(w, DefaultOptions)
}

func (g *Generator) writeOptions() document.WriteOptions {
	opts := document.WriteOptions{
		Indent:    g.options.Indent,
		LineWidth: g.options.LineWidth,
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = document.DefaultWriteOptions.LineWidth
	}
	return opts
}

// Generate generates the NDF for v, which may be a value, a row or a parameter list, and returns a non-nil error on
// failure
func (g *Generator) Generate(v interface{}) error {
	if bw, ok := g.w.(*bufio.Writer); ok {
		return document.WriteToOptions(v, bw, g.writeOptions())
	}

	bw := bufio.NewWriter(g.w)
	if err := document.WriteToOptions(v, bw, g.writeOptions()); err != nil {
		return err
	}
	return bw.Flush()
}
