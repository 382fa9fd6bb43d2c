// Package ndf reads and writes NDF, the data language of Eugen Systems games, through an editable document model.
package ndf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/document"
	"github.com/sblinch/ndf-go/internal/generator"
	"github.com/sblinch/ndf-go/internal/parser"
	"github.com/sblinch/ndf-go/syntax"
)

type ParseOptions struct {
	// Logger receives debug records from parsing and building; nil disables logging
	Logger *zap.Logger
	// Parser replaces the built-in NDF parser
	Parser syntax.Parser
}

var DefaultParseOptions = ParseOptions{}

func parse(src []byte, opts ParseOptions) (*document.List, error) {
	p := opts.Parser
	if p == nil {
		p = parser.NewOptions(parser.Options{Logger: opts.Logger})
	}
	n, err := p.Parse(src)
	if err != nil {
		return nil, err
	}
	b := document.NewBuilder()
	b.Logger = opts.Logger
	return b.BuildList(n)
}

// Parse parses NDF source from r and returns its root List, or a non-nil error on failure
func Parse(r io.Reader) (*document.List, error) {
	return ParseWithOptions(r, DefaultParseOptions)
}

func ParseWithOptions(r io.Reader, opts ParseOptions) (*document.List, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(src, opts)
}

// ParseString parses NDF source held in s
func ParseString(s string) (*document.List, error) {
	return parse([]byte(s), DefaultParseOptions)
}

// ParseFile parses the NDF file at path
func ParseFile(path string) (*document.List, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := parse(src, DefaultParseOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Expression parses code holding exactly one item and returns its fields, suitable for passing to a container's Add
// or a row's Edit
func Expression(code string) (document.Fields, error) {
	r, err := document.ListRowFromCode(code)
	if err != nil {
		return nil, err
	}
	return r.AsMap(), nil
}

// Expressions parses code and returns the fields of each item in order
func Expressions(code string) ([]document.Fields, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	l, err := ParseString(code)
	if err != nil {
		return nil, err
	}
	out := make([]document.Fields, 0, l.Len())
	for _, r := range l.Rows() {
		out = append(out, r.AsMap())
	}
	return out, nil
}

type GenerateOptions = generator.Options

var DefaultGenerateOptions = generator.DefaultOptions

// Generate writes NDF for v to w, or returns a non-nil error on failure. v may be a document value, a row or a
// parameter list.
func Generate(v interface{}, w io.Writer) error {
	return GenerateWithOptions(v, w, DefaultGenerateOptions)
}

// GenerateWithOptions is like Generate but formats with opts
func GenerateWithOptions(v interface{}, w io.Writer, opts GenerateOptions) error {
	g := generator.NewOptions(w, opts)
	return g.Generate(v)
}

// String returns the NDF for v
func String(v interface{}) (string, error) {
	b := bytes.Buffer{}
	if err := Generate(v, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
