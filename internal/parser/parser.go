// Package parser implements a recursive-descent parser for NDF source, producing a syntax tree for the document
// builder.
package parser

import (
	"time"

	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/syntax"
)

type Options struct {
	// Logger receives debug records for each parse; nil disables logging
	Logger *zap.Logger
}

var defaultOptions = Options{}

// Parser parses NDF source into a syntax tree; a Parser holds no per-parse state and may be shared
type Parser struct {
	opts Options
}

// New returns a Parser with default options
func New() *Parser {
	return NewOptions(defaultOptions)
}

// NewOptions returns a Parser with the given options
func NewOptions(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses src and returns its KindSource root node
func (p *Parser) Parse(src []byte) (syntax.Node, error) {
	logger := p.opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	c, err := newParseContext(src, p.opts.Logger)
	if err != nil {
		logger.Debug("tokenize failed", zap.Error(err))
		return nil, err
	}

	root, err := c.parseSource()
	if err != nil {
		logger.Debug("parse failed", zap.Error(err))
		return nil, err
	}

	logger.Debug("parsed", zap.Int("bytes", len(src)), zap.Int("items", len(root.Children())), zap.Duration("elapsed", time.Since(start)))
	return root, nil
}

var _ syntax.Parser = (*Parser)(nil)
