package parser

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/internal/tokenizer"
	"github.com/sblinch/ndf-go/syntax"
)

// maxDepth bounds the nesting of arrays, objects, maps and pairs
const maxDepth = 512

// ParseContext maintains the parser context for a single NDF source buffer
type ParseContext struct {
	src []byte
	// significant tokens; trivia has been dropped and the last token is always EOF
	tokens []tokenizer.Token
	pos    int
	// the most recently consumed token
	last tokenizer.Token
	// state stack; the current state is last
	states []parserState
	recent recentTokens
	logger *zap.Logger
}

// newParseContext tokenizes src and returns a context positioned at its first significant token
func newParseContext(src []byte, logger *zap.Logger) (*ParseContext, error) {
	s := tokenizer.NewSlice(src)
	s.Logger = logger
	defer s.Close()

	all, err := s.ScanAll()
	if err != nil {
		return nil, err
	}

	tokens := make([]tokenizer.Token, 0, len(all)/2+1)
	for _, t := range all {
		if !t.ID.Is(tokenizer.ClassTrivia) {
			tokens = append(tokens, t)
		}
	}
	line, column := s.Pos()
	tokens = append(tokens, tokenizer.Token{ID: tokenizer.EOF, Line: line, Column: column, Offset: len(src)})

	return &ParseContext{
		src:    src,
		tokens: tokens,
		states: make([]parserState, 0, 16),
		logger: logger,
	}, nil
}

// peek returns the current token without consuming it
func (c *ParseContext) peek() tokenizer.Token {
	return c.peekAt(0)
}

// peekAt returns the token n positions after the current one without consuming anything
func (c *ParseContext) peekAt(n int) tokenizer.Token {
	if c.pos+n >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos+n]
}

// next consumes and returns the current token
func (c *ParseContext) next() tokenizer.Token {
	t := c.peek()
	if t.ID != tokenizer.EOF {
		c.pos++
	}
	c.last = t
	c.recent.Add(t)
	return t
}

// expect consumes the current token if it has the given ID, otherwise returns an error naming what was expected
func (c *ParseContext) expect(id tokenizer.TokenID, what string) (tokenizer.Token, error) {
	t := c.peek()
	if t.ID != id {
		return t, c.errorf(t, "expected %s, found %s", what, describe(t))
	}
	return c.next(), nil
}

// expectKeyword consumes the current token if it is the identifier kw
func (c *ParseContext) expectKeyword(kw string) (tokenizer.Token, error) {
	t := c.peek()
	if !isKeyword(t, kw) {
		return t, c.errorf(t, "expected %q, found %s", kw, describe(t))
	}
	return c.next(), nil
}

var errTooDeep = errors.New("nesting too deep")

func (c *ParseContext) pushState(newState parserState) error {
	if len(c.states) >= maxDepth {
		return c.errorf(c.peek(), "%v", errTooDeep)
	}
	c.states = append(c.states, newState)
	return nil
}

func (c *ParseContext) popState() {
	if len(c.states) > 0 {
		c.states = c.states[0 : len(c.states)-1]
	}
}

func (c *ParseContext) state() parserState {
	if len(c.states) == 0 {
		return stateSource
	}
	return c.states[len(c.states)-1]
}

// errorf returns a *syntax.Error positioned at t
func (c *ParseContext) errorf(t tokenizer.Token, format string, v ...interface{}) error {
	msg := fmt.Sprintf(format, v...)
	msg = fmt.Sprintf("%s in %s", msg, c.state())
	if recent := c.recent.String(); recent != "" {
		msg = fmt.Sprintf("%s after %q", msg, recent)
	}
	return syntax.NewError(c.src, t.Offset, t.Line, t.Column, "%s", msg)
}

// spanFrom returns the span from the start of first to the end of the most recently consumed token
func (c *ParseContext) spanFrom(first tokenizer.Token) syntax.Span {
	end := c.last.End()
	if end < first.Offset {
		end = first.Offset
	}
	return syntax.Span{Start: first.Offset, End: end, Line: first.Line, Column: first.Column}
}

// element returns a new Element of kind spanning from first to the most recently consumed token
func (c *ParseContext) element(kind syntax.Kind, first tokenizer.Token) *syntax.Element {
	span := c.spanFrom(first)
	return syntax.NewElement(kind, string(c.src[span.Start:span.End]), span)
}

// name returns a KindName element for a single token
func name(t tokenizer.Token) *syntax.Element {
	return syntax.NewName(string(t.Data), syntax.Span{Start: t.Offset, End: t.End(), Line: t.Line, Column: t.Column})
}

func describe(t tokenizer.Token) string {
	if t.ID == tokenizer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.ID, t.Data)
}

func isKeyword(t tokenizer.Token, kw string) bool {
	return t.ID == tokenizer.Identifier && string(t.Data) == kw
}
