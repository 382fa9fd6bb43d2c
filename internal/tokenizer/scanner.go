package tokenizer

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/syntax"
)

var (
	ErrInvalidRune = errors.New("invalid UTF8 input")
	ErrEndOfToken  = errors.New("unexpected end of token")
	ErrClosed      = errors.New("use of closed Scanner")
)

// Scanner tokenizes an NDF source held in memory. Tokens reference the source slice rather than copies of it.
type Scanner struct {
	// Logger receives a debug record per token; nil disables logging
	Logger *zap.Logger

	src    []byte
	pos    int
	line   int
	column int
	token  Token
	err    error
}

// NewSlice creates a new Scanner that reads from input
func NewSlice(input []byte) *Scanner {
	return &Scanner{src: input}
}

// New creates a new Scanner that reads all of r into memory
func New(r io.Reader) *Scanner {
	b, err := io.ReadAll(r)
	s := NewSlice(b)
	s.err = err
	return s
}

func (s *Scanner) log(msg string, fields ...zap.Field) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields...)
	}
}

// decode returns the rune starting at byte offset off and its width
func (s *Scanner) decode(off int) (rune, int, error) {
	if off >= len(s.src) {
		return 0, 0, io.EOF
	}
	c, size := utf8.DecodeRune(s.src[off:])
	if c == utf8.RuneError && size <= 1 {
		return 0, 0, ErrInvalidRune
	}
	return c, size, nil
}

// peek returns the next character without consuming it
func (s *Scanner) peek() (rune, error) {
	c, _, err := s.decode(s.pos)
	return c, err
}

// peekTwo returns the next two characters without consuming them; io.EOF is returned if fewer than two remain
func (s *Scanner) peekTwo() (rune, rune, error) {
	c1, size, err := s.decode(s.pos)
	if err != nil {
		return 0, 0, err
	}
	c2, _, err := s.decode(s.pos + size)
	if err != nil {
		return 0, 0, err
	}
	return c1, c2, nil
}

// get consumes and returns the next character, tracking the line and column it leaves the scanner at
func (s *Scanner) get() (rune, error) {
	c, size, err := s.decode(s.pos)
	if err != nil {
		return 0, err
	}
	s.pos += size
	if isNewline(c) {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return c, nil
}

func (s *Scanner) skip() {
	_, _ = s.get()
}

// from returns the source bytes between start and the current position
func (s *Scanner) from(start int) []byte {
	return s.src[start:s.pos]
}

// readWhile consumes characters for as long as valid accepts them. Fewer than minLength accepted characters is an
// error.
func (s *Scanner) readWhile(valid func(c rune) bool, minLength int) ([]byte, error) {
	start := s.pos
	for n := 0; ; n++ {
		c, err := s.peek()
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == nil && valid(c) {
			s.skip()
			continue
		}
		if n < minLength {
			if err == io.EOF {
				return nil, ErrEndOfToken
			}
			return nil, fmt.Errorf("unexpected character %q", c)
		}
		return s.from(start), nil
	}
}

// readUntil consumes characters up to the first one accepted by stop, which is not consumed. Reaching the end of the
// input first returns what was read along with io.ErrUnexpectedEOF.
func (s *Scanner) readUntil(stop func(c rune) bool) ([]byte, error) {
	start := s.pos
	for {
		c, err := s.peek()
		if err == io.EOF {
			return s.from(start), io.ErrUnexpectedEOF
		} else if err != nil {
			return s.from(start), err
		}
		if stop(c) {
			return s.from(start), nil
		}
		s.skip()
	}
}

// Offset returns the current byte offset in the input
func (s *Scanner) Offset() int {
	return s.pos
}

// Pos returns the current 1-based line and column number in the input
func (s *Scanner) Pos() (int, int) {
	return s.line + 1, s.column + 1
}

// readNext reads and returns the next token, or io.EOF at the end of the input
func (s *Scanner) readNext() (Token, error) {
	token := Token{
		Line:   s.line + 1,
		Column: s.column + 1,
		Offset: s.pos,
	}

	c, err := s.peek()
	if err != nil {
		return token, err
	}

	switch {
	case isNewline(c):
		s.skip()
		token.ID = Newline
		token.Data = s.from(token.Offset)

	case isWhiteSpace(c):
		token.ID = Whitespace
		token.Data, err = s.readWhile(isWhiteSpace, 1)

	case isDigit(c):
		token.ID, token.Data, err = s.readNumber()

	case c == '"' || c == '\'':
		token.ID = String
		token.Data, err = s.readString(c)

	case c == '{':
		token.ID = BraceComment
		token.Data, err = s.readDelimitedComment("{", "}")

	case c == '~' || c == '$':
		token.ID = Reference
		token.Data, err = s.readReference()

	case isIdentifierStartChar(c):
		token.ID = Identifier
		token.Data, err = s.readWhile(isIdentifierChar, 1)
		if err == nil && string(token.Data) == "GUID" {
			if c1, c2, perr := s.peekTwo(); perr == nil && c1 == ':' && c2 == '{' {
				token.ID = GUID
				token.Data, err = s.readGUID(token.Offset)
			}
		}

	default:
		token.ID, token.Data, err = s.readPunctuation(c)
	}

	if err != nil {
		return token, err
	}
	s.log("token", zap.Stringer("token", token), zap.Int("line", token.Line), zap.Int("column", token.Column))
	return token, nil
}

// annotatedError converts err into a *syntax.Error positioned at the scanner's current location
func (s *Scanner) annotatedError(err error) error {
	line, column := s.Pos()
	return &syntax.Error{
		Line:    line,
		Column:  column,
		Msg:     fmt.Sprintf("scan failed: %v", err),
		Excerpt: syntax.Excerpt(s.src, s.pos),
	}
}

// ScanAll scans and returns every remaining token, not including a trailing EOF token
func (s *Scanner) ScanAll() ([]Token, error) {
	if s.err != nil {
		return nil, s.err
	}

	tokens := make([]Token, 0, (len(s.src)-s.pos)/2)
	for {
		token, err := s.readNext()
		switch {
		case err == nil:
			tokens = append(tokens, token)
		case err == io.EOF:
			return tokens, nil
		default:
			s.log("failed", zap.Error(err))
			return nil, s.annotatedError(err)
		}
	}
}

// Scan reads the next token and reports whether one was read.
//
// At the end of the input Scan yields a single EOF token; the call after that returns false with a nil Err.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		if s.err == io.EOF {
			s.err = nil
		}
		return false
	}

	s.token, s.err = s.readNext()
	switch {
	case s.err == nil:
		return true
	case s.err == io.EOF:
		s.token = Token{ID: EOF, Data: []byte{}, Line: s.line + 1, Column: s.column + 1, Offset: s.pos}
		return true
	}
	s.err = s.annotatedError(s.err)
	return false
}

// Token returns the token read by Scan
func (s *Scanner) Token() Token {
	return s.token
}

// Err returns the error encountered by Scan
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the input; later calls to Scan fail with ErrClosed
func (s *Scanner) Close() error {
	s.src = nil
	s.pos = 0
	s.err = ErrClosed
	return nil
}
