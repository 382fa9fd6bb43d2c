package tokenizer

import (
	"fmt"
	"io"
)

// readNumber reads a decimal integer, a float, or a 0x-prefixed hexadecimal integer from the current position. Floats
// may omit the digits on either side of the dot (`2.`, `.5`) and may carry an exponent.
func (s *Scanner) readNumber() (TokenID, []byte, error) {
	start := s.pos

	if c1, c2, err := s.peekTwo(); err == nil && c1 == '0' && (c2 == 'x' || c2 == 'X') {
		s.skip()
		s.skip()
		if _, err := s.readWhile(isHexDigit, 1); err != nil {
			return Hexadecimal, nil, err
		}
		return Hexadecimal, s.from(start), nil
	}

	id := Integer
	if c, _ := s.peek(); c != '.' {
		if _, err := s.readWhile(isDigit, 1); err != nil {
			return Integer, nil, err
		}
	}

	if s.atFraction() {
		s.skip()
		if _, err := s.readWhile(isDigit, 0); err != nil {
			return Float, nil, err
		}
		id = Float
	}

	if c1, c2, err := s.peekTwo(); err == nil && (c1 == 'e' || c1 == 'E') && (isDigit(c2) || c2 == '-' || c2 == '+') {
		s.skip()
		if c2 == '-' || c2 == '+' {
			s.skip()
		}
		if _, err := s.readWhile(isDigit, 1); err != nil {
			return Float, nil, err
		}
		id = Float
	}

	return id, s.from(start), nil
}

// atFraction reports whether the next character is a dot that continues a number: one followed by a digit, or a
// trailing dot that is not followed by an identifier or another dot, as in `2.` or `2.)`. `1.x` stays a member access.
func (s *Scanner) atFraction() bool {
	c1, c2, err := s.peekTwo()
	if err == io.EOF {
		c, perr := s.peek()
		return perr == nil && c == '.'
	}
	return err == nil && c1 == '.' && !isIdentifierStartChar(c2) && c2 != '.'
}

// readString reads a string delimited by quote from the current position, including both quotes; a backslash escapes
// the character that follows it
func (s *Scanner) readString(quote rune) ([]byte, error) {
	start := s.pos

	s.skip()
	for {
		c, err := s.get()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch c {
		case '\\':
			if _, err := s.get(); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return nil, err
			}
		case quote:
			return s.from(start), nil
		}
	}
}

// readDelimitedComment reads a comment that starts with open and ends with close; close must be one or two characters
func (s *Scanner) readDelimitedComment(open, close string) ([]byte, error) {
	start := s.pos

	for range open {
		s.skip()
	}

	closing := []rune(close)
	for {
		c, err := s.get()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if c != closing[0] {
			continue
		}
		if len(closing) == 1 {
			return s.from(start), nil
		}
		if next, err := s.peek(); err == nil && next == closing[1] {
			s.skip()
			return s.from(start), nil
		}
	}
}

// readLineComment reads a // comment up to, but not including, the next newline
func (s *Scanner) readLineComment() ([]byte, error) {
	b, err := s.readUntil(isNewline)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	return b, err
}

// readReference reads a ~/ or $/ reference path from the current position
func (s *Scanner) readReference() ([]byte, error) {
	start := s.pos

	prefix, _ := s.get()
	if c, err := s.peek(); err != nil || c != '/' {
		return nil, fmt.Errorf("expected / after %c", prefix)
	}
	s.skip()
	if _, err := s.readWhile(isPathChar, 0); err != nil {
		return nil, err
	}
	return s.from(start), nil
}

// readGUID reads the :{...} remainder of a GUID literal whose GUID prefix started at start
func (s *Scanner) readGUID(start int) ([]byte, error) {
	s.skip()
	s.skip()
	if _, err := s.readWhile(isGUIDChar, 1); err != nil {
		return nil, err
	}
	if c, err := s.get(); err != nil || c != '}' {
		return nil, fmt.Errorf("expected } to close GUID")
	}
	return s.from(start), nil
}

// readPunctuation reads a comment opened by punctuation, an operator, or a single-character punctuation token
func (s *Scanner) readPunctuation(c rune) (TokenID, []byte, error) {
	var next rune
	if _, c2, err := s.peekTwo(); err == nil {
		next = c2
	}

	switch {
	case c == '/' && next == '/':
		b, err := s.readLineComment()
		return LineComment, b, err
	case c == '/' && next == '*':
		b, err := s.readDelimitedComment("/*", "*/")
		return BlockComment, b, err
	case c == '(' && next == '*':
		b, err := s.readDelimitedComment("(*", "*)")
		return ParenComment, b, err
	case c == '.' && isDigit(next):
		return s.readNumber()
	}

	var id TokenID
	width := 1
	switch c {
	case '(':
		id = ParensOpen
	case ')':
		id = ParensClose
	case '[':
		id = BracketOpen
	case ']':
		id = BracketClose
	case ',':
		id = Comma
	case ':':
		id = Colon
	case '=':
		id = Equals
		if next == '=' {
			id = Operator
			width = 2
		}
	case '<', '>', '!':
		id = Operator
		if next == '=' {
			width = 2
		}
	case '+', '-', '*', '/', '%', '|', '&', '.':
		id = Operator
	default:
		return Unknown, nil, fmt.Errorf("unexpected character %q", c)
	}

	start := s.pos
	for i := 0; i < width; i++ {
		s.skip()
	}
	return id, s.from(start), nil
}
