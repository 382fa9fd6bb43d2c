package document

import (
	"errors"
	"unicode/utf8"
)

// plainByte reports, for each ASCII byte, whether it can appear in an NDF string literal without an escape
var plainByte = [256]bool{}

func init() {
	for i := 0x20; i <= 0x7e; i++ {
		plainByte[i] = i != '\\' && i != '"' && i != '\''
	}
	for i := utf8.RuneSelf; i < 256; i++ {
		plainByte[i] = true
	}
}

// ErrInvalidString is returned when a literal is not a well-formed quoted string
var ErrInvalidString = errors.New("invalid quoted string")

// QuoteString returns s as a double-quoted NDF string literal
func QuoteString(s string) string {
	return string(AppendQuotedString(make([]byte, 0, len(s)+2), s, '"'))
}

// AppendQuotedString appends s to b as an NDF string literal delimited by quote and returns the expanded buffer
func AppendQuotedString(b []byte, s string, quote byte) []byte {
	b = append(b, quote)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if plainByte[c] || (c != quote && (c == '"' || c == '\'')) {
			continue
		}
		b = append(b, s[start:i]...)
		switch c {
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, '\\', c)
		}
		start = i + 1
	}
	b = append(b, s[start:]...)
	return append(b, quote)
}

// UnquoteString returns the contents of the single- or double-quoted NDF string literal s
func UnquoteString(s string) (string, error) {
	if len(s) < 2 {
		return "", ErrInvalidString
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", ErrInvalidString
	}
	b, err := AppendUnquotedString(make([]byte, 0, len(s)), s[1:len(s)-1])
	return string(b), err
}

// AppendUnquotedString appends body, the text between a string literal's quotes, to b with escapes resolved
func AppendUnquotedString(b []byte, body string) ([]byte, error) {
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b = append(b, c)
			continue
		}
		i++
		if i == len(body) {
			return b, ErrInvalidString
		}
		switch body[i] {
		case 'n':
			b = append(b, '\n')
		case 'r':
			b = append(b, '\r')
		case 't':
			b = append(b, '\t')
		default:
			b = append(b, body[i])
		}
	}
	return b, nil
}
