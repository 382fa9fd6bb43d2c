package syntax

import (
	"fmt"
)

// Error describes a syntax error at a position in the source
type Error struct {
	Line    int
	Column  int
	Msg     string
	Excerpt string
}

func (e *Error) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("parse failed: %s at line %d, column %d", e.Msg, e.Line, e.Column)
	}
	return fmt.Sprintf("parse failed: %s at line %d, column %d\n%s", e.Msg, e.Line, e.Column, e.Excerpt)
}

// NewError returns an Error for the given offset in src, annotated with the offending line and a caret
func NewError(src []byte, offset, line, column int, format string, v ...interface{}) *Error {
	return &Error{
		Line:    line,
		Column:  column,
		Msg:     fmt.Sprintf(format, v...),
		Excerpt: Excerpt(src, offset),
	}
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r'
}

// Excerpt returns the line of src containing offset, a newline, and a caret positioned under offset
func Excerpt(src []byte, offset int) string {
	if len(src) == 0 {
		return ""
	}
	if offset >= len(src) {
		offset = len(src) - 1
	}
	if offset < 0 {
		offset = 0
	}

	start := offset
	for start > 0 {
		if isNewline(src[start-1]) {
			break
		}
		start--
	}

	end := offset
	for end < len(src) && !isNewline(src[end]) {
		end++
	}
	caretOffset := offset - start + 1

	elided := caretOffset > 64
	if elided {
		start += caretOffset - 64
		caretOffset = 64
	}

	line := make([]byte, 0, end-start+1+caretOffset)
	line = append(line, src[start:end]...)
	for i, c := range line {
		if c == '\t' {
			line[i] = ' '
		}
	}

	if elided && len(line) >= 3 {
		line[0], line[1], line[2] = '.', '.', '.'
	}

	line = append(line, '\n')
	for i := 0; i < caretOffset-1; i++ {
		line = append(line, ' ')
	}
	line = append(line, '^')

	return string(line)
}
