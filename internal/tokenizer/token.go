package tokenizer

import (
	"fmt"
)

type TokenID int

const (
	Unknown TokenID = iota
	Newline
	Whitespace
	LineComment
	BlockComment
	ParenComment
	BraceComment
	Integer
	Float
	Hexadecimal
	String
	Identifier
	Reference
	GUID
	Operator
	Colon
	Equals
	Comma
	ParensOpen
	ParensClose
	BracketOpen
	BracketClose
	EOF

	ClassTrivia
	ClassComment
	ClassLiteral
)

var tokenClasses = map[TokenID][]TokenID{
	Newline:      {ClassTrivia},
	Whitespace:   {ClassTrivia},
	LineComment:  {ClassTrivia, ClassComment},
	BlockComment: {ClassTrivia, ClassComment},
	ParenComment: {ClassTrivia, ClassComment},
	BraceComment: {ClassTrivia, ClassComment},
	Integer:      {ClassLiteral},
	Float:        {ClassLiteral},
	Hexadecimal:  {ClassLiteral},
	String:       {ClassLiteral},
	Reference:    {ClassLiteral},
	GUID:         {ClassLiteral},
}

func (t TokenID) Classes() []TokenID {
	return tokenClasses[t]
}

// Is returns true if t is class or belongs to class
func (t TokenID) Is(class TokenID) bool {
	if t == class {
		return true
	}
	for _, c := range tokenClasses[t] {
		if c == class {
			return true
		}
	}
	return false
}

func (t TokenID) String() string {
	switch t {
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case ParenComment:
		return "ParenComment"
	case BraceComment:
		return "BraceComment"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Hexadecimal:
		return "Hexadecimal"
	case String:
		return "String"
	case Identifier:
		return "Identifier"
	case Reference:
		return "Reference"
	case GUID:
		return "GUID"
	case Operator:
		return "Operator"
	case Colon:
		return "Colon"
	case Equals:
		return "Equals"
	case Comma:
		return "Comma"
	case ParensOpen:
		return "ParensOpen"
	case ParensClose:
		return "ParensClose"
	case BracketOpen:
		return "BracketOpen"
	case BracketClose:
		return "BracketClose"
	case EOF:
		return "EOF"
	default:
		return "(invalid)"
	}
}

// Token contains a single token returned by a Scanner.
type Token struct {
	// ID indicates the token type
	ID TokenID
	// Data is a subslice of the input buffer and should not be modified
	Data   []byte
	Line   int
	Column int
	// Offset is the byte offset of the token's first character in the input
	Offset int
}

// String returns a string representation of the token for debugging
func (t Token) String() string {
	if len(t.Data) > 0 {
		return fmt.Sprintf("%s(%s)", t.ID.String(), string(t.Data))
	} else {
		return t.ID.String()
	}
}

// End returns the byte offset just past the token's last character
func (t Token) End() int {
	return t.Offset + len(t.Data)
}

// Valid returns true if this token has a valid ID
func (t Token) Valid() bool {
	return t.ID != Unknown
}

// Clear resets this token to its default (invalid) state
func (t *Token) Clear() {
	t.ID = Unknown
	t.Data = nil
	t.Line, t.Column, t.Offset = 0, 0, 0
}
