package tokenizer

// isWhiteSpace returns true if c is a whitespace character
func isWhiteSpace(c rune) bool {
	switch c {
	case '\t', ' ', '\r',
		'\u00A0',
		'\u000c',
		// BOM
		'\uFEFF':
		return true
	default:
		return false
	}
}

// isNewline returns true if c is a newline character
func isNewline(c rune) bool {
	return c == '\n'
}

// isDigit returns true if c is a digit
func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isHexDigit returns true if c is a hexadecimal digit
func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isIdentifierStartChar indicates whether c is a valid first character for an identifier
func isIdentifierStartChar(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentifierChar indicates whether c is a valid character for an identifier
func isIdentifierChar(c rune) bool {
	return isIdentifierStartChar(c) || isDigit(c)
}

// isPathChar indicates whether c is a valid character in a ~/ or $/ reference path
func isPathChar(c rune) bool {
	return isIdentifierChar(c) || c == '/'
}

// isGUIDChar indicates whether c is a valid character between the braces of a GUID:{...} literal
func isGUIDChar(c rune) bool {
	return isHexDigit(c) || c == '-'
}

// IsIdentifier returns true if s is a valid bare NDF identifier
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isIdentifierStartChar(r) {
				return false
			}
		} else if !isIdentifierChar(r) {
			return false
		}
	}
	return true
}
