package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsNumber reports whether l is a plain integer or decimal number, optionally signed
func (l Literal) IsNumber() bool {
	_, err := l.Float()
	return err == nil
}

// Int returns the value of an integer literal such as `12`, `-3` or `0x1F`
func (l Literal) Int() (int64, error) {
	s := strings.TrimSpace(string(l))
	base := 10
	if digits := strings.TrimLeft(s, "+-"); strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 0
	}
	i, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer literal", ErrInvalidInput, string(l))
	}
	return i, nil
}

// Float returns the value of a numeric literal: an integer or a decimal such as `5.56`, `2.`, `.5` or `1.5e-3`, the
// forms the parser reads as numbers
func (l Literal) Float() (float64, error) {
	s := strings.TrimSpace(string(l))
	if s == "" || strings.ContainsAny(s, "_pPxXiInN") {
		return 0, fmt.Errorf("%w: %q is not a numeric literal", ErrInvalidInput, string(l))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a numeric literal", ErrInvalidInput, string(l))
	}
	return f, nil
}

// Bool returns the value of `True` or `False`, matched without regard to case
func (l Literal) Bool() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(l))) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean literal", ErrInvalidInput, string(l))
}

// Int returns an integer literal for i
func Int(i int64) Literal {
	return Literal(strconv.FormatInt(i, 10))
}

// Float returns a numeric literal for f, always written with a decimal point so that it reads back as a float. NDF
// has no spelling for infinities or NaN; Float panics on them.
func Float(f float64) Literal {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		panic(fmt.Sprintf("document: Float(%v) has no NDF form", f))
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return Literal(s)
}

// Bool returns `True` or `False`
func Bool(b bool) Literal {
	if b {
		return "True"
	}
	return "False"
}
