package document

import (
	"errors"
	"fmt"

	"github.com/sblinch/ndf-go/syntax"
)

var (
	// ErrStructural is wrapped by every StructuralError
	ErrStructural = errors.New("malformed syntax tree")
	// ErrNotFound is wrapped by every NotFoundError
	ErrNotFound = errors.New("row not found")
	// ErrUnknownField is wrapped by every UnknownFieldError
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidInput is wrapped by every InputError
	ErrInvalidInput = errors.New("invalid input")
	// ErrDanglingIndex is returned when a row that belongs to no container is used as an index
	ErrDanglingIndex = errors.New("cannot index with a dangling row")
	// ErrForeignContainer is returned when a row that belongs to another container is used as an index
	ErrForeignContainer = errors.New("row belongs to a different container")
	// ErrIndexOutOfRange is returned for a positional index past either end of a container
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrMissingField is returned when a row lacks a field its container requires
	ErrMissingField = errors.New("missing required field")
	// ErrModifiedDuringIteration is returned by a Matcher whose container changed length under it
	ErrModifiedDuringIteration = errors.New("container modified during iteration")
	// ErrCycle is returned when a value would become its own descendant
	ErrCycle = errors.New("value cannot contain itself")
)

// StructuralError reports a syntax node the builder cannot turn into a model entity
type StructuralError struct {
	Kind   syntax.Kind
	Span   syntax.Span
	Text   string
	Reason string
}

func (e *StructuralError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unrecognized node"
	}
	text := e.Text
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Sprintf("%s: %s node %q at line %d, column %d", reason, e.Kind, text, e.Span.Line, e.Span.Column)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

// UnknownFieldError reports a field name a row kind does not have
type UnknownFieldError struct {
	Row   string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("cannot set %s.%s, field does not exist", e.Row, e.Field)
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

// NotFoundError reports a strict lookup that matched no row
type NotFoundError struct {
	Container string
	// Field and Value describe the lookup; both are empty for a predicate search
	Field string
	Value string
}

func (e *NotFoundError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("no row in %s matches the given condition", e.Container)
	}
	return fmt.Sprintf("found no row in %s with %s == %q", e.Container, e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InputError reports a value of the wrong shape passed to a mutation or constructor
type InputError struct {
	Op     string
	Input  interface{}
	Reason string
}

func (e *InputError) Error() string {
	if e.Input == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", e.Op, e.Reason, e.Input)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func inputError(op string, input interface{}, format string, v ...interface{}) error {
	return &InputError{Op: op, Input: input, Reason: fmt.Sprintf(format, v...)}
}
