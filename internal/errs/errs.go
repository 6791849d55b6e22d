// Package errs defines the error kinds shared by the bin and category packages.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies validation failures.
type Kind int

const (
	// TypeKind reports input that is not a recognized column form.
	TypeKind Kind = iota + 1
	// ValueKind reports an out-of-range argument or a malformed table shape.
	ValueKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type error"
	case ValueKind:
		return "value error"
	default:
		return "error"
	}
}

// Sentinels usable with errors.Is.
var (
	ErrType  = &Error{Kind: TypeKind}
	ErrValue = &Error{Kind: ValueKind}
)

// Error carries a Kind plus the operation that rejected its input.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrValue) works
// regardless of Op and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Type builds a TypeKind error.
func Type(op, format string, args ...any) error {
	return &Error{Kind: TypeKind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Value builds a ValueKind error.
func Value(op, format string, args ...any) error {
	return &Error{Kind: ValueKind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
