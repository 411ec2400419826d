// Package errs defines the error kinds shared by the AST, the compiler and
// the property type system.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArgument is matched by every *ArgumentError via errors.Is.
	ErrArgument = errors.New("argument error")
	// ErrUnsupported is matched by every *UnsupportedCompilationError via errors.Is.
	ErrUnsupported = errors.New("unsupported compilation")
	// ErrNotImplemented marks reserved features. It is never wrapped in an
	// UnsupportedCompilationError so callers can tell the two apart.
	ErrNotImplemented = errors.New("not implemented")
)

// ArgumentError reports invalid or conflicting construction-time arguments.
type ArgumentError struct {
	Msg  string
	Args []interface{}
}

// Argument creates an ArgumentError with a formatted message.
func Argument(format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Error() string {
	if len(e.Args) == 0 {
		return e.Msg
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return e.Msg + ": " + strings.Join(parts, ", ")
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

// UnsupportedCompilationError reports a structural or dispatch failure.
type UnsupportedCompilationError struct {
	Msg string
	// Kind is the kind tag of the offending element, if any.
	Kind string
	// Visitor is the renderer type that lacked an operation, if any.
	Visitor string
	// Subject is the Go type of the offending value or element, if any.
	Subject string
}

// Unsupported creates an UnsupportedCompilationError with a formatted message.
func Unsupported(format string, args ...interface{}) *UnsupportedCompilationError {
	return &UnsupportedCompilationError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedType reports a value whose Go type cannot be handled.
func UnsupportedType(what string, value interface{}) *UnsupportedCompilationError {
	typ := fmt.Sprintf("%T", value)
	return &UnsupportedCompilationError{
		Msg:     fmt.Sprintf("%s %s", what, typ),
		Subject: typ,
	}
}

// UnsupportedVisitor reports a renderer that has no operation for an element kind.
func UnsupportedVisitor(visitor interface{}, element interface{}, kind string) *UnsupportedCompilationError {
	return &UnsupportedCompilationError{
		Msg:     fmt.Sprintf("%T cannot render %s elements", visitor, kind),
		Kind:    kind,
		Visitor: fmt.Sprintf("%T", visitor),
		Subject: fmt.Sprintf("%T", element),
	}
}

func (e *UnsupportedCompilationError) Error() string { return e.Msg }

func (e *UnsupportedCompilationError) Unwrap() error { return ErrUnsupported }

// NotImplemented wraps ErrNotImplemented with the name of the missing feature.
func NotImplemented(feature string) error {
	return fmt.Errorf("%s: %w", feature, ErrNotImplemented)
}
