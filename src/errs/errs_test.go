package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisitor struct{}
type fakeElement struct{}

func TestArgumentErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Argument("no statement provided to compile"))

	assert.ErrorIs(t, err, ErrArgument)
	assert.NotErrorIs(t, err, ErrUnsupported)

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "no statement provided to compile", argErr.Msg)
}

func TestArgumentErrorWithArgs(t *testing.T) {
	err := &ArgumentError{Msg: "unhandled arguments", Args: []interface{}{1, "x"}}
	assert.Equal(t, "unhandled arguments: 1, x", err.Error())
}

func TestUnsupportedVisitor(t *testing.T) {
	err := UnsupportedVisitor(&fakeVisitor{}, &fakeElement{}, "node")

	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "node", err.Kind)
	assert.Equal(t, "*errs.fakeVisitor", err.Visitor)
	assert.Equal(t, "*errs.fakeElement", err.Subject)
	assert.Equal(t, "*errs.fakeVisitor cannot render node elements", err.Error())
}

func TestUnsupportedType(t *testing.T) {
	err := UnsupportedType("unsupported literal type", struct{ A int }{})
	assert.Equal(t, "struct { A int }", err.Subject)
	assert.Contains(t, err.Error(), "unsupported literal type struct")
}

func TestNotImplementedIsDistinct(t *testing.T) {
	err := NotImplemented("bind parameter rendering")

	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.False(t, errors.Is(err, ErrUnsupported))

	var unsupported *UnsupportedCompilationError
	assert.False(t, errors.As(err, &unsupported))
	assert.Equal(t, "bind parameter rendering: not implemented", err.Error())
}
