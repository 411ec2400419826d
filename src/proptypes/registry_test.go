package proptypes

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/cypherkit/src/errs"
)

func TestDefaultRegistrySeeds(t *testing.T) {
	reg := Default()

	tests := []struct {
		value    interface{}
		expected PropType
	}{
		{1, Integer{}},
		{int64(1), Integer{}},
		{uint32(1), Integer{}},
		{1.5, Float{}},
		{float32(1.5), Float{}},
		{true, Boolean{}},
		{"s", String{}},
		{nil, Null{}},
	}
	for _, tt := range tests {
		pt, err := reg.Lookup(tt.value)
		require.NoError(t, err, "%T", tt.value)
		assert.Equal(t, tt.expected, pt)
	}
	assert.Equal(t, 15, reg.Len())
	assert.True(t, reg.Frozen())
	assert.Same(t, reg, Default())
}

func TestDefaultRegistryIsFrozen(t *testing.T) {
	err := Default().Register(reflect.TypeOf(time.Time{}), String{})
	assert.ErrorIs(t, err, errs.ErrArgument)
}

func TestRegistryCloneAndRegister(t *testing.T) {
	reg := Default().Clone()
	assert.False(t, reg.Frozen())

	require.NoError(t, reg.RegisterValue(time.Duration(0), Integer{}))
	pt, err := reg.Lookup(time.Second)
	require.NoError(t, err)
	assert.Equal(t, Integer{}, pt)

	_, err = Default().Lookup(time.Second)
	assert.ErrorIs(t, err, errs.ErrUnsupported)
}

func TestRegistryRejectsNilType(t *testing.T) {
	err := NewRegistry().Register(reflect.TypeOf(0), nil)
	assert.ErrorIs(t, err, errs.ErrArgument)
}

func TestRegistryLookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup(1)

	var unsupported *errs.UnsupportedCompilationError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "int", unsupported.Subject)
}

func TestRegistryTypesSorted(t *testing.T) {
	entries := Default().Types()
	require.Len(t, entries, 15)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "nil")

	for _, e := range entries {
		if e.Name == "bool" {
			assert.Equal(t, "bool -> Boolean", e.String())
		}
	}
	assert.Equal(t, "Array", TypeName(NewArray(nil)))
	assert.Equal(t, "<none>", TypeName(nil))
}
