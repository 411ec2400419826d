package proptypes

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/cypherkit/src/errs"
)

type celsius float64

func TestArrayIntegerRoundTrip(t *testing.T) {
	arr := NewArray(Integer{})

	bound, err := arr.BindProcessor()([]int{1, 2, 3})
	require.NoError(t, err)

	back, err := arr.ResultProcessor()(bound)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, back)
}

func TestArrayUntypedCopies(t *testing.T) {
	arr := NewArray(nil)
	src := []string{"a", "b"}

	out, err := arr.BindProcessor()(src)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, out)

	out, err = arr.ResultProcessor()([2]int{4, 5})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{4, 5}, out)

	_, err = arr.LiteralProcessor()(src)
	assert.ErrorIs(t, err, errs.ErrUnsupported)
}

func TestArrayResolvesPerElementType(t *testing.T) {
	arr := NewArray(String{})

	out, err := arr.BindProcessor()([]interface{}{"x", 2, 1.5, true, nil})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", int64(2), 1.5, true, nil}, out)

	lit, err := arr.LiteralProcessor()([]interface{}{"it's", 2, 1.0, false, nil})
	require.NoError(t, err)
	assert.Equal(t, `["it\'s", 2, 1.0, false, NULL]`, lit)
}

func TestArrayMemoizesResolvedProcessors(t *testing.T) {
	arr := NewArray(Integer{})
	bind := arr.BindProcessor()

	_, err := bind([]interface{}{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, arr.cachedTypes())

	_, err = bind([]interface{}{4, "5"})
	require.NoError(t, err)
	assert.Equal(t, 2, arr.cachedTypes())

	_, err = arr.ResultProcessor()([]interface{}{int64(4)})
	require.NoError(t, err)
	assert.Equal(t, 3, arr.cachedTypes())
}

func TestArrayUnregisteredType(t *testing.T) {
	arr := NewArray(Float{})

	_, err := arr.BindProcessor()([]interface{}{celsius(21.5)})
	require.Error(t, err)

	var unsupported *errs.UnsupportedCompilationError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "proptypes.celsius", unsupported.Subject)
}

func TestArrayCustomRegistry(t *testing.T) {
	reg := NewDefaultRegistry()
	require.NoError(t, reg.Register(reflect.TypeOf(celsius(0)), Float{}))

	arr := NewArray(Float{}, WithRegistry(reg))
	out, err := arr.BindProcessor()([]celsius{21.5})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{21.5}, out)
}

func TestArrayRejectsNonSlices(t *testing.T) {
	arr := NewArray(Integer{})

	_, err := arr.BindProcessor()(7)
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	out, err := arr.ResultProcessor()(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
