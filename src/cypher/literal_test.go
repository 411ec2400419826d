package cypher

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/cypherkit/src/errs"
	"github.com/seuros/cypherkit/src/proptypes"
)

type celsius float64

type point struct{ X, Y int }

func TestLiteral(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		kind     Kind
		expected string
	}{
		{"string", "hi", KindString, `"hi"`},
		{"bytes", []byte("hi"), KindString, `"hi"`},
		{"int", 42, KindRaw, "42"},
		{"negative int8", int8(-3), KindRaw, "-3"},
		{"uint64", uint64(math.MaxUint64), KindRaw, "18446744073709551615"},
		{"float", 2.5, KindRaw, "2.5"},
		{"integral float", 3.0, KindRaw, "3.0"},
		{"float32", float32(0.1), KindRaw, "0.1"},
		{"million float", 1000000.0, KindRaw, "1000000.0"},
		{"fractional million", 2500000.0, KindRaw, "2500000.0"},
		{"large float", 1e21, KindRaw, "1e21"},
		{"tiny float", 0.00001, KindRaw, "1e-5"},
		{"named numeric", celsius(21.5), KindRaw, "21.5"},
		{"bool", true, KindRaw, "true"},
		{"nil", nil, KindRaw, "NULL"},
		{"slice", []int{1, 2}, KindCollection, "[1, 2]"},
		{"array", [2]string{"a", "b"}, KindCollection, `["a", "b"]`},
		{"nested", []interface{}{1, []interface{}{"x", []bool{false}}}, KindCollection, `[1, ["x", [false]]]`},
		{"empty slice", []string{}, KindCollection, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Literal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, expr.Kind())
			assert.Equal(t, tt.expected, mustRender(t, expr))
		})
	}
}

func TestLiteralIsIdempotentOnExpressions(t *testing.T) {
	raw := NewRaw("x")
	expr, err := Literal(raw)
	require.NoError(t, err)
	assert.Same(t, raw, expr)

	again, err := Literal(expr)
	require.NoError(t, err)
	assert.Same(t, raw, again)
}

func TestLiteralIsIdempotentOnElements(t *testing.T) {
	a := NewNode(WithLabel("A"))
	b := NewNode()
	rel, err := NewRelationship(a, Right(), b)
	require.NoError(t, err)
	match, err := NewMatch(rel)
	require.NoError(t, err)
	v := NewNamedVariable(NewEntityType("A", "A"), "a")
	ret, err := NewReturn(v)
	require.NoError(t, err)
	q, err := NewQuery(match, ret)
	require.NoError(t, err)
	props, err := NewProperties(nil, "x", 1)
	require.NoError(t, err)

	for _, el := range []Element{a, NewRelPiece(), Left(), rel, match, ret, q, v, props} {
		t.Run(string(el.Kind()), func(t *testing.T) {
			got, err := Literal(el)
			require.NoError(t, err)
			assert.Same(t, el, got)
		})
	}
}

func TestCollectionOfPatterns(t *testing.T) {
	col, err := NewCollection(NewNode(), NewNode(WithLabel("Movie")), 1)
	require.NoError(t, err)
	assert.Equal(t, "[(), (:Movie), 1]", mustRender(t, col))

	p, err := NewProperties(nil, "n", NewNode())
	require.NoError(t, err)
	assert.Equal(t, "{n: ()}", mustRender(t, p))
}

func TestCoercerExpressionRejectsPatterns(t *testing.T) {
	c := NewCoercer(nil)

	expr, err := c.Expression(7)
	require.NoError(t, err)
	assert.Equal(t, "7", mustRender(t, expr))

	_, err = c.Expression(NewNode())
	var uce *errs.UnsupportedCompilationError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, string(KindNode), uce.Kind)
	assert.Equal(t, "*cypher.Node", uce.Subject)
}

func TestLiteralRejects(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		subject string
	}{
		{"struct", point{1, 2}, "cypher.point"},
		{"map", map[string]int{"a": 1}, "map[string]int"},
		{"time", time.Time{}, "time.Time"},
		{"nested struct", []interface{}{1, point{}}, "cypher.point"},
		{"typed nil expression", (*Raw)(nil), "*cypher.Raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Literal(tt.value)
			var uce *errs.UnsupportedCompilationError
			require.ErrorAs(t, err, &uce)
			assert.Equal(t, tt.subject, uce.Subject)
		})
	}
}

func TestCoercerWithCustomRegistry(t *testing.T) {
	reg := proptypes.Default().Clone()
	stamp, err := proptypes.NewDecorator(proptypes.String{},
		proptypes.WithLiteralHook(func(v interface{}) (interface{}, error) {
			return v.(time.Time).UTC().Format(time.RFC3339), nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, reg.Register(reflect.TypeOf(time.Time{}), stamp))

	c := NewCoercer(reg)
	assert.Same(t, reg, c.Registry())

	expr, err := c.Literal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, `"2020-01-02T03:04:05Z"`, mustRender(t, expr))

	_, err = Literal(time.Time{})
	assert.ErrorIs(t, err, errs.ErrUnsupported, "default registry is unaffected")
}

func TestPropertiesConstruction(t *testing.T) {
	_, err := NewProperties(nil, 1, "a")
	var uce *errs.UnsupportedCompilationError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, "int", uce.Subject)

	_, err = NewProperties(nil, "a", 1, "b")
	assert.ErrorIs(t, err, errs.ErrArgument)

	_, err = NewProperties(nil, "a", point{})
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	p, err := NewProperties(nil, "b", 2, "a", 1)
	require.NoError(t, err)
	entries := p.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Key, "insertion order is kept")
	assert.Equal(t, KindRaw, entries[0].Value.Kind())
}
