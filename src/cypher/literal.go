package cypher

import (
	"reflect"
	"sort"

	"github.com/seuros/cypherkit/src/errs"
	"github.com/seuros/cypherkit/src/proptypes"
)

// Coercer turns native Go values into literal expressions. Values that are
// not text, numbers or lists are rendered through the literal processor of
// the PropType registered for their runtime type.
type Coercer struct {
	registry *proptypes.Registry
}

// NewCoercer creates a coercer over reg. A nil registry selects
// proptypes.Default.
func NewCoercer(reg *proptypes.Registry) *Coercer {
	if reg == nil {
		reg = proptypes.Default()
	}
	return &Coercer{registry: reg}
}

func defaultCoercer() *Coercer { return NewCoercer(nil) }

// Registry returns the registry used for fallback literals.
func (c *Coercer) Registry() *proptypes.Registry { return c.registry }

// Literal coerces value with the default registry.
func Literal(value interface{}) (Element, error) {
	return defaultCoercer().Literal(value)
}

// Literal coerces value into an element:
//
//   - an Element of any kind is returned unchanged
//   - string and []byte become a StringLiteral
//   - any integer or float becomes a Raw holding its decimal text
//   - any slice or array becomes a Collection, coerced element by element
//   - anything else becomes a Raw from its registered literal processor
func (c *Coercer) Literal(value interface{}) (Element, error) {
	switch v := value.(type) {
	case Element:
		if isNil(v) {
			return nil, errs.UnsupportedType("unsupported literal type", value)
		}
		return v, nil
	case string:
		return NewString(v), nil
	case []byte:
		return NewString(string(v)), nil
	}

	if text, ok := proptypes.FormatNumber(value); ok {
		return NewRaw(text), nil
	}

	if value != nil {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			elems := make([]interface{}, rv.Len())
			for i := range elems {
				elems[i] = rv.Index(i).Interface()
			}
			col, err := c.Collection(elems...)
			if err != nil {
				return nil, err
			}
			return col, nil
		}
	}

	pt, ok := c.registry.LookupType(reflect.TypeOf(value))
	if !ok || pt.LiteralProcessor() == nil {
		return nil, errs.UnsupportedType("unsupported literal type", value)
	}
	text, err := pt.LiteralProcessor()(value)
	if err != nil {
		return nil, err
	}
	return NewRaw(text), nil
}

// Expression coerces value like Literal and requires the result to be
// usable where an expression is expected, such as a RETURN item.
func (c *Coercer) Expression(value interface{}) (Expression, error) {
	el, err := c.Literal(value)
	if err != nil {
		return nil, err
	}
	expr, ok := el.(Expression)
	if !ok {
		return nil, &errs.UnsupportedCompilationError{
			Msg:     "element cannot be used as an expression",
			Kind:    string(el.Kind()),
			Subject: typeName(el),
		}
	}
	return expr, nil
}

// Collection builds a list literal, coercing each element.
func (c *Coercer) Collection(elems ...interface{}) (*Collection, error) {
	out := make([]Element, len(elems))
	for i, e := range elems {
		expr, err := c.Literal(e)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return &Collection{elems: out}, nil
}

// Properties builds a properties block from alternating keys and values.
// Keys must be strings.
func (c *Coercer) Properties(variable *Variable, keysAndValues ...interface{}) (*Properties, error) {
	if len(keysAndValues)%2 != 0 {
		return nil, &errs.ArgumentError{
			Msg:  "properties need a value for every key",
			Args: keysAndValues[len(keysAndValues)-1:],
		}
	}
	entries := make([]Property, 0, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			return nil, &errs.UnsupportedCompilationError{
				Msg:     "properties keys must be strings",
				Kind:    string(KindProperties),
				Subject: typeName(keysAndValues[i]),
			}
		}
		value, err := c.Literal(keysAndValues[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, Property{Key: key, Value: value})
	}
	return &Properties{variable: variable, entries: entries}, nil
}

// PropertiesFromMap builds a properties block with keys in sorted order.
func (c *Coercer) PropertiesFromMap(variable *Variable, props map[string]interface{}) (*Properties, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, props[k])
	}
	return c.Properties(variable, kv...)
}
