package proptypes

import (
	"fmt"

	"github.com/seuros/cypherkit/src/errs"
)

// Prop declares one named property of an entity and its type.
type Prop struct {
	Name string
	Type PropType
}

// NewProp declares a property.
func NewProp(name string, typ PropType) Prop {
	return Prop{Name: name, Type: typ}
}

// Schema is an ordered set of property declarations. It converts whole
// property dictionaries, such as the rows an executor reads back from the
// store, in either direction.
type Schema struct {
	props []Prop
	index map[string]int
}

// NewSchema validates and indexes props.
func NewSchema(props ...Prop) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(props))}
	for _, p := range props {
		if p.Name == "" {
			return nil, errs.Argument("prop name may not be empty")
		}
		if p.Type == nil {
			return nil, errs.Argument("prop %q has no type", p.Name)
		}
		if _, dup := s.index[p.Name]; dup {
			return nil, errs.Argument("prop %q declared twice", p.Name)
		}
		s.index[p.Name] = len(s.props)
		s.props = append(s.props, p)
	}
	return s, nil
}

// Props returns the declarations in order.
func (s *Schema) Props() []Prop {
	out := make([]Prop, len(s.props))
	copy(out, s.props)
	return out
}

// Lookup returns the declaration for name.
func (s *Schema) Lookup(name string) (Prop, bool) {
	i, ok := s.index[name]
	if !ok {
		return Prop{}, false
	}
	return s.props[i], true
}

// Bind converts application values into store values. Undeclared keys pass
// through unchanged.
func (s *Schema) Bind(values map[string]interface{}) (map[string]interface{}, error) {
	return s.apply(values, func(pt PropType) Processor { return pt.BindProcessor() })
}

// Result converts store values into application values. Undeclared keys
// pass through unchanged.
func (s *Schema) Result(values map[string]interface{}) (map[string]interface{}, error) {
	return s.apply(values, func(pt PropType) Processor { return pt.ResultProcessor() })
}

func (s *Schema) apply(values map[string]interface{}, pick func(PropType) Processor) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		prop, ok := s.Lookup(k)
		if !ok {
			out[k] = v
			continue
		}
		p := pick(prop.Type)
		if p == nil {
			out[k] = v
			continue
		}
		converted, err := p(v)
		if err != nil {
			return nil, fmt.Errorf("prop %q: %w", k, err)
		}
		out[k] = converted
	}
	return out, nil
}
