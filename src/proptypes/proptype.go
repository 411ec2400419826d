// Package proptypes describes how one logical value domain converts between
// application values, values sent to the graph store, and literal text placed
// directly into a rendered query.
//
// Every PropType exposes up to three independent conversion functions:
//
//   - bind: application value -> value suitable for the backing store
//   - result: backing-store value -> application value
//   - literal: application value -> inline query text
//
// A nil function means no conversion is needed (identity) for bind and
// result, and no literal form for literal.
package proptypes

// Processor converts a value in the bind or result direction.
type Processor func(value interface{}) (interface{}, error)

// LiteralProcessor converts an application value into inline query text.
type LiteralProcessor func(value interface{}) (string, error)

// PropType declares how a value domain converts in each direction.
type PropType interface {
	// BindProcessor returns the application -> store conversion, or nil.
	BindProcessor() Processor
	// ResultProcessor returns the store -> application conversion, or nil.
	ResultProcessor() Processor
	// LiteralProcessor returns the application -> query text conversion, or nil.
	LiteralProcessor() LiteralProcessor
}

// Base offers no conversions. Embed it to implement only some directions.
type Base struct{}

func (Base) BindProcessor() Processor           { return nil }
func (Base) ResultProcessor() Processor         { return nil }
func (Base) LiteralProcessor() LiteralProcessor { return nil }

func identity(value interface{}) (interface{}, error) { return value, nil }

// orIdentity returns p, or the identity conversion when p is nil.
func orIdentity(p Processor) Processor {
	if p == nil {
		return identity
	}
	return p
}
