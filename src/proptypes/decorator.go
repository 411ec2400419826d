package proptypes

import "github.com/seuros/cypherkit/src/errs"

// Hook transforms a value on the application-facing side of a Decorator.
type Hook func(value interface{}) (interface{}, error)

// Decorator layers custom hooks around an existing PropType. Bind and
// literal conversions run the hook first and the wrapped type second;
// result conversions run the wrapped type first and the hook second, so the
// outermost decorator always owns the application-facing side.
type Decorator struct {
	impl    PropType
	bind    Hook
	literal Hook
	result  Hook
}

// DecoratorOption configures a Decorator's hooks.
type DecoratorOption func(*Decorator)

// WithBindHook sets the hook applied before the wrapped bind conversion.
// A nil hook is identity, as are all the hook options below.
func WithBindHook(h Hook) DecoratorOption { return func(d *Decorator) { d.bind = hookOrIdentity(h) } }

// WithLiteralHook sets the hook applied before the wrapped literal conversion.
func WithLiteralHook(h Hook) DecoratorOption { return func(d *Decorator) { d.literal = hookOrIdentity(h) } }

// WithResultHook sets the hook applied after the wrapped result conversion.
func WithResultHook(h Hook) DecoratorOption { return func(d *Decorator) { d.result = hookOrIdentity(h) } }

func hookOrIdentity(h Hook) Hook {
	if h == nil {
		return identity
	}
	return h
}

// NewDecorator wraps impl, which is required.
func NewDecorator(impl PropType, opts ...DecoratorOption) (*Decorator, error) {
	if impl == nil {
		return nil, errs.Argument("decorator requires an impl prop type")
	}
	d := &Decorator{impl: impl, bind: identity, literal: identity, result: identity}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Impl returns the wrapped PropType.
func (d *Decorator) Impl() PropType { return d.impl }

func (d *Decorator) BindProcessor() Processor {
	impl := d.impl.BindProcessor()
	return func(value interface{}) (interface{}, error) {
		v, err := d.bind(value)
		if err != nil || impl == nil {
			return v, err
		}
		return impl(v)
	}
}

func (d *Decorator) ResultProcessor() Processor {
	impl := d.impl.ResultProcessor()
	return func(value interface{}) (interface{}, error) {
		if impl != nil {
			var err error
			if value, err = impl(value); err != nil {
				return nil, err
			}
		}
		return d.result(value)
	}
}

func (d *Decorator) LiteralProcessor() LiteralProcessor {
	impl := d.impl.LiteralProcessor()
	return func(value interface{}) (string, error) {
		v, err := d.literal(value)
		if err != nil {
			return "", err
		}
		if impl != nil {
			return impl(v)
		}
		s, ok := v.(string)
		if !ok {
			return "", errs.UnsupportedType("literal hook must produce text, got", v)
		}
		return s, nil
	}
}
