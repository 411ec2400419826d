package proptypes

import (
	"reflect"
	"strings"
	"sync"

	"github.com/seuros/cypherkit/src/errs"
)

type direction int

const (
	dirBind direction = iota
	dirResult
)

type processorKey struct {
	dir direction
	typ reflect.Type
}

// Array converts list values. Without an element type, bind and result copy
// the list and literal rendering is unsupported. With one, each element is
// converted by the PropType registered for its runtime type; resolved
// functions are memoized per runtime type for the lifetime of the Array.
type Array struct {
	elem     PropType
	registry *Registry

	mu         sync.Mutex
	processors map[processorKey]Processor
	literals   map[reflect.Type]LiteralProcessor
}

// ArrayOption configures an Array.
type ArrayOption func(*Array)

// WithRegistry resolves element conversions through r instead of Default().
func WithRegistry(r *Registry) ArrayOption {
	return func(a *Array) { a.registry = r }
}

// NewArray creates an Array. elem may be nil for an untyped list.
func NewArray(elem PropType, opts ...ArrayOption) *Array {
	a := &Array{
		elem:       elem,
		processors: make(map[processorKey]Processor),
		literals:   make(map[reflect.Type]LiteralProcessor),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = Default()
	}
	return a
}

// Elem returns the declared element type, or nil.
func (a *Array) Elem() PropType { return a.elem }

func (a *Array) BindProcessor() Processor   { return a.listProcessor(dirBind) }
func (a *Array) ResultProcessor() Processor { return a.listProcessor(dirResult) }

func (a *Array) listProcessor(dir direction) Processor {
	return func(value interface{}) (interface{}, error) {
		if value == nil {
			return nil, nil
		}
		items, err := sliceValues(value)
		if err != nil {
			return nil, err
		}
		if a.elem == nil {
			return items, nil
		}
		for i, item := range items {
			p, err := a.elementProcessor(dir, item)
			if err != nil {
				return nil, err
			}
			if items[i], err = p(item); err != nil {
				return nil, err
			}
		}
		return items, nil
	}
}

func (a *Array) LiteralProcessor() LiteralProcessor {
	return func(value interface{}) (string, error) {
		if a.elem == nil {
			return "", errs.Unsupported("untyped array has no literal form")
		}
		if value == nil {
			return "NULL", nil
		}
		items, err := sliceValues(value)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(items))
		for i, item := range items {
			p, err := a.elementLiteral(item)
			if err != nil {
				return "", err
			}
			if parts[i], err = p(item); err != nil {
				return "", err
			}
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	}
}

func (a *Array) elementProcessor(dir direction, item interface{}) (Processor, error) {
	key := processorKey{dir: dir, typ: reflect.TypeOf(item)}

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.processors[key]; ok {
		return p, nil
	}
	pt, err := a.registry.Lookup(item)
	if err != nil {
		return nil, err
	}
	var p Processor
	if dir == dirBind {
		p = pt.BindProcessor()
	} else {
		p = pt.ResultProcessor()
	}
	p = orIdentity(p)
	a.processors[key] = p
	return p, nil
}

func (a *Array) elementLiteral(item interface{}) (LiteralProcessor, error) {
	typ := reflect.TypeOf(item)

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.literals[typ]; ok {
		return p, nil
	}
	pt, err := a.registry.Lookup(item)
	if err != nil {
		return nil, err
	}
	p := pt.LiteralProcessor()
	if p == nil {
		return nil, errs.UnsupportedType("no literal form for", item)
	}
	a.literals[typ] = p
	return p, nil
}

// cachedTypes reports how many runtime types have been resolved.
func (a *Array) cachedTypes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.processors) + len(a.literals)
}
