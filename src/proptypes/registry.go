package proptypes

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/seuros/cypherkit/src/errs"
)

// Registry maps Go runtime types to the PropType that converts them. The
// nil type key stands for untyped nil values.
//
// A Registry is safe for concurrent lookups. Registration into a frozen
// registry fails.
type Registry struct {
	mu     sync.RWMutex
	types  map[reflect.Type]PropType
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]PropType)}
}

// NewDefaultRegistry creates a registry seeded with the built-in numeric,
// textual, boolean and null mappings.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	integer := Integer{}
	for _, sample := range []interface{}{
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
	} {
		r.types[reflect.TypeOf(sample)] = integer
	}
	r.types[reflect.TypeOf(float32(0))] = Float{}
	r.types[reflect.TypeOf(float64(0))] = Float{}
	r.types[reflect.TypeOf(false)] = Boolean{}
	r.types[reflect.TypeOf("")] = String{}
	r.types[nil] = Null{}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. It is built once, on first
// use, and frozen; use Clone to derive an extensible copy.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
		defaultRegistry.Freeze()
	})
	return defaultRegistry
}

// Register maps t to pt, replacing any previous mapping. A nil t registers
// the type used for untyped nil values.
func (r *Registry) Register(t reflect.Type, pt PropType) error {
	if pt == nil {
		return errs.Argument("cannot register a nil prop type for %v", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return errs.Argument("registry is frozen, cannot register %v", t)
	}
	r.types[t] = pt
	return nil
}

// RegisterValue registers pt for the runtime type of sample.
func (r *Registry) RegisterValue(sample interface{}, pt PropType) error {
	return r.Register(reflect.TypeOf(sample), pt)
}

// Lookup returns the PropType registered for the runtime type of value.
func (r *Registry) Lookup(value interface{}) (PropType, error) {
	if pt, ok := r.LookupType(reflect.TypeOf(value)); ok {
		return pt, nil
	}
	return nil, errs.UnsupportedType("cannot process instances of", value)
}

// LookupType returns the PropType registered for t.
func (r *Registry) LookupType(t reflect.Type) (PropType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pt, ok := r.types[t]
	return pt, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Freeze rejects any further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether the registry rejects registration.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Clone returns an unfrozen copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for t, pt := range r.types {
		c.types[t] = pt
	}
	return c
}

// Entry is one registry mapping as reported by Types.
type Entry struct {
	// Name is the Go type name, or "nil" for untyped nil.
	Name     string
	Type     reflect.Type
	PropType PropType
}

// Types returns every mapping sorted by type name.
func (r *Registry) Types() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.types))
	for t, pt := range r.types {
		name := "nil"
		if t != nil {
			name = t.String()
		}
		out = append(out, Entry{Name: name, Type: t, PropType: pt})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TypeName names a PropType for display, e.g. "Integer" or "Array".
func TypeName(pt PropType) string {
	if pt == nil {
		return "<none>"
	}
	return reflect.Indirect(reflect.ValueOf(pt)).Type().Name()
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Name, TypeName(e.PropType))
}
