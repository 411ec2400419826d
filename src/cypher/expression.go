package cypher

import "github.com/seuros/cypherkit/src/proptypes"

// Variable references a typed entity in a statement. A Variable without a
// name is anonymous; the compiler assigns it a name per compilation and
// never writes it back.
type Variable struct {
	entity Entity
	name   string
}

// NewVariable creates an anonymous variable over entity.
func NewVariable(entity Entity) *Variable {
	return &Variable{entity: entity}
}

// NewNamedVariable creates a variable with a fixed name. An empty name
// yields an anonymous variable, exactly like NewVariable.
func NewNamedVariable(entity Entity, name string) *Variable {
	return &Variable{entity: entity, name: name}
}

// Entity returns the entity the variable stands for.
func (v *Variable) Entity() Entity { return v.entity }

// Name returns the caller-supplied name, or "" for anonymous variables.
func (v *Variable) Name() string { return v.name }

// Anonymous reports whether the variable has no caller-supplied name.
func (v *Variable) Anonymous() bool { return v.name == "" }

func (v *Variable) Kind() Kind { return KindVariable }

func (v *Variable) Accept(vis Visitor) (string, error) {
	if vv, ok := vis.(interface{ VisitVariable(*Variable) (string, error) }); ok {
		return vv.VisitVariable(v)
	}
	return "", unsupported(vis, v)
}

func (v *Variable) element()    {}
func (v *Variable) expression() {}

// BindParameter is a placeholder for a value supplied at execution time.
// Rendering it is reserved and reports errs.ErrNotImplemented.
type BindParameter struct {
	key    string
	value  interface{}
	typ    proptypes.PropType
	unique bool
}

// BindOption configures a BindParameter.
type BindOption func(*BindParameter)

// BindValue sets the value carried by the parameter.
func BindValue(value interface{}) BindOption {
	return func(b *BindParameter) { b.value = value }
}

// BindType declares the PropType used to convert the value.
func BindType(pt proptypes.PropType) BindOption {
	return func(b *BindParameter) { b.typ = pt }
}

// Unique marks the parameter key as needing a unique name.
func Unique() BindOption {
	return func(b *BindParameter) { b.unique = true }
}

// NewBindParameter creates a parameter placeholder.
func NewBindParameter(key string, opts ...BindOption) *BindParameter {
	b := &BindParameter{key: key}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the parameter name.
func (b *BindParameter) Key() string { return b.key }

// Value returns the carried value, or nil.
func (b *BindParameter) Value() interface{} { return b.value }

// Type returns the declared PropType, or nil.
func (b *BindParameter) Type() proptypes.PropType { return b.typ }

// IsUnique reports whether the key must be made unique.
func (b *BindParameter) IsUnique() bool { return b.unique }

func (b *BindParameter) Kind() Kind { return KindBindParam }

func (b *BindParameter) element()    {}
func (b *BindParameter) expression() {}

func (b *BindParameter) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface {
		VisitBindParameter(*BindParameter) (string, error)
	}); ok {
		return vv.VisitBindParameter(b)
	}
	return "", unsupported(v, b)
}

// Property is one key: value entry of a Properties block.
type Property struct {
	Key   string
	Value Element
}

// Properties is a property map literal, optionally led by a variable.
type Properties struct {
	variable *Variable
	entries  []Property
}

// NewProperties creates a properties block from alternating string keys and
// values. Values are coerced with the default registry.
func NewProperties(variable *Variable, keysAndValues ...interface{}) (*Properties, error) {
	return defaultCoercer().Properties(variable, keysAndValues...)
}

// PropertiesFromMap creates a properties block with keys in sorted order.
func PropertiesFromMap(variable *Variable, props map[string]interface{}) (*Properties, error) {
	return defaultCoercer().PropertiesFromMap(variable, props)
}

// Variable returns the leading variable, or nil.
func (p *Properties) Variable() *Variable { return p.variable }

// Entries returns the key: value entries in order.
func (p *Properties) Entries() []Property { return append([]Property(nil), p.entries...) }

// Len returns the number of entries.
func (p *Properties) Len() int { return len(p.entries) }

func (p *Properties) Kind() Kind { return KindProperties }

func (p *Properties) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface {
		VisitProperties(*Properties) (string, error)
	}); ok {
		return vv.VisitProperties(p)
	}
	return "", unsupported(v, p)
}

func (p *Properties) element() {}

// StringLiteral is a quoted string value.
type StringLiteral struct {
	s string
}

// NewString creates a string literal.
func NewString(s string) *StringLiteral { return &StringLiteral{s: s} }

// Value returns the unquoted text.
func (s *StringLiteral) Value() string { return s.s }

func (s *StringLiteral) Kind() Kind { return KindString }

func (s *StringLiteral) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface {
		VisitString(*StringLiteral) (string, error)
	}); ok {
		return vv.VisitString(s)
	}
	return "", unsupported(v, s)
}

func (s *StringLiteral) element()    {}
func (s *StringLiteral) expression() {}

// Raw is query text emitted verbatim. The caller is responsible for its
// safety.
type Raw struct {
	text string
}

// NewRaw creates a raw fragment.
func NewRaw(text string) *Raw { return &Raw{text: text} }

// Text returns the verbatim text.
func (r *Raw) Text() string { return r.text }

func (r *Raw) Kind() Kind { return KindRaw }

func (r *Raw) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitRaw(*Raw) (string, error) }); ok {
		return vv.VisitRaw(r)
	}
	return "", unsupported(v, r)
}

func (r *Raw) element()    {}
func (r *Raw) expression() {}

// Collection is a list literal. Its items may be any element.
type Collection struct {
	elems []Element
}

// NewCollection creates a list literal, coercing each element with the
// default registry.
func NewCollection(elems ...interface{}) (*Collection, error) {
	return defaultCoercer().Collection(elems...)
}

// Elements returns the coerced elements in order.
func (c *Collection) Elements() []Element { return append([]Element(nil), c.elems...) }

func (c *Collection) Kind() Kind { return KindCollection }

func (c *Collection) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface {
		VisitCollection(*Collection) (string, error)
	}); ok {
		return vv.VisitCollection(c)
	}
	return "", unsupported(v, c)
}

func (c *Collection) element()    {}
func (c *Collection) expression() {}
