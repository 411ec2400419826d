package cypher

import "github.com/seuros/cypherkit/src/errs"

// Entity is the typed source a Variable stands for. Key identifies the
// entity type; anonymous variables over equal keys share one generated name
// within a compilation.
type Entity interface {
	Key() string
}

// LabeledEntity is an Entity that knows its node label.
type LabeledEntity interface {
	Entity
	Label() string
}

// EntityType is a plain LabeledEntity.
type EntityType struct {
	key   string
	label string
}

// NewEntityType creates an entity type. An empty label defaults to the key.
func NewEntityType(key, label string) *EntityType {
	if label == "" {
		label = key
	}
	return &EntityType{key: key, label: label}
}

func (e *EntityType) Key() string   { return e.key }
func (e *EntityType) Label() string { return e.label }
func (e *EntityType) String() string {
	return e.key
}

// EntityQuery builds the statement that fetches every node of each entity:
// one labelled node per entity bound to an anonymous variable, returning
// those variables in order.
func EntityQuery(entities ...LabeledEntity) (*Query, error) {
	if len(entities) == 0 {
		return nil, errs.Argument("entity query requires at least one entity")
	}
	pieces := make([]Pattern, len(entities))
	vars := make([]Expression, len(entities))
	for i, e := range entities {
		if isNil(e) {
			return nil, errs.Argument("entity %d is nil", i)
		}
		v := NewVariable(e)
		pieces[i] = NewNode(WithLabel(e.Label()), WithVariable(v))
		vars[i] = v
	}
	match, err := NewMatch(pieces...)
	if err != nil {
		return nil, err
	}
	ret, err := NewReturn(vars...)
	if err != nil {
		return nil, err
	}
	return NewQuery(match, ret)
}
