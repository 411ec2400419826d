package cypher

// Result is a compiled statement and its variable table.
type Result struct {
	// Text is the rendered statement.
	Text string
	// VarNames maps each emitted name to the Variable that introduced it.
	VarNames map[string]*Variable
	// Names lists emitted names in order of first appearance.
	Names []string
}

// Variable returns the Variable behind a result column.
func (r *Result) Variable(column string) (*Variable, bool) {
	v, ok := r.VarNames[column]
	return v, ok
}

// Entity returns the entity behind a result column, so rows can be
// converted back into typed values.
func (r *Result) Entity(column string) (Entity, bool) {
	v, ok := r.VarNames[column]
	if !ok || v.entity == nil {
		return nil, false
	}
	return v.entity, true
}

// Compile renders stmt as Cypher and returns the text with its variable
// table.
func Compile(stmt Element, opts ...Option) (*Result, error) {
	c, err := NewCypherCompiler(stmt, opts...)
	if err != nil {
		return nil, err
	}
	return c.Result()
}

// Render renders any single element as Cypher text.
func Render(e Element) (string, error) {
	c, err := NewCypherCompiler(e)
	if err != nil {
		return "", err
	}
	return c.Compile()
}
