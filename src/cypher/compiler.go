package cypher

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seuros/cypherkit/src/errs"
	"github.com/seuros/cypherkit/src/logging"
	"github.com/seuros/cypherkit/src/proptypes"
)

// AnonPrefix starts every generated variable name.
const AnonPrefix = "anon_"

// resetter is implemented by renderers holding per-walk state.
type resetter interface {
	reset()
}

// statsReporter is implemented by renderers that track variables.
type statsReporter interface {
	compileStats() compileStats
}

// Compiler drives one renderer over one statement. The first successful
// walk is cached for the life of the Compiler; failed walks are not.
//
// A Compiler is not safe for concurrent use.
type Compiler struct {
	stmt     Element
	visitor  Visitor
	config   *Config
	logger   logging.Logger
	obs      *observabilityInstruments
	text     string
	compiled bool
}

// NewCompiler creates a compiler rendering stmt with visitor.
func NewCompiler(stmt Element, visitor Visitor, opts ...Option) (*Compiler, error) {
	if isNil(stmt) {
		return nil, errs.Argument("no statement provided to compile")
	}
	if visitor == nil {
		return nil, errs.Argument("no renderer provided to compile")
	}
	config := buildConfig(opts)
	return &Compiler{
		stmt:    stmt,
		visitor: visitor,
		config:  config,
		logger:  logging.ForCategory(config.Logging.Logger, logging.CategoryCompiler),
		obs:     initObservability(),
	}, nil
}

// Statement returns the root element.
func (c *Compiler) Statement() Element { return c.stmt }

// Compiled reports whether the text is cached.
func (c *Compiler) Compiled() bool { return c.compiled }

// Compile renders the statement, or returns the cached text.
func (c *Compiler) Compile() (string, error) {
	return c.CompileContext(context.Background())
}

// CompileContext renders the statement under ctx, or returns the cached
// text. ctx carries the parent span and is checked before the walk.
func (c *Compiler) CompileContext(ctx context.Context) (string, error) {
	if c.compiled {
		return c.text, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	compileID := uuid.NewString()
	kind := c.stmt.Kind()
	logger := c.logger

	if r, ok := c.visitor.(resetter); ok {
		r.reset()
	}
	ctx, spanCtx := c.obs.startCompileSpan(ctx, kind, compileID, c.config.Observability)
	text, err := Dispatch(c.visitor, c.stmt)

	var stats compileStats
	if r, ok := c.visitor.(statsReporter); ok {
		stats = r.compileStats()
	}
	duration := c.obs.finishCompileSpan(ctx, spanCtx, kind, stats, err, c.config.Observability)

	if err != nil {
		logger.Debug("compilation failed", "compile_id", compileID, "kind", kind, "error", err)
		return "", err
	}
	c.text, c.compiled = text, true

	if logger.IsDebugEnabled() {
		logger.Debug("compiled statement",
			"compile_id", compileID,
			"kind", kind,
			"variables", stats.variables,
			"duration", duration,
			"text", text,
		)
	}
	return text, nil
}

// CypherCompiler renders elements as Cypher text and records every variable
// name it emits. Anonymous variables are named anon_1, anon_2, ... in order
// of first appearance, one name per entity key. Names live in the compiler,
// never on the Variable, so a tree can be compiled any number of times.
type CypherCompiler struct {
	*Compiler

	anonVars    map[string]string
	anonCounter int
	varNames    map[string]*Variable
	names       []string
}

// NewCypherCompiler creates a Cypher renderer over stmt.
func NewCypherCompiler(stmt Element, opts ...Option) (*CypherCompiler, error) {
	c := &CypherCompiler{}
	c.reset()
	base, err := NewCompiler(stmt, c, opts...)
	if err != nil {
		return nil, err
	}
	c.Compiler = base
	return c, nil
}

func (c *CypherCompiler) reset() {
	c.anonVars = make(map[string]string)
	c.anonCounter = 1
	c.varNames = make(map[string]*Variable)
	c.names = nil
}

func (c *CypherCompiler) compileStats() compileStats {
	return compileStats{variables: len(c.varNames), anonymous: len(c.anonVars)}
}

// VarNames maps every emitted variable name to the Variable that first
// introduced it.
func (c *CypherCompiler) VarNames() map[string]*Variable {
	out := make(map[string]*Variable, len(c.varNames))
	for k, v := range c.varNames {
		out[k] = v
	}
	return out
}

// Names returns the emitted variable names in order of first appearance.
func (c *CypherCompiler) Names() []string {
	return append([]string(nil), c.names...)
}

// Result compiles the statement and returns its text with the variable
// table.
func (c *CypherCompiler) Result() (*Result, error) {
	return c.ResultContext(context.Background())
}

// ResultContext is Result under ctx.
func (c *CypherCompiler) ResultContext(ctx context.Context) (*Result, error) {
	text, err := c.CompileContext(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, VarNames: c.VarNames(), Names: c.Names()}, nil
}

func (c *CypherCompiler) matchPiece(p *matchPiece) (string, error) {
	var b strings.Builder
	if p.variable != nil {
		name, err := Dispatch(c, p.variable)
		if err != nil {
			return "", err
		}
		b.WriteString(name)
	}
	if p.label != "" {
		b.WriteString(":")
		b.WriteString(p.label)
	}
	if p.properties != nil {
		if p.variable != nil || p.label != "" {
			b.WriteString(" ")
		}
		props, err := Dispatch(c, p.properties)
		if err != nil {
			return "", err
		}
		b.WriteString(props)
	}
	return b.String(), nil
}

func (c *CypherCompiler) VisitNode(n *Node) (string, error) {
	body, err := c.matchPiece(&n.matchPiece)
	if err != nil {
		return "", err
	}
	return "(" + body + ")", nil
}

func (c *CypherCompiler) VisitRelPiece(r *RelPiece) (string, error) {
	body, err := c.matchPiece(&r.matchPiece)
	if err != nil {
		return "", err
	}
	return "[" + body + "]", nil
}

func (c *CypherCompiler) VisitMatch(m *Match) (string, error) {
	pieces, err := renderJoined(c, m.pieces, ", ")
	if err != nil {
		return "", err
	}
	return "MATCH " + pieces, nil
}

func (c *CypherCompiler) VisitReturn(r *Return) (string, error) {
	exprs, err := renderJoined(c, r.exprs, ", ")
	if err != nil {
		return "", err
	}
	return "RETURN " + exprs, nil
}

func (c *CypherCompiler) VisitQuery(q *Query) (string, error) {
	match, err := Dispatch(c, q.match)
	if err != nil {
		return "", err
	}
	ret, err := Dispatch(c, q.ret)
	if err != nil {
		return "", err
	}
	return match + "\n" + ret, nil
}

func (c *CypherCompiler) VisitVariable(v *Variable) (string, error) {
	name := v.name
	if name == "" {
		if isNil(v.entity) {
			return "", errs.Argument("anonymous variable has no entity type")
		}
		key := v.entity.Key()
		var ok bool
		if name, ok = c.anonVars[key]; !ok {
			name = AnonPrefix + strconv.Itoa(c.anonCounter)
			c.anonCounter++
			c.anonVars[key] = name
		}
	}
	if _, seen := c.varNames[name]; !seen {
		c.varNames[name] = v
		c.names = append(c.names, name)
	}
	return name, nil
}

func (c *CypherCompiler) VisitBindParameter(b *BindParameter) (string, error) {
	return "", errs.NotImplemented("bind parameter " + strconv.Quote(b.key))
}

func (c *CypherCompiler) VisitProperties(p *Properties) (string, error) {
	parts := make([]string, 0, len(p.entries)+1)
	if p.variable != nil {
		name, err := Dispatch(c, p.variable)
		if err != nil {
			return "", err
		}
		parts = append(parts, name)
	}
	for _, e := range p.entries {
		value, err := Dispatch(c, e.Value)
		if err != nil {
			return "", err
		}
		parts = append(parts, e.Key+": "+value)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (c *CypherCompiler) VisitRelationship(r *Relationship) (string, error) {
	var b strings.Builder
	var last PathPiece
	for _, piece := range r.pieces {
		_, curNode := piece.(*Node)
		_, lastNode := last.(*Node)
		if curNode && lastNode {
			dash, err := Dispatch(c, Undirected())
			if err != nil {
				return "", err
			}
			b.WriteString(dash)
		}
		text, err := Dispatch(c, piece)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		last = piece
	}
	return b.String(), nil
}

func (c *CypherCompiler) VisitRelType(r *RelType) (string, error) {
	switch {
	case r.left:
		return "<-", nil
	case r.right:
		return "->", nil
	default:
		return "-", nil
	}
}

func (c *CypherCompiler) VisitString(s *StringLiteral) (string, error) {
	return proptypes.QuoteString(s.s), nil
}

func (c *CypherCompiler) VisitRaw(r *Raw) (string, error) {
	return r.text, nil
}

func (c *CypherCompiler) VisitCollection(col *Collection) (string, error) {
	elems, err := renderJoined(c, col.elems, ", ")
	if err != nil {
		return "", err
	}
	return "[" + elems + "]", nil
}

func renderJoined[E Element](v Visitor, elems []E, sep string) (string, error) {
	parts := make([]string, len(elems))
	for i, e := range elems {
		text, err := Dispatch(v, e)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, sep), nil
}
