// Package parser reads the MATCH ... RETURN subset of Cypher into the cypher
// AST.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/logging"
	"github.com/seuros/cypherkit/src/proptypes"
)

var cypherLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Float", Pattern: `-?\d+\.\d+([eE][-+]?\d+)?|-?\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Arrow", Pattern: `<-|->|-`},
	{Name: "Punct", Pattern: `[(),:\[\]{}]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// unquoteString strips either quote style. Both \' and \" are accepted in
// either style so compiled text reads back unchanged.
func unquoteString(tok lexer.Token) (lexer.Token, error) {
	quote := tok.Value[0]
	body := tok.Value[1 : len(tok.Value)-1]
	var b strings.Builder
	for body != "" {
		if strings.HasPrefix(body, `\'`) || strings.HasPrefix(body, `\"`) {
			b.WriteByte(body[1])
			body = body[2:]
			continue
		}
		r, _, tail, err := strconv.UnquoteChar(body, quote)
		if err != nil {
			return tok, participle.Errorf(tok.Pos, "invalid string literal %s: %v", tok.Value, err)
		}
		b.WriteRune(r)
		body = tail
	}
	tok.Value = b.String()
	return tok, nil
}

// PositionError is a semantic error at a source position. It satisfies
// participle.Error like the grammar and lexer errors do.
type PositionError struct {
	Pos lexer.Position
	Err error
}

func (e *PositionError) Error() string            { return fmt.Sprintf("%s: %v", e.Pos, e.Err) }
func (e *PositionError) Unwrap() error            { return e.Err }
func (e *PositionError) Message() string          { return e.Err.Error() }
func (e *PositionError) Position() lexer.Position { return e.Pos }

// ErrMultipleStatements is returned for input holding a statement separator.
var ErrMultipleStatements = errors.New("multiple statements not allowed")

type Parser struct {
	parser  *participle.Parser[Statement]
	cache   *Cache[*cypher.Query]
	coercer *cypher.Coercer
	logger  logging.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithCacheSize bounds the parse cache.
func WithCacheSize(n int) Option {
	return func(p *Parser) { p.cache = NewCache[*cypher.Query](n) }
}

// WithLogger routes parser logs to logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRegistry coerces literal values through reg.
func WithRegistry(reg *proptypes.Registry) Option {
	return func(p *Parser) { p.coercer = cypher.NewCoercer(reg) }
}

func New(opts ...Option) (*Parser, error) {
	parser, err := participle.Build[Statement](
		participle.Lexer(cypherLexer),
		participle.Map(unquoteString, "String"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	p := &Parser{
		parser:  parser,
		cache:   NewCache[*cypher.Query](DefaultCacheSize),
		coercer: cypher.NewCoercer(nil),
		logger:  &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.ForCategory(p.logger, logging.CategoryParser)
	return p, nil
}

// Parse reads one statement. Parsed statements are cached by input text;
// the returned tree carries no compile state and may be shared.
func (p *Parser) Parse(input string) (*cypher.Query, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return p.cache.Fetch(input, func() (*cypher.Query, error) {
		q, err := p.parse(input)
		if err != nil {
			p.logger.Debug("parse failed", "error", err)
			return nil, err
		}
		p.logger.Debug("parsed statement", "length", len(input))
		return q, nil
	})
}

// CacheStats returns parse cache hits and misses.
func (p *Parser) CacheStats() (hits, misses uint64) {
	return p.cache.Stats()
}

func (p *Parser) parse(input string) (*cypher.Query, error) {
	stmt, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	q, err := newBuilder(p.coercer).statement(stmt)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return q, nil
}

func validateInput(input string) error {
	if strings.Contains(input, ";") {
		return ErrMultipleStatements
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("parse error: empty statement")
	}
	return nil
}

// builder converts the grammar tree into cypher elements. Variables are
// shared by name across the whole statement.
type builder struct {
	coercer *cypher.Coercer
	vars    map[string]*cypher.Variable
}

func newBuilder(coercer *cypher.Coercer) *builder {
	return &builder{coercer: coercer, vars: make(map[string]*cypher.Variable)}
}

func (b *builder) statement(stmt *Statement) (*cypher.Query, error) {
	patterns := make([]cypher.Pattern, 0, len(stmt.Match))
	for _, path := range stmt.Match {
		pattern, err := b.path(path)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}

	exprs := make([]cypher.Expression, 0, len(stmt.Return))
	for _, item := range stmt.Return {
		expr, err := b.item(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	match, err := cypher.NewMatch(patterns...)
	if err != nil {
		return nil, err
	}
	ret, err := cypher.NewReturn(exprs...)
	if err != nil {
		return nil, err
	}
	return cypher.NewQuery(match, ret)
}

func (b *builder) path(path *Path) (cypher.Pattern, error) {
	pieces := make([]cypher.Element, 0, len(path.Elements))
	for _, el := range path.Elements {
		switch {
		case el.Node != nil:
			opts, err := b.pieceOptions(el.Node.Variable, el.Node.Label, el.Node.Props)
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, cypher.NewNode(opts...))
		case el.Rel != nil:
			opts, err := b.pieceOptions(el.Rel.Variable, el.Rel.Label, el.Rel.Props)
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, cypher.NewRelPiece(opts...))
		case el.Arrow != nil:
			pieces = append(pieces, arrow(*el.Arrow))
		}
	}

	if len(pieces) == 1 {
		if node, ok := pieces[0].(*cypher.Node); ok {
			return node, nil
		}
	}
	rel, err := cypher.NewRelationship(pieces...)
	if err != nil {
		return nil, &PositionError{Pos: path.Pos, Err: err}
	}
	return rel, nil
}

func arrow(token string) *cypher.RelType {
	switch token {
	case "<-":
		return cypher.Left()
	case "->":
		return cypher.Right()
	default:
		return cypher.Undirected()
	}
}

func (b *builder) pieceOptions(name, label string, props *MapLiteral) ([]cypher.PieceOption, error) {
	var opts []cypher.PieceOption
	if name != "" {
		opts = append(opts, cypher.WithVariable(b.variable(name, label)))
	}
	if label != "" {
		opts = append(opts, cypher.WithLabel(label))
	}
	if props != nil {
		kv := make([]interface{}, 0, 2*len(props.Entries))
		for _, e := range props.Entries {
			kv = append(kv, e.Key, e.Value.native())
		}
		p, err := b.coercer.Properties(nil, kv...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cypher.WithProperties(p))
	}
	return opts, nil
}

// variable returns the statement-wide variable for name, declaring it on
// first use. Its entity is keyed by the first label seen, or the name.
func (b *builder) variable(name, label string) *cypher.Variable {
	if v, ok := b.vars[name]; ok {
		return v
	}
	key := label
	if key == "" {
		key = name
	}
	v := cypher.NewNamedVariable(cypher.NewEntityType(key, label), name)
	b.vars[name] = v
	return v
}

func (b *builder) item(item *Item) (cypher.Expression, error) {
	if item.Variable != nil {
		v, ok := b.vars[*item.Variable]
		if !ok {
			return nil, &PositionError{Pos: item.Pos, Err: fmt.Errorf("variable %q is not declared in MATCH", *item.Variable)}
		}
		return v, nil
	}
	return b.coercer.Expression(item.Value.native())
}

func (v *Value) native() interface{} {
	switch {
	case v.String != nil:
		return *v.String
	case v.Float != nil:
		return *v.Float
	case v.Int != nil:
		return *v.Int
	case v.True:
		return true
	case v.False:
		return false
	case v.List != nil:
		out := make([]interface{}, len(v.List.Elements))
		for i, e := range v.List.Elements {
			out[i] = e.native()
		}
		return out
	default:
		return nil
	}
}
