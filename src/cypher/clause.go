package cypher

import "github.com/seuros/cypherkit/src/errs"

// Match is a MATCH clause over one or more patterns.
type Match struct {
	pieces []Pattern
}

// NewMatch creates a MATCH clause. At least one pattern is required.
func NewMatch(pieces ...Pattern) (*Match, error) {
	if len(pieces) == 0 {
		return nil, errs.Unsupported("match requires at least one pattern")
	}
	for i, p := range pieces {
		if isNil(p) {
			return nil, errs.Unsupported("match pattern %d is nil", i)
		}
	}
	return &Match{pieces: append([]Pattern(nil), pieces...)}, nil
}

// Pieces returns the matched patterns in order.
func (m *Match) Pieces() []Pattern { return append([]Pattern(nil), m.pieces...) }

func (m *Match) Kind() Kind { return KindMatch }

func (m *Match) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitMatch(*Match) (string, error) }); ok {
		return vv.VisitMatch(m)
	}
	return "", unsupported(v, m)
}

func (m *Match) element() {}

// Return is a RETURN clause over one or more expressions.
type Return struct {
	exprs []Expression
}

// NewReturn creates a RETURN clause. At least one expression is required.
func NewReturn(exprs ...Expression) (*Return, error) {
	if len(exprs) == 0 {
		return nil, errs.Unsupported("return requires at least one expression")
	}
	for i, e := range exprs {
		if isNil(e) {
			return nil, errs.Unsupported("return expression %d is nil", i)
		}
	}
	return &Return{exprs: append([]Expression(nil), exprs...)}, nil
}

// Expressions returns the returned expressions in order.
func (r *Return) Expressions() []Expression { return append([]Expression(nil), r.exprs...) }

func (r *Return) Kind() Kind { return KindReturn }

func (r *Return) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitReturn(*Return) (string, error) }); ok {
		return vv.VisitReturn(r)
	}
	return "", unsupported(v, r)
}

func (r *Return) element() {}

// Query is a complete MATCH ... RETURN statement.
type Query struct {
	match *Match
	ret   *Return
}

// NewQuery creates a statement. Both clauses are required.
func NewQuery(match *Match, ret *Return) (*Query, error) {
	if match == nil || ret == nil {
		return nil, &errs.UnsupportedCompilationError{
			Msg:  "query requires both a match and a return clause",
			Kind: string(KindQuery),
		}
	}
	return &Query{match: match, ret: ret}, nil
}

// Match returns the MATCH clause.
func (q *Query) Match() *Match { return q.match }

// Return returns the RETURN clause.
func (q *Query) Return() *Return { return q.ret }

func (q *Query) Kind() Kind { return KindQuery }

func (q *Query) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitQuery(*Query) (string, error) }); ok {
		return vv.VisitQuery(q)
	}
	return "", unsupported(v, q)
}

func (q *Query) element() {}
