package cypher

import "github.com/seuros/cypherkit/src/errs"

// RelType marks the direction of the connector between two path pieces.
type RelType struct {
	left  bool
	right bool
}

// NewRelType creates a connector. A connector cannot point both ways.
func NewRelType(left, right bool) (*RelType, error) {
	if left && right {
		return nil, errs.Unsupported("cannot have both a left and right reltype")
	}
	return &RelType{left: left, right: right}, nil
}

// Undirected returns a connector rendered as -.
func Undirected() *RelType { return &RelType{} }

// Left returns a connector rendered as <-.
func Left() *RelType { return &RelType{left: true} }

// Right returns a connector rendered as ->.
func Right() *RelType { return &RelType{right: true} }

// PointsLeft reports whether the connector is left-directed.
func (r *RelType) PointsLeft() bool { return r.left }

// PointsRight reports whether the connector is right-directed.
func (r *RelType) PointsRight() bool { return r.right }

// Directed reports whether the connector has a direction.
func (r *RelType) Directed() bool { return r.left || r.right }

// Equal reports whether both connectors have the same direction.
func (r *RelType) Equal(o *RelType) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.left == o.left && r.right == o.right
}

func (r *RelType) Kind() Kind { return KindRelType }

func (r *RelType) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitRelType(*RelType) (string, error) }); ok {
		return vv.VisitRelType(r)
	}
	return "", unsupported(v, r)
}

func (r *RelType) element()   {}
func (r *RelType) pathPiece() {}

// Relationship is a chain of nodes and relationship legs joined by
// connectors. Consecutive nodes are joined by an undirected connector when
// rendered.
type Relationship struct {
	pieces []PathPiece
}

// NewRelationship validates and builds a chain. The chain must start and end
// with a Node and hold at least two Nodes. Two adjacent connectors are only
// legal when at most one is directed and neither points into the other.
func NewRelationship(pieces ...Element) (*Relationship, error) {
	if len(pieces) < 2 {
		return nil, errs.Unsupported("relationships must have at least two nodes")
	}
	out := make([]PathPiece, 0, len(pieces))
	nodes := 0
	var last PathPiece
	for i, p := range pieces {
		piece, ok := p.(PathPiece)
		if !ok || isNil(p) {
			return nil, &errs.UnsupportedCompilationError{
				Msg:     "relationship pieces must be RelType, RelPiece, or Node",
				Subject: typeName(p),
			}
		}
		switch cur := piece.(type) {
		case *Node:
			nodes++
		case *RelType:
			if prev, ok := last.(*RelType); ok {
				if cur.Directed() && prev.Directed() {
					return nil, errs.Unsupported("cannot chain two directed reltypes together at piece %d", i)
				}
				if cur.left || prev.right {
					return nil, errs.Unsupported("cannot point a reltype to another reltype at piece %d", i)
				}
			}
		}
		out = append(out, piece)
		last = piece
	}
	if _, ok := out[0].(*Node); !ok {
		return nil, errs.Unsupported("relationships must start with a node")
	}
	if _, ok := last.(*Node); !ok {
		return nil, errs.Unsupported("relationships must end with a node")
	}
	if nodes < 2 {
		return nil, errs.Unsupported("relationships must have at least two nodes")
	}
	return &Relationship{pieces: out}, nil
}

// Pieces returns the chain in order.
func (r *Relationship) Pieces() []PathPiece {
	return append([]PathPiece(nil), r.pieces...)
}

func (r *Relationship) Kind() Kind { return KindRelationship }

func (r *Relationship) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface {
		VisitRelationship(*Relationship) (string, error)
	}); ok {
		return vv.VisitRelationship(r)
	}
	return "", unsupported(v, r)
}

func (r *Relationship) element() {}
func (r *Relationship) pattern() {}
