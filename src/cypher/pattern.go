package cypher

// matchPiece is the shared shape of Node and RelPiece: an optional label,
// variable and properties block.
type matchPiece struct {
	label      string
	variable   *Variable
	properties *Properties
}

// PieceOption configures a Node or RelPiece.
type PieceOption func(*matchPiece)

// WithLabel sets the pattern label.
func WithLabel(label string) PieceOption {
	return func(p *matchPiece) { p.label = label }
}

// WithVariable binds the pattern to a variable.
func WithVariable(v *Variable) PieceOption {
	return func(p *matchPiece) { p.variable = v }
}

// WithProperties attaches a properties block to the pattern.
func WithProperties(props *Properties) PieceOption {
	return func(p *matchPiece) { p.properties = props }
}

func newMatchPiece(opts []PieceOption) matchPiece {
	var p matchPiece
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Label returns the pattern label, or "" when absent.
func (p *matchPiece) Label() string { return p.label }

// Variable returns the bound variable, or nil.
func (p *matchPiece) Variable() *Variable { return p.variable }

// Properties returns the properties block, or nil.
func (p *matchPiece) Properties() *Properties { return p.properties }

// Node is a graph node pattern, rendered as (var:Label {props}).
type Node struct {
	matchPiece
}

// NewNode creates a node pattern.
func NewNode(opts ...PieceOption) *Node {
	return &Node{matchPiece: newMatchPiece(opts)}
}

func (n *Node) Kind() Kind { return KindNode }

func (n *Node) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitNode(*Node) (string, error) }); ok {
		return vv.VisitNode(n)
	}
	return "", unsupported(v, n)
}

func (n *Node) element()   {}
func (n *Node) pattern()   {}
func (n *Node) pathPiece() {}

// RelPiece is a relationship leg pattern, rendered as [var:TYPE {props}].
type RelPiece struct {
	matchPiece
}

// NewRelPiece creates a relationship leg pattern.
func NewRelPiece(opts ...PieceOption) *RelPiece {
	return &RelPiece{matchPiece: newMatchPiece(opts)}
}

func (r *RelPiece) Kind() Kind { return KindRelPiece }

func (r *RelPiece) Accept(v Visitor) (string, error) {
	if vv, ok := v.(interface{ VisitRelPiece(*RelPiece) (string, error) }); ok {
		return vv.VisitRelPiece(r)
	}
	return "", unsupported(v, r)
}

func (r *RelPiece) element()   {}
func (r *RelPiece) pattern()   {}
func (r *RelPiece) pathPiece() {}
