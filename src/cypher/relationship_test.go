package cypher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/cypherkit/src/errs"
)

func TestNewRelType(t *testing.T) {
	_, err := NewRelType(true, true)
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	r, err := NewRelType(true, false)
	require.NoError(t, err)
	assert.True(t, r.Equal(Left()))
	assert.True(t, r.Directed())
	assert.True(t, r.PointsLeft())
	assert.False(t, Undirected().Directed())
	assert.False(t, Right().Equal(Left()))
	assert.True(t, Right().PointsRight())
}

func TestRelTypePairs(t *testing.T) {
	directions := map[string]func() *RelType{
		"undirected": Undirected,
		"left":       Left,
		"right":      Right,
	}
	legal := map[[2]string]bool{
		{"undirected", "undirected"}: true,
		{"undirected", "right"}:      true,
		{"left", "undirected"}:       true,
	}

	for prevName, prev := range directions {
		for curName, cur := range directions {
			pair := [2]string{prevName, curName}
			t.Run(fmt.Sprintf("%s then %s", prevName, curName), func(t *testing.T) {
				_, err := NewRelationship(NewNode(), prev(), cur(), NewNode())
				if legal[pair] {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, errs.ErrUnsupported)
				}
			})
		}
	}
}

func TestRelationshipValidation(t *testing.T) {
	tests := []struct {
		name   string
		pieces []Element
		valid  bool
	}{
		{"two nodes", []Element{NewNode(), NewNode()}, true},
		{"single node", []Element{NewNode()}, false},
		{"empty", nil, false},
		{"ends with reltype", []Element{NewNode(), NewNode(), Right()}, false},
		{"ends with rel piece", []Element{NewNode(), NewNode(), NewRelPiece()}, false},
		{"starts with reltype", []Element{Left(), NewNode(), NewNode()}, false},
		{"starts with rel piece", []Element{NewRelPiece(), NewNode(), NewNode()}, false},
		{"one node and a leg", []Element{NewNode(), NewRelPiece(), Right(), NewNode()}, true},
		{"only one node with connectors", []Element{NewNode(), Right(), NewRelPiece()}, false},
		{"string piece", []Element{NewNode(), NewString("x"), NewNode()}, false},
		{"nested relationship", []Element{NewNode(), mustRel(t, NewNode(), NewNode()), NewNode()}, false},
		{"nil piece", []Element{NewNode(), nil, NewNode()}, false},
		{"typed nil node", []Element{NewNode(), (*Node)(nil), NewNode()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := NewRelationship(tt.pieces...)
			if tt.valid {
				require.NoError(t, err)
				assert.Len(t, rel.Pieces(), len(tt.pieces))
				return
			}
			assert.ErrorIs(t, err, errs.ErrUnsupported)
		})
	}
}

func TestRelationshipRejectsForeignPieceWithSubject(t *testing.T) {
	_, err := NewRelationship(NewNode(), NewRaw("x"), NewNode())
	var uce *errs.UnsupportedCompilationError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, "*cypher.Raw", uce.Subject)
}

func TestClauseValidation(t *testing.T) {
	_, err := NewMatch()
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	_, err = NewReturn()
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	_, err = NewMatch(NewNode(), (*Node)(nil))
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	m, err := NewMatch(NewNode())
	require.NoError(t, err)
	r, err := NewReturn(NewRaw("1"))
	require.NoError(t, err)

	_, err = NewQuery(nil, r)
	assert.ErrorIs(t, err, errs.ErrUnsupported)
	_, err = NewQuery(m, nil)
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	q, err := NewQuery(m, r)
	require.NoError(t, err)
	assert.Same(t, m, q.Match())
	assert.Same(t, r, q.Return())
}
