package cypher

import (
	"fmt"
	"reflect"

	"github.com/seuros/cypherkit/src/errs"
)

// Kind tags an Element for dispatch. Each kind maps to exactly one renderer
// operation.
type Kind string

const (
	KindNode         Kind = "node"
	KindRelPiece     Kind = "rel_piece"
	KindRelType      Kind = "rel_type"
	KindRelationship Kind = "relationship"
	KindMatch        Kind = "match"
	KindReturn       Kind = "return"
	KindQuery        Kind = "query"
	KindVariable     Kind = "variable"
	KindBindParam    Kind = "bindparam"
	KindProperties   Kind = "properties"
	KindString       Kind = "string"
	KindRaw          Kind = "raw"
	KindCollection   Kind = "collection"
)

// Kinds lists every element kind in declaration order.
var Kinds = []Kind{
	KindNode, KindRelPiece, KindRelType, KindRelationship,
	KindMatch, KindReturn, KindQuery,
	KindVariable, KindBindParam, KindProperties,
	KindString, KindRaw, KindCollection,
}

// Element is a compilable fragment of a query. The set of elements is closed;
// only this package defines them.
type Element interface {
	Kind() Kind
	// Accept hands the element to the visitor operation for its kind.
	Accept(v Visitor) (string, error)
	element()
}

// Visitor is implemented by renderers. A renderer provides any subset of the
// Visit methods; elements whose operation is missing fail with an
// UnsupportedCompilationError.
type Visitor interface{}

// Expression is an element that can be returned or used as a value.
type Expression interface {
	Element
	expression()
}

// Pattern is an element that can appear in a MATCH clause.
type Pattern interface {
	Element
	pattern()
}

// PathPiece is an element that can appear in a Relationship chain.
type PathPiece interface {
	Element
	pathPiece()
}

// Dispatch renders e with v.
func Dispatch(v Visitor, e Element) (string, error) {
	if isNil(e) {
		return "", errs.Unsupported("cannot render a nil element")
	}
	return e.Accept(v)
}

func unsupported(v Visitor, e Element) error {
	return errs.UnsupportedVisitor(v, e, string(e.Kind()))
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(e interface{}) bool {
	if e == nil {
		return true
	}
	rv := reflect.ValueOf(e)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func typeName(v interface{}) string { return fmt.Sprintf("%T", v) }
