package parser

import "github.com/alecthomas/participle/v2/lexer"

// Statement is MATCH path, ... RETURN item, ...
type Statement struct {
	Pos lexer.Position

	Match  []*Path `"MATCH" @@ ("," @@)*`
	Return []*Item `"RETURN" @@ ("," @@)*`
}

// Path is a node pattern or a chain of node, relationship and arrow
// elements.
type Path struct {
	Pos lexer.Position

	Elements []*PathElement `@@+`
}

type PathElement struct {
	Node  *NodePattern `  @@`
	Rel   *RelPattern  `| @@`
	Arrow *string      `| @Arrow`
}

type NodePattern struct {
	Variable string      `"(" @Ident?`
	Label    string      `(":" @Ident)?`
	Props    *MapLiteral `@@? ")"`
}

type RelPattern struct {
	Variable string      `"[" @Ident?`
	Label    string      `(":" @Ident)?`
	Props    *MapLiteral `@@? "]"`
}

type MapLiteral struct {
	Entries []*MapEntry `"{" (@@ ("," @@)*)? "}"`
}

type MapEntry struct {
	Key   string `@Ident ":"`
	Value *Value `@@`
}

type Value struct {
	String *string      `  @String`
	Float  *float64     `| @Float`
	Int    *int64       `| @Int`
	True   bool         `| @"true"`
	False  bool         `| @"false"`
	Null   bool         `| @"null"`
	List   *ListLiteral `| @@`
}

type ListLiteral struct {
	Elements []*Value `"[" (@@ ("," @@)*)? "]"`
}

// Item is one RETURN expression: a literal or a declared variable.
type Item struct {
	Pos lexer.Position

	Value    *Value  `  @@`
	Variable *string `| @Ident`
}
