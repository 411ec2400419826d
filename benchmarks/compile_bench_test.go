package benchmarks

import (
	"testing"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/parser"
)

var (
	person = cypher.NewEntityType("Person", "Person")
	movie  = cypher.NewEntityType("Movie", "Movie")
)

func BenchmarkSimpleQueryCompile(b *testing.B) {
	q, err := cypher.EntityQuery(person)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cypher.Compile(q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRelationshipQueryCompile(b *testing.B) {
	a := cypher.NewVariable(person)
	m := cypher.NewVariable(movie)
	props, err := cypher.NewProperties(nil, "name", "Keanu", "born", 1964)
	if err != nil {
		b.Fatal(err)
	}
	rel, err := cypher.NewRelationship(
		cypher.NewNode(cypher.WithVariable(a), cypher.WithLabel("Person"), cypher.WithProperties(props)),
		cypher.Undirected(),
		cypher.NewRelPiece(cypher.WithLabel("ACTED_IN")),
		cypher.Right(),
		cypher.NewNode(cypher.WithVariable(m), cypher.WithLabel("Movie")),
	)
	if err != nil {
		b.Fatal(err)
	}
	match, err := cypher.NewMatch(rel)
	if err != nil {
		b.Fatal(err)
	}
	ret, err := cypher.NewReturn(a, m)
	if err != nil {
		b.Fatal(err)
	}
	q, err := cypher.NewQuery(match, ret)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cypher.Compile(q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLiteralCoercion(b *testing.B) {
	values := []interface{}{"text", 42, 3.5, true, nil, []interface{}{1, "two", []int{3}}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			if _, err := cypher.Literal(v); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkParseAndCompile(b *testing.B) {
	const input = `MATCH (p:Person {name: 'Keanu'})-[r:ACTED_IN]->(m:Movie) RETURN p, m`

	b.Run("cold", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			p, err := parser.New()
			if err != nil {
				b.Fatal(err)
			}
			q, err := p.Parse(input)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := cypher.Compile(q); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cached", func(b *testing.B) {
		p, err := parser.New()
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			q, err := p.Parse(input)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := cypher.Compile(q); err != nil {
				b.Fatal(err)
			}
		}
	})
}
