package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/proptypes"
)

type inspectVariable struct {
	Name   string `json:"name"`
	Entity string `json:"entity"`
	Label  string `json:"label,omitempty"`
}

type inspectReport struct {
	Source    string            `json:"source"`
	Text      string            `json:"text"`
	Variables []inspectVariable `json:"variables"`
}

func newInspectReport(source string, res *cypher.Result) inspectReport {
	report := inspectReport{
		Source:    source,
		Text:      res.Text,
		Variables: make([]inspectVariable, 0, len(res.Names)),
	}
	for _, name := range res.Names {
		iv := inspectVariable{Name: name}
		if entity, ok := res.Entity(name); ok {
			iv.Entity = entity.Key()
			if labeled, ok := entity.(cypher.LabeledEntity); ok {
				iv.Label = labeled.Label()
			}
		}
		report.Variables = append(report.Variables, iv)
	}
	return report
}

func writeInspectTable(w io.Writer, report inspectReport) error {
	if _, err := fmt.Fprintf(w, "Query structure for %s:\n%s\n\n", report.Source, report.Text); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join([]string{"NAME", "ENTITY", "LABEL"}, "\t"))
	for _, v := range report.Variables {
		_, _ = fmt.Fprintln(tw, strings.Join([]string{v.Name, v.Entity, v.Label}, "\t"))
	}
	return tw.Flush()
}

func writeInspectJSON(w io.Writer, report inspectReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTypes(w io.Writer, entries []proptypes.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GO TYPE\tPROP TYPE")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.Name, proptypes.TypeName(e.PropType))
	}
	return tw.Flush()
}

// decodeJSONValue decodes one JSON value. Integral numbers decode as int64
// and other numbers as float64.
func decodeJSONValue(text string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, usageErrorf(2, "invalid JSON: %v", err)
	}
	if dec.More() {
		return nil, usageErrorf(2, "invalid JSON: trailing data after value")
	}
	return normalizeJSON(v), nil
}

func normalizeJSON(v interface{}) interface{} {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []interface{}:
		for i := range x {
			x[i] = normalizeJSON(x[i])
		}
		return x
	case map[string]interface{}:
		for k, e := range x {
			x[k] = normalizeJSON(e)
		}
		return x
	default:
		return v
	}
}
