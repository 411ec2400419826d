package proptypes

import (
	"strings"

	"github.com/seuros/cypherkit/src/errs"
)

// Null renders the null token and performs no other conversion.
type Null struct{ Base }

func (Null) LiteralProcessor() LiteralProcessor {
	return func(interface{}) (string, error) { return "NULL", nil }
}

// String coerces values to text and renders quoted string literals.
type String struct{}

func (String) BindProcessor() Processor   { return toString }
func (String) ResultProcessor() Processor { return toString }

func (String) LiteralProcessor() LiteralProcessor {
	return func(value interface{}) (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", errs.UnsupportedType("string literal cannot render", value)
		}
		return QuoteString(s), nil
	}
}

// Boolean renders the true/false tokens.
type Boolean struct{ Base }

func (Boolean) LiteralProcessor() LiteralProcessor {
	return func(value interface{}) (string, error) {
		b, ok := value.(bool)
		if !ok {
			return "", errs.UnsupportedType("boolean literal cannot render", value)
		}
		if b {
			return "true", nil
		}
		return "false", nil
	}
}

// Integer coerces values to int64.
type Integer struct{}

func (Integer) BindProcessor() Processor   { return toInt64 }
func (Integer) ResultProcessor() Processor { return toInt64 }

func (Integer) LiteralProcessor() LiteralProcessor {
	return func(value interface{}) (string, error) {
		n, err := toInt64(value)
		if err != nil || n == nil {
			return nullOr(err)
		}
		s, _ := FormatNumber(n)
		return s, nil
	}
}

// Float coerces values to float64.
type Float struct{}

func (Float) BindProcessor() Processor   { return toFloat64 }
func (Float) ResultProcessor() Processor { return toFloat64 }

func (Float) LiteralProcessor() LiteralProcessor {
	return func(value interface{}) (string, error) {
		f, err := toFloat64(value)
		if err != nil || f == nil {
			return nullOr(err)
		}
		s, _ := FormatNumber(f)
		return s, nil
	}
}

func nullOr(err error) (string, error) {
	if err != nil {
		return "", err
	}
	return "NULL", nil
}

var quoteEscaper = strings.NewReplacer(`'`, `\'`, `"`, `\"`)

// QuoteString backslash-escapes single and double quotes and wraps the
// result in double quotes. Other characters, backslashes included, are
// emitted unchanged.
func QuoteString(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}
