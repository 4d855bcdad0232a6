package template

import (
	"regexp"
	"strings"

	"github.com/mockario/mockario/pkg/faker"
	"github.com/mockario/mockario/pkg/value"
)

// placeholderRegex matches {{faker.method}} with no inner whitespace.
var placeholderRegex = regexp.MustCompile(`\{\{faker\.(\w+)\}\}`)

// Engine performs placeholder substitution. It is safe for concurrent use.
type Engine struct {
	faker *faker.Faker
}

// New creates an engine drawing values from f. A nil f uses an unseeded Faker.
func New(f *faker.Faker) *Engine {
	if f == nil {
		f = faker.New()
	}
	return &Engine{faker: f}
}

// Faker returns the generator backing the engine.
func (e *Engine) Faker() *faker.Faker { return e.faker }

// HasPlaceholders reports whether s contains anything shaped like a placeholder.
func HasPlaceholders(s string) bool {
	return strings.Contains(s, "{{faker.") && placeholderRegex.MatchString(s)
}

// Substitute replaces every recognized placeholder in s.
func (e *Engine) Substitute(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
		method := match[len("{{faker.") : len(match)-len("}}")]
		v, ok := e.faker.Generate(method)
		if !ok {
			return match
		}
		return Stringify(v)
	})
}

// Process returns v with Substitute applied to every string it contains,
// at any depth. Object keys are not substituted.
func (e *Engine) Process(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		if out := e.Substitute(s); out != s {
			return value.String(out)
		}
		return v
	case value.KindList:
		items := v.Items()
		out := make([]value.Value, len(items))
		for i, item := range items {
			out[i] = e.Process(item)
		}
		return value.List(out...)
	case value.KindObject:
		fields := v.Fields()
		out := make([]value.Field, len(fields))
		for i, f := range fields {
			out[i] = value.F(f.Key, e.Process(f.Value))
		}
		return value.Object(out...)
	case value.KindNull, value.KindBool, value.KindNumber:
		return v
	}
	return v
}

// Stringify renders a generated value the way it appears inside a string:
// strings as-is, numbers as their literal text, booleans as true/false.
func Stringify(v value.Value) string {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindNumber:
		n, _ := v.AsNumber()
		return n.String()
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case value.KindNull:
		return "null"
	}
	return v.String()
}
