package schema

import (
	"github.com/mockario/mockario/pkg/faker"
	"github.com/mockario/mockario/pkg/template"
	"github.com/mockario/mockario/pkg/value"
)

// MaxRecords caps a single generation request.
const MaxRecords = 1000

// typeMethods maps field types to generators. FieldString is absent: string
// fields fall back to name inference.
var typeMethods = map[string]string{
	FieldNumber:  faker.MethodNumber,
	FieldBoolean: faker.MethodBoolean,
	FieldDate:    faker.MethodDate,
	FieldEmail:   faker.MethodEmail,
	FieldUUID:    faker.MethodUUID,
	FieldPhone:   faker.MethodPhone,
	FieldAddress: faker.MethodStreet,
	FieldURL:     faker.MethodURL,
	FieldCustom:  faker.MethodWord,
}

// Generator builds records for tables.
type Generator struct {
	engine *template.Engine
}

// NewGenerator returns a Generator that substitutes field templates with
// engine. A nil engine gets a fresh one.
func NewGenerator(engine *template.Engine) *Generator {
	if engine == nil {
		engine = template.New(nil)
	}
	return &Generator{engine: engine}
}

// Record generates one object with a value per field, in field order.
func (g *Generator) Record(t Table) value.Value {
	fields := make([]value.Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, value.F(f.Name, g.fieldValue(f)))
	}
	return value.Object(fields...)
}

// Records generates count records, clamped to [0, MaxRecords].
func (g *Generator) Records(t Table, count int) []value.Value {
	count = min(max(count, 0), MaxRecords)
	out := make([]value.Value, count)
	for i := range out {
		out[i] = g.Record(t)
	}
	return out
}

// fieldValue resolves a field in priority order: template, options, type.
func (g *Generator) fieldValue(f Field) value.Value {
	if f.FakerTemplate != "" {
		return value.String(g.engine.Substitute(f.FakerTemplate))
	}
	fk := g.engine.Faker()
	if len(f.Options) > 0 {
		opts := make([]value.Value, len(f.Options))
		for i, o := range f.Options {
			opts[i] = value.String(o)
		}
		return fk.Pick(opts)
	}
	method, ok := typeMethods[f.Type]
	if !ok {
		method = faker.MethodFor(f.Name, "")
	}
	return fk.MustGenerate(method)
}
