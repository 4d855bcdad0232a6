package schema

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("schema not found")
	ErrTableNotFound = errors.New("table not found")
)

// Field types.
const (
	FieldString  = "string"
	FieldNumber  = "number"
	FieldBoolean = "boolean"
	FieldDate    = "date"
	FieldEmail   = "email"
	FieldUUID    = "uuid"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldURL     = "url"
	FieldCustom  = "custom"
)

// Relation types.
const (
	OneToOne   = "one-to-one"
	OneToMany  = "one-to-many"
	ManyToMany = "many-to-many"
)

// Field is one column of a table.
type Field struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name" validate:"required"`
	Type          string   `json:"type" yaml:"type" validate:"required,oneof=string number boolean date email uuid phone address url custom"`
	Required      bool     `json:"required" yaml:"required"`
	FakerTemplate string   `json:"fakerTemplate,omitempty" yaml:"fakerTemplate,omitempty"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Position is where the editor draws a table.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Table is a named set of fields.
type Table struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Fields   []Field  `json:"fields" yaml:"fields" validate:"dive"`
	Position Position `json:"position" yaml:"position"`
}

// Relation links two tables.
type Relation struct {
	ID        string `json:"id" yaml:"id"`
	FromTable string `json:"fromTable" yaml:"fromTable" validate:"required"`
	ToTable   string `json:"toTable" yaml:"toTable" validate:"required"`
	Type      string `json:"type" yaml:"type" validate:"required,oneof=one-to-one one-to-many many-to-many"`
	FromField string `json:"fromField,omitempty" yaml:"fromField,omitempty"`
	ToField   string `json:"toField,omitempty" yaml:"toField,omitempty"`
}

// Schema is a named data model.
type Schema struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Tables    []Table    `json:"tables" yaml:"tables"`
	Relations []Relation `json:"relations" yaml:"relations"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// Table returns the table with the given id.
func (s Schema) Table(tableID string) (Table, bool) {
	for _, t := range s.Tables {
		if t.ID == tableID {
			return t, true
		}
	}
	return Table{}, false
}

// Input carries the caller-supplied parts of a schema.
type Input struct {
	Name      string     `json:"name" yaml:"name" validate:"required"`
	Tables    []Table    `json:"tables" yaml:"tables" validate:"dive"`
	Relations []Relation `json:"relations" yaml:"relations" validate:"dive"`
}

func (s Schema) clone() Schema {
	out := s
	out.Tables = make([]Table, len(s.Tables))
	for i, t := range s.Tables {
		t.Fields = cloneFields(t.Fields)
		out.Tables[i] = t
	}
	out.Relations = append([]Relation(nil), s.Relations...)
	if out.Relations == nil {
		out.Relations = []Relation{}
	}
	return out
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Options = append([]string(nil), f.Options...)
		out[i] = f
	}
	return out
}
