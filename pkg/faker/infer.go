package faker

import (
	"regexp"
	"strings"

	"github.com/mockario/mockario/pkg/value"
)

// DefaultKeyType is the type given to a key specifier without one.
const DefaultKeyType = "string"

var keySpecPattern = regexp.MustCompile(`^(\w+):(\w+)$`)

// fieldMethods maps lowercased field names to generators.
var fieldMethods = map[string]string{
	"name":         MethodName,
	"firstname":    MethodFirstName,
	"lastname":     MethodLastName,
	"fullname":     MethodName,
	"email":        MethodEmail,
	"phone":        MethodPhone,
	"telephone":    MethodPhone,
	"mobile":       MethodPhone,
	"id":           MethodUUID,
	"uuid":         MethodUUID,
	"uuidv4":       MethodUUID,
	"address":      MethodStreet,
	"street":       MethodStreet,
	"city":         MethodCity,
	"country":      MethodCountry,
	"url":          MethodURL,
	"website":      MethodURL,
	"avatar":       MethodAvatar,
	"image":        MethodAvatar,
	"photo":        MethodAvatar,
	"company":      MethodCompany,
	"organization": MethodCompany,
	"description":  MethodSentence,
	"bio":          MethodParagraph,
	"text":         MethodParagraph,
	"content":      MethodParagraph,
	"age":          MethodNumber,
	"count":        MethodNumber,
	"quantity":     MethodNumber,
	"price":        MethodNumber,
	"amount":       MethodNumber,
	"total":        MethodNumber,
	"isactive":     MethodBoolean,
	"active":       MethodBoolean,
	"enabled":      MethodBoolean,
	"verified":     MethodBoolean,
	"createdat":    MethodDate,
	"updatedat":    MethodDate,
	"deletedat":    MethodDate,
	"timestamp":    MethodDate,
}

// KeySpec is a parsed key specifier.
type KeySpec struct {
	Name string
	Type string
}

// ParseKey splits "name:type" into its parts. Anything else is taken as a
// bare field name with DefaultKeyType.
func ParseKey(spec string) KeySpec {
	if m := keySpecPattern.FindStringSubmatch(spec); m != nil {
		return KeySpec{Name: m[1], Type: m[2]}
	}
	return KeySpec{Name: spec, Type: DefaultKeyType}
}

// MethodFor picks the generator for a field. An explicit type that names a
// generator wins; otherwise the lowercased field name is looked up in the
// inference table, falling back to "word".
func MethodFor(field, explicitType string) string {
	if explicitType != "" && IsMethod(explicitType) {
		return explicitType
	}
	if m, ok := fieldMethods[strings.ToLower(field)]; ok {
		return m
	}
	return MethodWord
}

// Record builds one object from key specifiers. Fields appear in the order
// given; a repeated name keeps its first position.
func (f *Faker) Record(keys []string) value.Value {
	fields := make([]value.Field, 0, len(keys))
	for _, key := range keys {
		spec := ParseKey(key)
		fields = append(fields, value.F(spec.Name, f.MustGenerate(MethodFor(spec.Name, spec.Type))))
	}
	return value.Object(fields...)
}

// Records builds count independent records. A count below one yields none.
func (f *Faker) Records(keys []string, count int) []value.Value {
	if count < 1 {
		return []value.Value{}
	}
	out := make([]value.Value, count)
	for i := range out {
		out[i] = f.Record(keys)
	}
	return out
}
