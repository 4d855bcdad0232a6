package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

var kindNames = [...]string{"null", "boolean", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Field is one key/value pair of an object.
type Field struct {
	Key   string
	Value Value
}

// Value is a null, boolean, number, string, list or object.
// Numbers keep their literal JSON text.
type Value struct {
	kind   Kind
	b      bool
	s      string
	items  []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a number value from its JSON text.
func Number(n json.Number) Value { return Value{kind: KindNumber, s: n.String()} }

// Int returns an integer number value.
func Int(n int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)} }

// Float returns a number value. NaN and infinities become null since JSON
// cannot carry them.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'f', -1, 64)}
}

// List returns a list value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, items: append([]Value(nil), items...)}
}

// Object returns an object value. A repeated key keeps its first position
// and its last value.
func Object(fields ...Field) Value {
	out := Value{kind: KindObject, fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		out.fields = setField(out.fields, f.Key, f.Value)
	}
	return out
}

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

func setField(fields []Field, key string, v Value) []Field {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = v
			return fields
		}
	}
	return append(fields, Field{Key: key, Value: v})
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsNumber returns the number held by v as JSON text.
func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.s), v.kind == KindNumber }

// Items returns the elements of a list. The slice must not be modified.
func (v Value) Items() []Value { return v.items }

// Fields returns the fields of an object in order. The slice must not be modified.
func (v Value) Fields() []Field { return v.fields }

// Len returns the number of list items or object fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the object's keys in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// With returns a copy of the object with key set to val.
func (v Value) With(key string, val Value) Value {
	out := Value{kind: KindObject, fields: append(make([]Field, 0, len(v.fields)+1), v.fields...)}
	out.fields = setField(out.fields, key, val)
	return out
}

// Equal reports whether a and b hold the same document. Object key order
// is ignored; numbers compare by numeric value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNumber:
		if a.s == b.s {
			return true
		}
		af, errA := strconv.ParseFloat(a.s, 64)
		bf, errB := strconv.ParseFloat(b.s, 64)
		return errA == nil && errB == nil && af == bf
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for _, f := range a.fields {
			other, ok := b.Get(f.Key)
			if !ok || !Equal(f.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}

// FromAny converts plain Go data (as produced by encoding/json or
// yaml.v3) into a Value. Map keys are sorted since Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case []Value:
		return List(t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindList, items: items}, nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Value{kind: KindList, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			fields[i] = Field{Key: k, Value: v}
		}
		return Value{kind: KindObject, fields: fields}, nil
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: String(t[k])}
		}
		return Value{kind: KindObject, fields: fields}, nil
	}
	return Value{}, fmt.Errorf("value: unsupported type %s", reflect.TypeOf(x))
}

// MustFromAny is FromAny for literals known to be convertible.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Any converts v to plain Go data: nil, bool, json.Number, string,
// []any or map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Any()
		}
		return out
	default:
		return nil
	}
}
