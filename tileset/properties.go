package tileset

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies the type held by a property Value.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a tagged property value. Only the field matching Kind is set.
type Value struct {
	kind Kind
	b    bool
	s    string
	n    float64
}

func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v. ok is false when v is not a bool.
func (v Value) Bool() (b bool, ok bool) { return v.b, v.kind == KindBool }

// Str returns the string held by v. ok is false when v is not a string.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == KindString }

// Number returns the number held by v. ok is false when v is not a number.
func (v Value) Number() (n float64, ok bool) { return v.n, v.kind == KindNumber }

// String formats the value for display. It is not a coercion accessor.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	default:
		return v.s
	}
}

// Properties is the read-only property bag of one tile.
type Properties struct {
	m map[string]Value
}

// Get returns the value stored under key.
func (p Properties) Get(key string) (Value, bool) {
	v, ok := p.m[key]
	return v, ok
}

func (p Properties) Len() int { return len(p.m) }

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Each calls fn for every property in key order.
func (p Properties) Each(fn func(key string, v Value)) {
	for _, k := range p.Keys() {
		fn(k, p.m[k])
	}
}

// parseValue converts a raw Tiled property into a Value. Tiled writes ints,
// floats and object references as numbers and colors and files as strings.
func parseValue(typ, raw string) (Value, error) {
	switch typ {
	case "", "string", "color", "file":
		return StringValue(raw), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("bool value %q: %w", raw, err)
		}
		return BoolValue(b), nil
	case "int", "float", "object":
		if raw == "" {
			return NumberValue(0), nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%s value %q: %w", typ, raw, err)
		}
		return NumberValue(n), nil
	default:
		return Value{}, fmt.Errorf("unsupported property type %q", typ)
	}
}
