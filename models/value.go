// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeometryColumn is the reserved column name under which a feature's
// geometry travels inside [DeltaRecord.Values].
const GeometryColumn = "geometry"

// ValueKind is the type tag of a [Value]. The numeric values are the value
// tags of the binary delta format.
type ValueKind uint8

const (
	KindNull     ValueKind = 0
	KindBool     ValueKind = 1
	KindInt      ValueKind = 2
	KindFloat    ValueKind = 3
	KindString   ValueKind = 4
	KindGeometry ValueKind = 5
)

var valueKindNames = map[ValueKind]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindGeometry: "geometry",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known value kind.
func (k ValueKind) Valid() bool {
	_, ok := valueKindNames[k]
	return ok
}

// ParseValueKind maps a column type name to its [ValueKind].
func ParseValueKind(s string) (ValueKind, bool) {
	for k, name := range valueKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// MarshalText encodes the kind by name so schemas stay readable in JSON and
// YAML.
func (k ValueKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown value kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *ValueKind) UnmarshalText(b []byte) error {
	parsed, ok := ParseValueKind(string(b))
	if !ok {
		return fmt.Errorf("unknown value kind %q", string(b))
	}
	*k = parsed
	return nil
}

// Value is a typed attribute value. Exactly one payload field is meaningful,
// selected by Kind.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Geom  orb.Geometry
}

func NullValue() Value { return Value{Kind: KindNull} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func GeometryValue(g orb.Geometry) Value {
	if g == nil {
		return NullValue()
	}
	return Value{Kind: KindGeometry, Geom: g}
}

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Equal compares kind and payload. Floats compare bitwise so NaN equals NaN.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return math.Float64bits(v.Float) == math.Float64bits(other.Float)
	case KindString:
		return v.Str == other.Str
	case KindGeometry:
		return orb.Equal(v.Geom, other.Geom)
	}
	return false
}

// Any returns the plain Go representation used for GeoJSON properties and
// JSON responses.
func (v Value) Any() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindGeometry:
		return geojson.NewGeometry(v.Geom)
	default:
		return nil
	}
}

// ValueFromAny converts a decoded JSON property into a Value of the expected
// column kind. JSON numbers arrive as float64 and are narrowed for int
// columns when they carry no fraction.
func ValueFromAny(raw any, kind ValueKind) (Value, error) {
	if raw == nil {
		return NullValue(), nil
	}

	switch kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return BoolValue(b), nil
		}
	case KindInt:
		switch n := raw.(type) {
		case float64:
			if n == math.Trunc(n) {
				return IntValue(int64(n)), nil
			}
		case int64:
			return IntValue(n), nil
		case int:
			return IntValue(int64(n)), nil
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return IntValue(i), nil
			}
		}
	case KindFloat:
		switch n := raw.(type) {
		case float64:
			return FloatValue(n), nil
		case int64:
			return FloatValue(float64(n)), nil
		case int:
			return FloatValue(float64(n)), nil
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return FloatValue(f), nil
			}
		}
	case KindString:
		if s, ok := raw.(string); ok {
			return StringValue(s), nil
		}
	case KindGeometry:
		switch g := raw.(type) {
		case orb.Geometry:
			return GeometryValue(g), nil
		case *geojson.Geometry:
			return GeometryValue(g.Geometry()), nil
		}
	}

	return Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrValueKindMismatch, raw, kind)
}

// MarshalJSON renders the value as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}
