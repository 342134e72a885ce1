package rowan

import "fmt"

// VariantType identifies the payload held by a Variant.
type VariantType uint8

const (
	VariantTypeNil    VariantType = iota // no value
	VariantTypeBool                      // boolean
	VariantTypeInt                       // integer
	VariantTypeFloat                     // 64-bit float
	VariantTypeString                    // string
	VariantTypeVec2                      // Vec2
	VariantTypeRect2                     // Rect2
	VariantTypeColor                     // Color
	VariantTypeObject                    // node reference
)

// Variant is a dynamically typed value passed through signals, scripts, the
// property bag, and serialization dictionaries. The zero value is the nil
// variant. Variants are comparable with ==; only the active payload field is
// ever set, so equal values compare equal.
type Variant struct {
	typ VariantType
	b   bool
	i   int
	f   float64
	s   string
	v   Vec2
	r   Rect2
	c   Color
	o   Noder
}

// VariantBool wraps a bool.
func VariantBool(v bool) Variant { return Variant{typ: VariantTypeBool, b: v} }

// VariantInt wraps an int.
func VariantInt(v int) Variant { return Variant{typ: VariantTypeInt, i: v} }

// VariantFloat wraps a float64.
func VariantFloat(v float64) Variant { return Variant{typ: VariantTypeFloat, f: v} }

// VariantString wraps a string.
func VariantString(v string) Variant { return Variant{typ: VariantTypeString, s: v} }

// VariantVec2 wraps a Vec2.
func VariantVec2(v Vec2) Variant { return Variant{typ: VariantTypeVec2, v: v} }

// VariantRect2 wraps a Rect2.
func VariantRect2(v Rect2) Variant { return Variant{typ: VariantTypeRect2, r: v} }

// VariantColor wraps a Color.
func VariantColor(v Color) Variant { return Variant{typ: VariantTypeColor, c: v} }

// VariantObject wraps a node reference. A nil node yields the nil variant.
func VariantObject(n Noder) Variant {
	if n == nil {
		return Variant{}
	}
	return Variant{typ: VariantTypeObject, o: n}
}

// Type returns the payload tag.
func (v Variant) Type() VariantType { return v.typ }

// IsNil reports whether the variant holds no value.
func (v Variant) IsNil() bool { return v.typ == VariantTypeNil }

// The As accessors return the payload when the tag matches and the type's
// zero value otherwise. They never convert between numeric types.

// AsBool returns the boolean payload, or false.
func (v Variant) AsBool() bool {
	if v.typ != VariantTypeBool {
		return false
	}
	return v.b
}

// AsInt returns the integer payload, or 0.
func (v Variant) AsInt() int {
	if v.typ != VariantTypeInt {
		return 0
	}
	return v.i
}

// AsFloat returns the float payload, or 0.
func (v Variant) AsFloat() float64 {
	if v.typ != VariantTypeFloat {
		return 0
	}
	return v.f
}

// AsString returns the string payload, or "".
func (v Variant) AsString() string {
	if v.typ != VariantTypeString {
		return ""
	}
	return v.s
}

// AsVec2 returns the Vec2 payload, or the zero vector.
func (v Variant) AsVec2() Vec2 {
	if v.typ != VariantTypeVec2 {
		return Vec2{}
	}
	return v.v
}

// AsRect2 returns the Rect2 payload, or the zero rectangle.
func (v Variant) AsRect2() Rect2 {
	if v.typ != VariantTypeRect2 {
		return Rect2{}
	}
	return v.r
}

// AsColor returns the Color payload, or the zero color.
func (v Variant) AsColor() Color {
	if v.typ != VariantTypeColor {
		return Color{}
	}
	return v.c
}

// AsObject returns the node payload, or nil.
func (v Variant) AsObject() Noder {
	if v.typ != VariantTypeObject {
		return nil
	}
	return v.o
}

// String formats the variant for debug output.
func (v Variant) String() string {
	switch v.typ {
	case VariantTypeNil:
		return "nil"
	case VariantTypeBool:
		return fmt.Sprintf("%t", v.b)
	case VariantTypeInt:
		return fmt.Sprintf("%d", v.i)
	case VariantTypeFloat:
		return fmt.Sprintf("%g", v.f)
	case VariantTypeString:
		return fmt.Sprintf("%q", v.s)
	case VariantTypeVec2:
		return fmt.Sprintf("(%g, %g)", v.v.X, v.v.Y)
	case VariantTypeRect2:
		return fmt.Sprintf("[%g, %g, %g, %g]", v.r.Position.X, v.r.Position.Y, v.r.Size.X, v.r.Size.Y)
	case VariantTypeColor:
		return fmt.Sprintf("#(%g, %g, %g, %g)", v.c.R, v.c.G, v.c.B, v.c.A)
	case VariantTypeObject:
		if v.o == nil {
			return "Object(nil)"
		}
		return fmt.Sprintf("Object(%s)", v.o.Name())
	default:
		return "invalid"
	}
}
