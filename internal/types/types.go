package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the per-lane precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for any supported type. Lanes is 1 for
// scalars and the fixed lane count for short vectors. Types are compared
// by value.
type Type struct {
	Kind  Kind
	Width Width
	Lanes uint8
}

// Descriptor helpers ---------------------------------------------------------

// MakeBool describes the boolean type.
func MakeBool() Type {
	return Type{Kind: KindBool, Lanes: 1}
}

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width, Lanes: 1}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width, Lanes: 1}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width, Lanes: 1}
}

// Vec returns the same element type widened to the given lane count.
func (t Type) Vec(lanes uint8) Type {
	t.Lanes = lanes
	return t
}

// Bits returns the per-lane width in bits.
func (t Type) Bits() int {
	return int(t.Width)
}

// IsFloat reports whether the element kind is floating point, regardless
// of lane count.
func (t Type) IsFloat() bool {
	return t.Kind == KindFloat
}

// IsUint reports whether the element kind is an unsigned integer.
func (t Type) IsUint() bool {
	return t.Kind == KindUint
}

// IsScalar reports whether the type has exactly one lane.
func (t Type) IsScalar() bool {
	return t.Lanes == 1
}

func (t Type) String() string {
	base := t.Kind.String()
	if t.Width != WidthAny {
		base = fmt.Sprintf("%s%d", base, t.Width)
	}
	if t.Lanes > 1 {
		base = fmt.Sprintf("%sx%d", base, t.Lanes)
	}
	return base
}
