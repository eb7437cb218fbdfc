package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType reads a textual type name like "float32", "uint64" or
// "float16x2" into a descriptor.
func ParseType(s string) (Type, error) {
	elem := s
	lanes := uint8(1)
	if i := strings.IndexByte(s, 'x'); i > 0 {
		n, err := strconv.ParseUint(s[i+1:], 10, 8)
		if err != nil || n < 2 {
			return Type{}, fmt.Errorf("types: bad lane count in %q", s)
		}
		elem = s[:i]
		lanes = uint8(n)
	}

	var kind Kind
	switch {
	case elem == "bool":
		return MakeBool().Vec(lanes), nil
	case strings.HasPrefix(elem, "float"):
		kind = KindFloat
		elem = elem[len("float"):]
	case strings.HasPrefix(elem, "uint"):
		kind = KindUint
		elem = elem[len("uint"):]
	case strings.HasPrefix(elem, "int"):
		kind = KindInt
		elem = elem[len("int"):]
	default:
		return Type{}, fmt.Errorf("types: unknown type %q", s)
	}

	bits, err := strconv.ParseUint(elem, 10, 8)
	if err != nil {
		return Type{}, fmt.Errorf("types: bad width in %q", s)
	}
	switch Width(bits) {
	case Width8, Width16, Width32, Width64:
	default:
		return Type{}, fmt.Errorf("types: unsupported width %d in %q", bits, s)
	}
	return Type{Kind: kind, Width: Width(bits), Lanes: lanes}, nil
}
