package cuda

import (
	"fmt"

	"ember/internal/intrin"
	"ember/internal/types"
)

// mathSymbol picks the CUDA libm symbol for a float intrinsic: the bare
// name at double precision, the "f"-suffixed variant at single precision
// and the "h"-prefixed half-precision variant. Width is per lane, so
// vector types select the same symbol as their element type.
func mathSymbol(t types.Type, name string) (string, error) {
	if t.IsFloat() {
		switch t.Bits() {
		case 64:
			return name, nil
		case 32:
			return name + "f", nil
		case 16:
			return "h" + name, nil
		}
	}
	return "", intrin.ErrUnsupported
}

// fastMathSymbol prefers the single-precision fast intrinsic ("__" prefix,
// "f" suffix), which trades accuracy for throughput. Fast variants exist
// only at 32 bits; every other width falls back to mathSymbol.
func fastMathSymbol(t types.Type, name string) (string, error) {
	if t.IsFloat() && t.Bits() == 32 {
		return "__" + name + "f", nil
	}
	return mathSymbol(t, name)
}

// fastMathTanSymbol handles tan, which needs two exceptions:
//   - `__tanf` produces values too deviant from the reference tan, so
//     single precision uses plain `tanf`.
//   - there is no half-precision tan at all; lowering must abort rather
//     than emit a symbol that does not exist.
func fastMathTanSymbol(t types.Type, name string) (string, error) {
	if t.IsFloat() {
		switch t.Bits() {
		case 64:
			return name, nil
		case 32:
			return name + "f", nil
		case 16:
			return "", fmt.Errorf("cuda %s for float16: %w", name, intrin.ErrUnimplementable)
		}
	}
	return "", intrin.ErrUnsupported
}

// popcountSymbol maps population count onto the __popc/__popcll
// intrinsics, which exist only for 32- and 64-bit unsigned operands.
func popcountSymbol(t types.Type, _ string) (string, error) {
	if t.IsUint() {
		switch t.Bits() {
		case 32:
			return "__popc", nil
		case 64:
			return "__popcll", nil
		}
	}
	return "", intrin.ErrUnsupported
}
