package cuda

import (
	"errors"
	"testing"

	"ember/internal/intrin"
	"ember/internal/types"
)

var (
	f16 = types.MakeFloat(types.Width16)
	f32 = types.MakeFloat(types.Width32)
	f64 = types.MakeFloat(types.Width64)
	u32 = types.MakeUint(types.Width32)
	u64 = types.MakeUint(types.Width64)
	i32 = types.MakeInt(types.Width32)
)

func wantSym(t *testing.T, rule intrin.RuleFunc, ty types.Type, name, want string) {
	t.Helper()
	got, err := rule(ty, name)
	if err != nil {
		t.Fatalf("%s(%v): unexpected error %v", name, ty, err)
	}
	if got != want {
		t.Fatalf("%s(%v) = %q, want %q", name, ty, got, want)
	}
}

func wantUnsupported(t *testing.T, rule intrin.RuleFunc, ty types.Type, name string) {
	t.Helper()
	got, err := rule(ty, name)
	if !errors.Is(err, intrin.ErrUnsupported) {
		t.Fatalf("%s(%v) = %q, %v; want ErrUnsupported", name, ty, got, err)
	}
	if got != "" {
		t.Fatalf("%s(%v) returned partial symbol %q with error", name, ty, got)
	}
}

func TestMathSymbolWidths(t *testing.T) {
	for _, name := range []string{"floor", "sqrt", "pow", "fmod", "erf"} {
		wantSym(t, mathSymbol, f64, name, name)
		wantSym(t, mathSymbol, f32, name, name+"f")
		wantSym(t, mathSymbol, f16, name, "h"+name)
	}
}

func TestMathSymbolVectorUsesLaneWidth(t *testing.T) {
	wantSym(t, mathSymbol, f16.Vec(2), "fabs", "hfabs")
	wantSym(t, mathSymbol, f32.Vec(4), "fabs", "fabsf")
}

func TestMathSymbolRejectsNonFloat(t *testing.T) {
	wantUnsupported(t, mathSymbol, u32, "floor")
	wantUnsupported(t, mathSymbol, i32, "floor")
	wantUnsupported(t, mathSymbol, types.MakeFloat(types.Width8), "floor")
	wantUnsupported(t, mathSymbol, types.MakeBool(), "floor")
}

func TestFastMathSymbol(t *testing.T) {
	wantSym(t, fastMathSymbol, f32, "sin", "__sinf")
	// Every other width falls back to the accurate mapping exactly.
	wantSym(t, fastMathSymbol, f64, "sin", "sin")
	wantSym(t, fastMathSymbol, f16, "sin", "hsin")
	wantUnsupported(t, fastMathSymbol, u32, "sin")
}

func TestFastMathTanSymbol(t *testing.T) {
	wantSym(t, fastMathTanSymbol, f64, "tan", "tan")
	// Single precision deliberately avoids the __tanf fast form.
	wantSym(t, fastMathTanSymbol, f32, "tan", "tanf")
	wantUnsupported(t, fastMathTanSymbol, u32, "tan")

	sym, err := fastMathTanSymbol(f16, "tan")
	if !errors.Is(err, intrin.ErrUnimplementable) {
		t.Fatalf("tan(float16) = %q, %v; want ErrUnimplementable", sym, err)
	}
	if sym != "" {
		t.Fatalf("fatal outcome must not carry a symbol, got %q", sym)
	}
}

func TestPopcountSymbol(t *testing.T) {
	wantSym(t, popcountSymbol, u32, "popcount", "__popc")
	wantSym(t, popcountSymbol, u64, "popcount", "__popcll")
	wantUnsupported(t, popcountSymbol, types.MakeUint(types.Width16), "popcount")
	wantUnsupported(t, popcountSymbol, i32, "popcount")
	wantUnsupported(t, popcountSymbol, f32, "popcount")
}
