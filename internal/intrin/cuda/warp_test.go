package cuda

import (
	"testing"

	"ember/internal/intrin"
	"ember/internal/ir"
	"ember/internal/types"
)

func warpSetup(t *testing.T) (*intrin.Table, *ir.OpRegistry, *types.Interner) {
	t.Helper()
	reg := ir.NewOpRegistry()
	ir.RegisterBuiltins(reg)
	tys := types.NewInterner()
	tbl := intrin.NewTable()
	Register(tbl, reg, tys)
	reg.Seal()
	tbl.Seal()
	return tbl, reg, tys
}

func shuffleArgs(n int) []ir.Expr {
	names := []string{"mask", "val", "lane", "width", "warp"}
	args := make([]ir.Expr, 0, n)
	for i := 0; i < n; i++ {
		args = append(args, ir.Var(names[i%len(names)], types.NoTypeID))
	}
	return args
}

func TestShuffleDispatchTargets(t *testing.T) {
	tbl, reg, tys := warpSetup(t)
	cases := []struct {
		abstract string
		target   string
	}{
		{ir.OpWarpShuffle, OpShflSync},
		{ir.OpWarpShuffleUp, OpShflUpSync},
		{ir.OpWarpShuffleDown, OpShflDownSync},
	}
	for _, tc := range cases {
		rule, ok := tbl.Lookup("intrin.cuda." + tc.abstract[len(ir.IntrinPrefix):])
		if !ok {
			t.Fatalf("no rule for %s", tc.abstract)
		}
		in := ir.OpCall(reg.MustOp(tc.abstract), tys.Builtins().Uint32, shuffleArgs(5)...)
		out, changed, err := rule(in)
		if err != nil || !changed {
			t.Fatalf("%s: changed=%v err=%v", tc.abstract, changed, err)
		}
		if out.Callee.Op != reg.MustOp(tc.target) {
			t.Fatalf("%s lowered to %s, want %s", tc.abstract, reg.Name(out.Callee.Op), tc.target)
		}
		if len(out.Args) != 4 {
			t.Fatalf("%s: expected 4 args after lowering, got %d", tc.abstract, len(out.Args))
		}
		for i := 0; i < 4; i++ {
			if out.Args[i] != in.Args[i] {
				t.Fatalf("%s: arg %d not carried over", tc.abstract, i)
			}
		}
		if out.Type != in.Type {
			t.Fatalf("%s: result type changed", tc.abstract)
		}
		if out.Effect != ir.EffectPureExtern {
			t.Fatalf("%s: lowered call must be pure extern", tc.abstract)
		}
	}
}

func TestShuffleDispatchArityViolation(t *testing.T) {
	tbl, reg, tys := warpSetup(t)
	rule, _ := tbl.Lookup("intrin.cuda.warp_shuffle")
	for _, n := range []int{0, 4} {
		in := ir.OpCall(reg.MustOp(ir.OpWarpShuffle), tys.Builtins().Uint32, shuffleArgs(n)...)
		if _, changed, err := rule(in); err == nil || changed {
			t.Fatalf("%d-arg shuffle must be a hard error, got changed=%v err=%v", n, changed, err)
		}
	}
}

func TestShuffleDispatchWrongIdentity(t *testing.T) {
	tbl, reg, tys := warpSetup(t)
	rule, _ := tbl.Lookup("intrin.cuda.warp_shuffle")
	// The dispatcher is never registered for sin; invoking it that way is
	// an internal-consistency failure, not a pass-through.
	in := ir.OpCall(reg.MustOp(ir.OpSin), tys.Builtins().Float32, shuffleArgs(5)...)
	if _, changed, err := rule(in); err == nil || changed {
		t.Fatalf("foreign identity must be a hard error, got changed=%v err=%v", changed, err)
	}
}

func TestActiveMaskDispatch(t *testing.T) {
	tbl, reg, tys := warpSetup(t)
	rule, ok := tbl.Lookup("intrin.cuda.warp_activemask")
	if !ok {
		t.Fatalf("no rule for warp_activemask")
	}
	in := ir.OpCall(reg.MustOp(ir.OpWarpActiveMask), tys.Builtins().Uint32)
	out, changed, err := rule(in)
	if err != nil || !changed {
		t.Fatalf("activemask dispatch failed: changed=%v err=%v", changed, err)
	}
	if out.Callee.Op != reg.MustOp(OpActiveMask) || len(out.Args) != 0 {
		t.Fatalf("unexpected lowering: %+v", out)
	}
	if out.Type != in.Type || out.Effect != ir.EffectPureExtern {
		t.Fatalf("type or effect wrong: %+v", out)
	}

	withArgs := ir.OpCall(reg.MustOp(ir.OpWarpActiveMask), tys.Builtins().Uint32, shuffleArgs(1)...)
	if _, changed, err := rule(withArgs); err == nil || changed {
		t.Fatalf("activemask with args must be a hard error")
	}
}

func TestLowLevelOpMetadata(t *testing.T) {
	_, reg, _ := warpSetup(t)
	cases := []struct {
		op     string
		arity  int
		symbol string
	}{
		{OpShflSync, 4, "__shfl_sync"},
		{OpShflUpSync, 4, "__shfl_up_sync"},
		{OpShflDownSync, 4, "__shfl_down_sync"},
		{OpActiveMask, 0, "__activemask"},
	}
	for _, tc := range cases {
		id := reg.MustOp(tc.op)
		if got := reg.NumInputs(id); got != tc.arity {
			t.Fatalf("%s arity = %d, want %d", tc.op, got, tc.arity)
		}
		sym, ok := reg.AttrString(id, ir.AttrGlobalSymbol)
		if !ok || sym != tc.symbol {
			t.Fatalf("%s global_symbol = %q, want %q", tc.op, sym, tc.symbol)
		}
		if !reg.AttrBool(id, ir.AttrNeedWarpSync) {
			t.Fatalf("%s must carry need_warp_sync", tc.op)
		}
	}
}

func TestRegisterBindsEveryRule(t *testing.T) {
	tbl, _, _ := warpSetup(t)
	want := []string{
		"floor", "ceil", "trunc", "fabs", "round",
		"exp", "exp2", "exp10", "erf",
		"log", "log2", "log10",
		"tan", "cos", "cosh", "sin", "sinh",
		"atan", "tanh", "sqrt", "pow", "fmod",
		"popcount",
		"warp_shuffle", "warp_shuffle_up", "warp_shuffle_down", "warp_activemask",
	}
	for _, base := range want {
		if _, ok := tbl.Lookup("intrin.cuda." + base); !ok {
			t.Fatalf("missing rule intrin.cuda.%s", base)
		}
	}
	if got := len(tbl.Names()); got != len(want) {
		t.Fatalf("rule count = %d, want %d: %v", got, len(want), tbl.Names())
	}
}
