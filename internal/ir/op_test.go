package ir

import "testing"

func TestRegistryInternsDistinctIDs(t *testing.T) {
	reg := NewOpRegistry()
	a := reg.Register("cuda.a", 2)
	b := reg.Register("cuda.b", 0)
	if a == NoOpID || b == NoOpID || a == b {
		t.Fatalf("expected distinct valid ids, got %d and %d", a, b)
	}
	if got, ok := reg.Lookup("cuda.a"); !ok || got != a {
		t.Fatalf("Lookup(cuda.a) = %d, %v", got, ok)
	}
	if reg.NumInputs(a) != 2 || reg.NumInputs(b) != 0 {
		t.Fatalf("arity not preserved")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate registration should panic")
		}
	}()
	reg := NewOpRegistry()
	reg.Register("cuda.a", 1)
	reg.Register("cuda.a", 1)
}

func TestRegistrySealRejectsWrites(t *testing.T) {
	reg := NewOpRegistry()
	reg.Register("cuda.a", 1)
	reg.Seal()
	if !reg.Sealed() {
		t.Fatalf("registry should report sealed")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("Register after Seal should panic")
		}
	}()
	reg.Register("cuda.b", 1)
}

func TestRegistryAttrs(t *testing.T) {
	reg := NewOpRegistry()
	id := reg.Register("cuda.__shfl_sync", 4)
	reg.SetAttr(id, AttrGlobalSymbol, "__shfl_sync")
	reg.SetAttr(id, AttrNeedWarpSync, true)
	reg.Seal()

	sym, ok := reg.AttrString(id, AttrGlobalSymbol)
	if !ok || sym != "__shfl_sync" {
		t.Fatalf("AttrString = %q, %v", sym, ok)
	}
	if !reg.AttrBool(id, AttrNeedWarpSync) {
		t.Fatalf("need_warp_sync should be set")
	}
	if reg.AttrBool(id, "missing") {
		t.Fatalf("absent bool attr should read false")
	}
}

func TestRegisterBuiltinsArity(t *testing.T) {
	reg := NewOpRegistry()
	RegisterBuiltins(reg)
	reg.Seal()

	cases := map[string]int{
		OpSin:             1,
		OpPow:             2,
		OpFmod:            2,
		OpPopcount:        1,
		OpWarpShuffle:     5,
		OpWarpShuffleUp:   5,
		OpWarpShuffleDown: 5,
		OpWarpActiveMask:  0,
	}
	for name, want := range cases {
		id := reg.MustOp(name)
		if got := reg.NumInputs(id); got != want {
			t.Fatalf("%s arity = %d, want %d", name, got, want)
		}
	}
}

func TestMustOpUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustOp on unknown name should panic")
		}
	}()
	NewOpRegistry().MustOp("intrin.nope")
}
