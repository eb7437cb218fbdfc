package cuda

import (
	"ember/internal/intrin"
	"ember/internal/ir"
	"ember/internal/types"
)

// Backend is the rule namespace segment for this backend.
const Backend = "cuda"

// Register declares the CUDA low-level ops on reg and binds every CUDA
// lowering rule into tbl. The functor assignment per intrinsic is a
// hand-curated accuracy decision: fast variants are used only where they
// stay close enough to the reference results.
func Register(tbl *intrin.Table, reg *ir.OpRegistry, tys *types.Interner) {
	RegisterOps(reg)

	math := func(base string) {
		tbl.Register(ruleName(base), intrin.DispatchExtern(base, tys, mathSymbol))
	}
	fast := func(base string) {
		tbl.Register(ruleName(base), intrin.DispatchExtern(base, tys, fastMathSymbol))
	}

	math("floor")
	math("ceil")
	math("trunc")
	math("fabs")
	math("round")
	fast("exp")
	math("exp2")
	fast("exp10")
	math("erf")
	fast("log")
	fast("log2")
	fast("log10")
	tbl.Register(ruleName("tan"), intrin.DispatchExtern("tan", tys, fastMathTanSymbol))
	fast("cos")
	math("cosh")
	fast("sin")
	math("sinh")
	math("atan")
	math("tanh")
	math("sqrt")
	math("pow")
	math("fmod")
	tbl.Register(ruleName("popcount"), intrin.DispatchExtern("popcount", tys, popcountSymbol))

	shuffle := dispatchShuffle(reg)
	tbl.Register(ruleName("warp_shuffle"), shuffle)
	tbl.Register(ruleName("warp_shuffle_up"), shuffle)
	tbl.Register(ruleName("warp_shuffle_down"), shuffle)
	tbl.Register(ruleName("warp_activemask"), dispatchActiveMask(reg))
}

func ruleName(base string) string {
	return "intrin." + Backend + "." + base
}
