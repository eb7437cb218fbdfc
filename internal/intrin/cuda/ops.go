package cuda

import "ember/internal/ir"

// Low-level CUDA operation names. Calls to these are emitted by the warp
// dispatchers below; the code generator reads the global_symbol attr to
// print the call and the need_warp_sync attr to decide whether the
// surrounding region needs warp-synchronization scaffolding.
const (
	OpShflSync     = "cuda.__shfl_sync"
	OpShflUpSync   = "cuda.__shfl_up_sync"
	OpShflDownSync = "cuda.__shfl_down_sync"
	OpActiveMask   = "cuda.__activemask"
)

// shuffleInputs is the arity of the __shfl*_sync ops: mask, value, lane
// selector and width. The warp size present on the abstract call is
// implicit on the target and dropped.
const shuffleInputs = 4

// RegisterOps declares the CUDA low-level operations. Call once during
// initialization, before sealing the registry.
func RegisterOps(reg *ir.OpRegistry) {
	for _, name := range []string{OpShflSync, OpShflUpSync, OpShflDownSync} {
		id := reg.Register(name, shuffleInputs)
		reg.SetAttr(id, ir.AttrGlobalSymbol, name[len("cuda."):])
		reg.SetAttr(id, ir.AttrNeedWarpSync, true)
	}
	id := reg.Register(OpActiveMask, 0)
	reg.SetAttr(id, ir.AttrGlobalSymbol, "__activemask")
	reg.SetAttr(id, ir.AttrNeedWarpSync, true)
}
