package cuda

import (
	"fmt"

	"ember/internal/intrin"
	"ember/internal/ir"
)

// warpOps holds the OpIDs the warp dispatchers compare and emit. All
// identities are resolved once at registration time; no name matching
// happens per call.
type warpOps struct {
	shuffle     ir.OpID
	shuffleUp   ir.OpID
	shuffleDown ir.OpID
	activeMask  ir.OpID

	shflSync     ir.OpID
	shflUpSync   ir.OpID
	shflDownSync ir.OpID
	activeMaskOp ir.OpID
}

func resolveWarpOps(reg *ir.OpRegistry) warpOps {
	return warpOps{
		shuffle:     reg.MustOp(ir.OpWarpShuffle),
		shuffleUp:   reg.MustOp(ir.OpWarpShuffleUp),
		shuffleDown: reg.MustOp(ir.OpWarpShuffleDown),
		activeMask:  reg.MustOp(ir.OpWarpActiveMask),

		shflSync:     reg.MustOp(OpShflSync),
		shflUpSync:   reg.MustOp(OpShflUpSync),
		shflDownSync: reg.MustOp(OpShflDownSync),
		activeMaskOp: reg.MustOp(OpActiveMask),
	}
}

// target selects the low-level shuffle op for an abstract shuffle
// identity. The dispatcher is registered only for the three shuffle
// variants, so any other identity is an internal-consistency failure.
func (w warpOps) target(orig ir.OpID) (ir.OpID, error) {
	switch orig {
	case w.shuffle:
		return w.shflSync, nil
	case w.shuffleUp:
		return w.shflUpSync, nil
	case w.shuffleDown:
		return w.shflDownSync, nil
	default:
		return ir.NoOpID, fmt.Errorf("cuda: shuffle dispatch invoked for non-shuffle op %d", orig)
	}
}

// dispatchShuffle rewrites a 5-argument abstract warp shuffle into a
// 4-argument pure call to the matching __shfl*_sync op: the warp-size
// argument is implicit on CUDA and dropped, the rest carry over in order.
func dispatchShuffle(reg *ir.OpRegistry) intrin.Dispatcher {
	ops := resolveWarpOps(reg)
	return func(call ir.Call) (ir.Call, bool, error) {
		if call.Callee.Kind != ir.CalleeOp {
			return call, false, fmt.Errorf("cuda: shuffle dispatch on non-op callee")
		}
		if len(call.Args) != ir.WarpShuffleArgs {
			return call, false, fmt.Errorf(
				"cuda: warp shuffle expects %d args (mask, value, lane, width, warp size), got %d",
				ir.WarpShuffleArgs, len(call.Args))
		}
		dst, err := ops.target(call.Callee.Op)
		if err != nil {
			return call, false, err
		}
		out := ir.Call{
			Dst:    call.Dst,
			Callee: ir.Callee{Kind: ir.CalleeOp, Op: dst},
			Type:   call.Type,
			Args:   call.Args[:shuffleInputs:shuffleInputs],
			Effect: ir.EffectPureExtern,
		}
		return out, true, nil
	}
}

// dispatchActiveMask rewrites the zero-argument active-mask query into a
// pure call to __activemask. No type-dependent branching: the query is
// width-independent.
func dispatchActiveMask(reg *ir.OpRegistry) intrin.Dispatcher {
	ops := resolveWarpOps(reg)
	return func(call ir.Call) (ir.Call, bool, error) {
		if len(call.Args) != 0 {
			return call, false, fmt.Errorf(
				"cuda: warp activemask expects no args, got %d", len(call.Args))
		}
		out := ir.Call{
			Dst:    call.Dst,
			Callee: ir.Callee{Kind: ir.CalleeOp, Op: ops.activeMaskOp},
			Type:   call.Type,
			Effect: ir.EffectPureExtern,
		}
		return out, true, nil
	}
}
