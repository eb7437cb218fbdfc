package ir

// Abstract intrinsic operation names. Calls to these survive the middle
// end unchanged; each backend registers lowering rules that rewrite them
// into concrete target calls.
const (
	OpFloor = "intrin.floor"
	OpCeil  = "intrin.ceil"
	OpTrunc = "intrin.trunc"
	OpFabs  = "intrin.fabs"
	OpRound = "intrin.round"
	OpExp   = "intrin.exp"
	OpExp2  = "intrin.exp2"
	OpExp10 = "intrin.exp10"
	OpErf   = "intrin.erf"
	OpLog   = "intrin.log"
	OpLog2  = "intrin.log2"
	OpLog10 = "intrin.log10"
	OpTan   = "intrin.tan"
	OpCos   = "intrin.cos"
	OpCosh  = "intrin.cosh"
	OpSin   = "intrin.sin"
	OpSinh  = "intrin.sinh"
	OpAtan  = "intrin.atan"
	OpTanh  = "intrin.tanh"
	OpSqrt  = "intrin.sqrt"
	OpPow   = "intrin.pow"
	OpFmod  = "intrin.fmod"

	OpPopcount = "intrin.popcount"

	OpWarpShuffle     = "intrin.warp_shuffle"
	OpWarpShuffleUp   = "intrin.warp_shuffle_up"
	OpWarpShuffleDown = "intrin.warp_shuffle_down"
	OpWarpActiveMask  = "intrin.warp_activemask"
)

// IntrinPrefix is the namespace shared by all abstract intrinsic ops.
const IntrinPrefix = "intrin."

// Warp shuffle calls carry mask, value, lane selector, width and warp
// size. Backends that hard-code the warp size drop the final argument
// during lowering.
const WarpShuffleArgs = 5

// RegisterBuiltins registers the abstract intrinsic operations. Call once
// on a fresh registry before backend rule registration.
func RegisterBuiltins(reg *OpRegistry) {
	unary := []string{
		OpFloor, OpCeil, OpTrunc, OpFabs, OpRound,
		OpExp, OpExp2, OpExp10, OpErf,
		OpLog, OpLog2, OpLog10,
		OpTan, OpCos, OpCosh, OpSin, OpSinh,
		OpAtan, OpTanh, OpSqrt,
		OpPopcount,
	}
	for _, name := range unary {
		reg.Register(name, 1)
	}
	reg.Register(OpPow, 2)
	reg.Register(OpFmod, 2)

	reg.Register(OpWarpShuffle, WarpShuffleArgs)
	reg.Register(OpWarpShuffleUp, WarpShuffleArgs)
	reg.Register(OpWarpShuffleDown, WarpShuffleArgs)
	reg.Register(OpWarpActiveMask, 0)
}
