// Package intrin holds the backend-independent machinery for lowering
// abstract intrinsic calls: the RuleFunc contract mapping (result type,
// base name) to a target symbol, the generic DispatchExtern adapter that
// turns a RuleFunc into a call rewriter, and the named rule Table the
// lowering pass consults.
//
// Backend rule sets live in subpackages (intrin/cuda) and register
// themselves into a Table during initialization. After Seal the table is
// immutable and safe to share across compilation goroutines.
package intrin
