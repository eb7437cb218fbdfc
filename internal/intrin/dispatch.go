package intrin

import (
	"errors"
	"fmt"

	"ember/internal/ir"
	"ember/internal/types"
)

// Dispatcher rewrites one abstract intrinsic call. On a match it returns
// the rewritten call and true. When no rule applies it returns the
// original call and false, leaving resolution to a later stage. A non-nil
// error is fatal: either an unimplementable intrinsic or an
// internal-consistency failure in the caller.
type Dispatcher func(call ir.Call) (ir.Call, bool, error)

// DispatchExtern adapts a RuleFunc into a Dispatcher. The rewritten call
// targets the produced symbol as a pure external call; the argument list
// and result type are carried over unchanged. One adapter serves every
// math rule; the RuleFunc parameter replaces per-rule dispatch code.
func DispatchExtern(base string, tys *types.Interner, rule RuleFunc) Dispatcher {
	return func(call ir.Call) (ir.Call, bool, error) {
		t, ok := tys.Lookup(call.Type)
		if !ok {
			return call, false, fmt.Errorf("intrin: %s: call has no result type", base)
		}
		sym, err := rule(t, base)
		if err != nil {
			if errors.Is(err, ErrUnsupported) {
				return call, false, nil
			}
			return call, false, err
		}
		if sym == "" {
			// A matching rule must name a symbol; an empty name here is
			// a bug in the rule, not a legal outcome.
			panic(fmt.Sprintf("intrin: rule for %s returned empty symbol", base))
		}
		out := ir.ExternCall(sym, call.Type, call.Args)
		out.Dst = call.Dst
		return out, true, nil
	}
}
