// Package lower applies a backend rule table to kernel IR, rewriting
// abstract intrinsic calls into concrete target calls.
package lower

import (
	"errors"
	"fmt"
	"strings"

	"ember/internal/diag"
	"ember/internal/intrin"
	"ember/internal/ir"
	"ember/internal/types"
)

// Lowerer rewrites abstract intrinsic calls using a sealed rule table.
// It holds no mutable state of its own, so one Lowerer may serve several
// goroutines at once.
type Lowerer struct {
	Table   *intrin.Table
	Reg     *ir.OpRegistry
	Types   *types.Interner
	Backend string
	// Reporter receives non-fatal findings (unresolved intrinsics).
	// Defaults to NopReporter when nil.
	Reporter diag.Reporter
}

// New constructs a Lowerer for a backend.
func New(tbl *intrin.Table, reg *ir.OpRegistry, tys *types.Interner, backend string) *Lowerer {
	return &Lowerer{Table: tbl, Reg: reg, Types: tys, Backend: backend}
}

// RuleName derives the rule table key for an abstract intrinsic op, or ""
// when the op is not subject to lowering. Already-lowered calls reference
// extern symbols or backend ops outside the intrin namespace, so a second
// pass finds no rule name and leaves them alone.
func (l *Lowerer) RuleName(op ir.OpID) string {
	name := l.Reg.Name(op)
	base, ok := strings.CutPrefix(name, ir.IntrinPrefix)
	if !ok {
		return ""
	}
	return ir.IntrinPrefix + l.Backend + "." + base
}

// LowerCall resolves one call. Returns the (possibly rewritten) call and
// whether a rewrite happened. A non-nil error aborts compilation.
func (l *Lowerer) LowerCall(call ir.Call) (ir.Call, bool, error) {
	if call.Callee.Kind != ir.CalleeOp {
		return call, false, nil
	}
	rule := l.RuleName(call.Callee.Op)
	if rule == "" {
		return call, false, nil
	}
	d, ok := l.Table.Lookup(rule)
	if !ok {
		return call, false, nil
	}
	return d(call)
}

// LowerFunc rewrites every call in the function body in place. Abstract
// intrinsics that no rule resolves are reported as warnings; a later
// stage may still resolve them or fail. Fatal rule outcomes abort with an
// error after reporting.
func (l *Lowerer) LowerFunc(f *ir.Func) error {
	rep := l.reporter()
	for i := range f.Body {
		out, changed, err := l.LowerCall(f.Body[i])
		if err != nil {
			code := diag.LowerArityMismatch
			if errors.Is(err, intrin.ErrUnimplementable) {
				code = diag.LowerUnimplementable
			}
			rep.Report(code, diag.SevError, f.Name, err.Error())
			return fmt.Errorf("lower %s: %w", f.Name, err)
		}
		if changed {
			f.Body[i] = out
			continue
		}
		if rule := l.RuleName(f.Body[i].Callee.Op); rule != "" {
			// A bound rule that declined means the result type is the
			// problem; a missing rule means the backend has no mapping.
			code := diag.LowerNoRule
			if _, ok := l.Table.Lookup(rule); ok {
				code = diag.LowerUnsupportedType
			}
			rep.Report(code, diag.SevWarning, f.Name,
				fmt.Sprintf("no %s lowering for %s with result type %s",
					l.Backend, l.Reg.Name(f.Body[i].Callee.Op), l.typeStr(f.Body[i].Type)))
		}
	}
	return nil
}

// LowerModule lowers every function in order.
func (l *Lowerer) LowerModule(m *ir.Module) error {
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := l.LowerFunc(f); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) reporter() diag.Reporter {
	if l.Reporter == nil {
		return diag.NopReporter{}
	}
	return l.Reporter
}

func (l *Lowerer) typeStr(id types.TypeID) string {
	tt, ok := l.Types.Lookup(id)
	if !ok {
		return "invalid"
	}
	return tt.String()
}
