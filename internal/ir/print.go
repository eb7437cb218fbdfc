package ir

import (
	"fmt"
	"io"
	"strings"

	"ember/internal/types"
)

// DumpModule writes a human-readable representation of a module. The
// output of an un-lowered module parses back via ParseModule.
func DumpModule(w io.Writer, m *Module, reg *OpRegistry, tys *types.Interner) error {
	if w == nil || m == nil {
		return nil
	}
	if m.Name != "" {
		fmt.Fprintf(w, "module %s\n", m.Name)
	}
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		fmt.Fprintf(w, "\nfunc %s\n", f.Name)
		for i := range f.Body {
			fmt.Fprintf(w, "  %s\n", FormatCall(&f.Body[i], reg, tys))
		}
	}
	return nil
}

// FormatCall renders one call.
func FormatCall(c *Call, reg *OpRegistry, tys *types.Interner) string {
	var sb strings.Builder
	if c.Dst != "" {
		fmt.Fprintf(&sb, "%%%s = ", c.Dst)
	}
	switch c.Callee.Kind {
	case CalleeOp:
		fmt.Fprintf(&sb, "call %s", reg.Name(c.Callee.Op))
	case CalleeExtern:
		fmt.Fprintf(&sb, "extern %q", c.Callee.Sym)
	}
	fmt.Fprintf(&sb, " %s (", typeStr(tys, c.Type))
	for i := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatExpr(&c.Args[i]))
	}
	sb.WriteString(")")
	if c.Effect == EffectPureExtern {
		sb.WriteString(" pure")
	}
	return sb.String()
}

func formatExpr(e *Expr) string {
	switch e.Kind {
	case ExprVar:
		return "%" + e.Name
	case ExprConst:
		return fmt.Sprintf("%d", e.Const)
	default:
		return "?"
	}
}

func typeStr(tys *types.Interner, id types.TypeID) string {
	if tys == nil {
		return fmt.Sprintf("t%d", id)
	}
	tt, ok := tys.Lookup(id)
	if !ok {
		return "invalid"
	}
	return tt.String()
}
