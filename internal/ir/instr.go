package ir

import (
	"ember/internal/types"
)

// ExprKind distinguishes argument expression forms.
type ExprKind uint8

const (
	// ExprVar references a named value produced outside the call.
	ExprVar ExprKind = iota
	// ExprConst is an integer literal argument.
	ExprConst
)

// Expr is an argument expression. The lowering layer never inspects
// argument values; it only carries them over into rewritten calls.
type Expr struct {
	Kind ExprKind
	Type types.TypeID

	Name  string
	Const int64
}

// Var builds a variable reference expression.
func Var(name string, ty types.TypeID) Expr {
	return Expr{Kind: ExprVar, Type: ty, Name: name}
}

// ConstInt builds an integer literal expression.
func ConstInt(v int64, ty types.TypeID) Expr {
	return Expr{Kind: ExprConst, Type: ty, Const: v}
}

// CalleeKind distinguishes call target forms.
type CalleeKind uint8

const (
	// CalleeOp targets a registered operation.
	CalleeOp CalleeKind = iota
	// CalleeExtern targets an external symbol by name. The symbol is
	// expected to exist in the target runtime or device library.
	CalleeExtern
)

// Callee is a call target.
type Callee struct {
	Kind CalleeKind
	Op   OpID
	Sym  string
}

// Effect classifies the side-effect behavior of a call.
type Effect uint8

const (
	// EffectOpaque calls may read or write arbitrary state and must not
	// be reordered or removed.
	EffectOpaque Effect = iota
	// EffectPureExtern calls are side-effect free: later passes can
	// reorder them and eliminate them when the result is unused.
	EffectPureExtern
)

func (e Effect) String() string {
	switch e {
	case EffectOpaque:
		return "opaque"
	case EffectPureExtern:
		return "pure_extern"
	default:
		return "unknown"
	}
}

// Call is an immutable call node: a callee, a result type and an ordered
// argument list. Rewrites produce new Call values; they never mutate the
// original in place.
type Call struct {
	Dst    string
	Callee Callee
	Type   types.TypeID
	Args   []Expr
	Effect Effect
}

// OpCall builds an abstract call to a registered operation.
func OpCall(op OpID, ty types.TypeID, args ...Expr) Call {
	return Call{Callee: Callee{Kind: CalleeOp, Op: op}, Type: ty, Args: args}
}

// ExternCall builds a pure call to an external symbol.
func ExternCall(sym string, ty types.TypeID, args []Expr) Call {
	return Call{
		Callee: Callee{Kind: CalleeExtern, Sym: sym},
		Type:   ty,
		Args:   args,
		Effect: EffectPureExtern,
	}
}

// Func is a straight-line sequence of calls. Control flow lives in the
// surrounding compiler; the lowering layer only sees call sequences.
type Func struct {
	Name string
	Body []Call
}

// Module is a named collection of functions.
type Module struct {
	Name  string
	Funcs []*Func
}
