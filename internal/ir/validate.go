package ir

import (
	"errors"
	"fmt"

	"ember/internal/types"
)

// Validate checks module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module, reg *OpRegistry, tys *types.Interner) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := validateFunc(f, reg, tys); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func, reg *OpRegistry, tys *types.Interner) error {
	var errs []error
	for i := range f.Body {
		c := &f.Body[i]
		if c.Type == types.NoTypeID {
			errs = append(errs, fmt.Errorf("call %d: missing result type", i))
		}
		switch c.Callee.Kind {
		case CalleeOp:
			op, ok := reg.Get(c.Callee.Op)
			if !ok {
				errs = append(errs, fmt.Errorf("call %d: unregistered op", i))
				continue
			}
			if op.NumInputs != NumInputsAny && op.NumInputs != len(c.Args) {
				errs = append(errs, fmt.Errorf(
					"call %d: op %s expects %d args, got %d",
					i, op.Name, op.NumInputs, len(c.Args)))
			}
		case CalleeExtern:
			if c.Callee.Sym == "" {
				errs = append(errs, fmt.Errorf("call %d: extern callee without symbol", i))
			}
		default:
			errs = append(errs, fmt.Errorf("call %d: bad callee kind %d", i, c.Callee.Kind))
		}
	}
	return errors.Join(errs...)
}
