package intrin

import (
	"errors"

	"ember/internal/types"
)

// RuleFunc maps a call's result type and intrinsic base name to a target
// symbol. Rules are pure and stateless; the same inputs always produce
// the same outcome.
//
// The outcome is tri-state:
//
//   - (sym, nil): the rule matched; sym is non-empty.
//   - ("", err) with errors.Is(err, ErrUnsupported): the rule does not
//     apply to this type. The caller leaves the call abstract and may try
//     another resolution path.
//   - ("", err) with errors.Is(err, ErrUnimplementable): the target has
//     no correct implementation for this type at all. Compilation must
//     stop; silently emitting a wrong symbol is worse than aborting.
type RuleFunc func(t types.Type, name string) (string, error)

// ErrUnsupported signals that a rule is out of scope for the given type.
// Non-fatal.
var ErrUnsupported = errors.New("intrin: no lowering for type")

// ErrUnimplementable signals a type the target cannot implement the
// intrinsic for. Fatal.
var ErrUnimplementable = errors.New("intrin: intrinsic unimplementable for type")
