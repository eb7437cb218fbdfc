// Package testkit builds ready-to-use backend environments for tests.
package testkit

import (
	"fmt"

	"ember/internal/intrin"
	"ember/internal/intrin/cuda"
	"ember/internal/ir"
	"ember/internal/types"
)

// Env bundles a sealed op registry, type interner and rule table for one
// backend.
type Env struct {
	Backend string
	Reg     *ir.OpRegistry
	Tys     *types.Interner
	Tbl     *intrin.Table
}

// NewEnv registers builtins and the named backend's rules, seals
// everything and returns the bundle.
func NewEnv(backend string) (*Env, error) {
	reg := ir.NewOpRegistry()
	ir.RegisterBuiltins(reg)
	tys := types.NewInterner()
	tbl := intrin.NewTable()
	switch backend {
	case cuda.Backend:
		cuda.Register(tbl, reg, tys)
	default:
		return nil, fmt.Errorf("testkit: unknown backend %q", backend)
	}
	reg.Seal()
	tbl.Seal()
	return &Env{Backend: backend, Reg: reg, Tys: tys, Tbl: tbl}, nil
}

// NewCUDAEnv is NewEnv("cuda") with panic-on-error, for test setup.
func NewCUDAEnv() *Env {
	env, err := NewEnv(cuda.Backend)
	if err != nil {
		panic(err)
	}
	return env
}
