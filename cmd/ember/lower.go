package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/intrin"
	"ember/internal/intrin/cuda"
	"ember/internal/ir"
	"ember/internal/lower"
	"ember/internal/observ"
	"ember/internal/types"
)

var (
	lowerBackend string
	lowerExprs   []string
	lowerNoCache bool
	lowerJobs    int
)

func init() {
	lowerCmd.Flags().StringVar(&lowerBackend, "backend", "", "target backend (default from ember.toml, then cuda)")
	lowerCmd.Flags().StringArrayVarP(&lowerExprs, "expr", "e", nil, "probe a single intrinsic, e.g. sin:float32")
	lowerCmd.Flags().BoolVar(&lowerNoCache, "no-cache", false, "bypass the lowering cache")
	lowerCmd.Flags().IntVar(&lowerJobs, "jobs", 0, "parallel lowering jobs (0 = NumCPU)")
}

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] [file.em]",
	Short: "Lower abstract intrinsics in a kernel IR file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lowerExecution,
}

// backendEnv bundles the sealed registry, interner, table and lowerer of
// one backend.
type backendEnv struct {
	reg *ir.OpRegistry
	tys *types.Interner
	tbl *intrin.Table
	low *lower.Lowerer
}

func newBackendEnv(backend string) (*backendEnv, error) {
	reg := ir.NewOpRegistry()
	ir.RegisterBuiltins(reg)
	tys := types.NewInterner()
	tbl := intrin.NewTable()
	switch backend {
	case cuda.Backend:
		cuda.Register(tbl, reg, tys)
	default:
		return nil, fmt.Errorf("unknown backend %q (supported: cuda)", backend)
	}
	reg.Seal()
	tbl.Seal()
	return &backendEnv{
		reg: reg,
		tys: tys,
		tbl: tbl,
		low: lower.New(tbl, reg, tys, backend),
	}, nil
}

func lowerExecution(cmd *cobra.Command, args []string) error {
	applyColorMode(cmd)
	quiet, _ := cmd.Flags().GetBool("quiet")
	maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	backend := resolveBackend(lowerBackend, manifest)
	env, err := newBackendEnv(backend)
	if err != nil {
		return err
	}

	if len(lowerExprs) > 0 {
		return runProbes(cmd, env, backend)
	}
	if len(args) != 1 {
		return fmt.Errorf("expected a kernel IR file or --expr probes")
	}
	return lowerFile(cmd, env, backend, args[0], quiet, maxDiag)
}

// runProbes resolves name:type pairs straight through the rule table and
// prints the produced symbol, without constructing a module.
func runProbes(cmd *cobra.Command, env *backendEnv, backend string) error {
	out := cmd.OutOrStdout()
	for _, probe := range lowerExprs {
		base, tyName, ok := strings.Cut(probe, ":")
		if !ok {
			return fmt.Errorf("bad probe %q (want name:type, e.g. sin:float32)", probe)
		}
		tt, err := types.ParseType(tyName)
		if err != nil {
			return err
		}
		op, ok := env.reg.Lookup(ir.IntrinPrefix + base)
		if !ok {
			return fmt.Errorf("unknown intrinsic %q", base)
		}
		arity := env.reg.NumInputs(op)
		args := make([]ir.Expr, 0, arity)
		for i := 0; i < arity; i++ {
			args = append(args, ir.Var(fmt.Sprintf("a%d", i), types.NoTypeID))
		}
		call := ir.OpCall(op, env.tys.Intern(tt), args...)
		lowered, changed, err := env.low.LowerCall(call)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(out, "%-20s -> no %s lowering for %s\n", base+":"+tyName, backend, tyName)
			continue
		}
		fmt.Fprintf(out, "%-20s -> %s\n", base+":"+tyName, loweredName(env.reg, lowered))
	}
	return nil
}

func loweredName(reg *ir.OpRegistry, call ir.Call) string {
	switch call.Callee.Kind {
	case ir.CalleeExtern:
		return call.Callee.Sym
	case ir.CalleeOp:
		if sym, ok := reg.AttrString(call.Callee.Op, ir.AttrGlobalSymbol); ok {
			return sym
		}
		return reg.Name(call.Callee.Op)
	default:
		return "?"
	}
}

// parseAndValidate reads kernel IR text and checks it against the sealed
// registry. Reader failures carry the ParseSyntax code so they line up
// with the diagnostics the lowering phases emit.
func parseAndValidate(src []byte, env *backendEnv) (*ir.Module, error) {
	mod, err := ir.ParseModule(bytes.NewReader(src), env.reg, env.tys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diag.ParseSyntax, err)
	}
	if err := ir.Validate(mod, env.reg, env.tys); err != nil {
		return nil, err
	}
	return mod, nil
}

func lowerFile(cmd *cobra.Command, env *backendEnv, backend, path string, quiet bool, maxDiag int) error {
	out := cmd.OutOrStdout()
	timings, _ := cmd.Flags().GetBool("timings")
	timer := observ.NewTimer()

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !lowerNoCache {
		if cache, err = driver.OpenDiskCache("ember"); err != nil {
			// Cache trouble must not block lowering.
			cache = nil
		}
	}
	key := driver.HashInput(src, backend)
	if cache != nil {
		var hit driver.DiskPayload
		if ok, _ := cache.Get(key, &hit); ok {
			if !quiet {
				printWarnings(hit.Warnings)
			}
			fmt.Fprint(out, hit.Dump)
			return nil
		}
	}

	phase := timer.Begin("parse")
	mod, err := parseAndValidate(src, env)
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d funcs", len(mod.Funcs)))

	phase = timer.Begin("lower")
	results, err := driver.LowerModule(context.Background(), env.low, mod, lowerJobs, maxDiag)
	timer.End(phase, backend)
	bag := driver.MergeBags(results, maxDiag)
	if err != nil {
		printDiagnostics(bag)
		return err
	}
	if !quiet {
		printDiagnostics(bag)
	}

	var dump strings.Builder
	if err := ir.DumpModule(&dump, mod, env.reg, env.tys); err != nil {
		return err
	}
	fmt.Fprint(out, dump.String())

	if cache != nil {
		payload := &driver.DiskPayload{
			Name:          mod.Name,
			Backend:       backend,
			Dump:          dump.String(),
			ExternSymbols: externSymbols(mod, env.reg),
			Warnings:      renderedWarnings(bag),
		}
		if err := cache.Put(key, payload); err != nil && !quiet {
			fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
		}
	}
	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

func externSymbols(mod *ir.Module, reg *ir.OpRegistry) []string {
	seen := map[string]bool{}
	for _, f := range mod.Funcs {
		for i := range f.Body {
			c := &f.Body[i]
			if c.Effect != ir.EffectPureExtern {
				continue
			}
			if name := loweredName(reg, *c); name != "" {
				seen[name] = true
			}
		}
	}
	syms := make([]string, 0, len(seen))
	for s := range seen {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

func renderedWarnings(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			out = append(out, d.Func+": "+d.Message)
		}
	}
	return out
}

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

func printDiagnostics(bag *diag.Bag) {
	for _, d := range bag.Items() {
		c := warnColor
		if d.Severity == diag.SevError {
			c = errorColor
		}
		c.Fprintf(os.Stderr, "%s[%s]", d.Severity, d.Code)
		fmt.Fprintf(os.Stderr, " %s: %s\n", d.Func, d.Message)
	}
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		warnColor.Fprint(os.Stderr, "WARNING")
		fmt.Fprintf(os.Stderr, " %s\n", w)
	}
}
