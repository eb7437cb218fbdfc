package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/ir"
	"ember/internal/lower"
)

// FuncResult holds the per-function outcome of a parallel lowering run.
type FuncResult struct {
	Name string
	Bag  *diag.Bag
	Err  error
}

// LowerModule lowers every function of the module, fanning out across
// jobs goroutines (NumCPU when jobs <= 0). Rules are pure and the rule
// table is sealed, so functions lower independently; per-function
// diagnostic bags keep the merged output deterministic regardless of
// scheduling. The first fatal error cancels the remaining work.
func LowerModule(ctx context.Context, l *lower.Lowerer, mod *ir.Module, jobs int, maxDiag int) ([]FuncResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]FuncResult, len(mod.Funcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range mod.Funcs {
		if f == nil {
			continue
		}
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(maxDiag)
			fl := *l
			fl.Reporter = diag.BagReporter{Bag: bag}
			err := fl.LowerFunc(f)
			results[i] = FuncResult{Name: f.Name, Bag: bag, Err: err}
			return err
		})
	}
	err := g.Wait()
	return results, err
}

// MergeBags folds per-function bags into one canonically sorted bag.
func MergeBags(results []FuncResult, maxDiag int) *diag.Bag {
	out := diag.NewBag(maxDiag)
	for _, r := range results {
		out.Merge(r.Bag)
	}
	out.Sort()
	return out
}
