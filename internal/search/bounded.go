package search

import (
	"fmt"
	"math"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// invPhi is the golden-section reduction ratio.
var invPhi = (math.Sqrt(5) - 1) / 2

// Bounded runs a derivative-free golden-section minimization over
// [min(usage), max(usage)], converging to opts.Tolerance on the level.
// On well-behaved (convex) demand the bracket contains the global minimum;
// on multi-modal input the result may be a local flat. The returned cost is
// recomputed at the final clamped level, so it matches commit.Evaluate
// exactly.
func Bounded(series model.DemandSeries, opts Options) (Result, error) {
	premium := opts.premium()
	if err := validate(series, premium); err != nil {
		return Result{}, err
	}
	tol := opts.tolerance()
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		return Result{}, fmt.Errorf("%w: tolerance must be a positive finite value, got %v", model.ErrInvalidInput, tol)
	}

	lo, hi := series.MinUsage(), series.MaxUsage()
	f := objective(series, premium)

	a, b := lo, hi
	if b-a > tol {
		c := b - invPhi*(b-a)
		d := a + invPhi*(b-a)
		fc, fd := f(c), f(d)

		for iter := 0; b-a > tol && iter < opts.maxIter(); iter++ {
			if fc < fd {
				b, d, fd = d, c, fc
				c = b - invPhi*(b-a)
				fc = f(c)
			} else {
				a, c, fc = c, d, fd
				d = a + invPhi*(b-a)
				fd = f(d)
			}
		}
	}

	level := clamp((a+b)/2, lo, hi)
	return Result{Method: MethodBounded, Level: level, Cost: f(level)}, nil
}
