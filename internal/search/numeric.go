package search

import (
	"fmt"
	"math"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// Numeric runs a gradient-free Nelder-Mead style local search in one
// dimension, seeded at opts.InitialGuess (midpoint of the usage bounds when
// no guess is given). Candidates that stray outside
// [min(usage), max(usage)] are clamped back in. Like Bounded, this is a
// local method: it carries no global-optimality guarantee on multi-modal
// demand.
func Numeric(series model.DemandSeries, opts Options) (Result, error) {
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

	guess := (lo + hi) / 2
	if opts.HasGuess {
		if math.IsNaN(opts.InitialGuess) || math.IsInf(opts.InitialGuess, 0) {
			return Result{}, fmt.Errorf("%w: initial guess must be finite", model.ErrInvalidInput)
		}
		guess = clamp(opts.InitialGuess, lo, hi)
	}

	if hi == lo {
		return Result{Method: MethodNumeric, Level: lo, Cost: f(lo)}, nil
	}

	// Two-point simplex: best and worst vertex.
	step := (hi - lo) * 0.05
	best, worst := guess, clamp(guess+step, lo, hi)
	if worst == best {
		worst = clamp(guess-step, lo, hi)
	}
	fBest, fWorst := f(best), f(worst)
	if fWorst < fBest {
		best, worst = worst, best
		fBest, fWorst = fWorst, fBest
	}

	for iter := 0; iter < opts.maxIter() && math.Abs(worst-best) > tol; iter++ {
		// Reflect the worst vertex through the best.
		r := clamp(best+(best-worst), lo, hi)
		fr := f(r)
		if fr < fBest {
			// Try expanding further in the same direction.
			e := clamp(best+2*(best-worst), lo, hi)
			fe := f(e)
			if fe < fr {
				worst, fWorst = e, fe
			} else {
				worst, fWorst = r, fr
			}
		} else {
			// Contract toward the best vertex.
			c := (best + worst) / 2
			fc := f(c)
			if fc < fWorst {
				worst, fWorst = c, fc
			} else {
				// Shrink: pull the worst halfway in regardless.
				worst = (best + worst) / 2
				fWorst = f(worst)
			}
		}
		if fWorst < fBest {
			best, worst = worst, best
			fBest, fWorst = fWorst, fBest
		}
	}

	level := clamp(best, lo, hi)
	return Result{Method: MethodNumeric, Level: level, Cost: f(level)}, nil
}
