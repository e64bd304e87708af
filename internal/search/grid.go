package search

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// Grid evaluates opts.Steps equally spaced levels across
// [min(usage), max(usage)] inclusive and returns the argmin.
// Exact ties go to the lowest level, so repeated runs are deterministic even
// though the piecewise-linear objective can be flat across candidates.
// Steps == 1 degenerates to evaluating the single midpoint level.
func Grid(series model.DemandSeries, opts Options) (Result, error) {
	premium := opts.premium()
	if err := validate(series, premium); err != nil {
		return Result{}, err
	}
	steps := opts.steps()
	if steps < 1 {
		return Result{}, fmt.Errorf("%w: steps must be >= 1, got %d", model.ErrInvalidInput, steps)
	}

	lo, hi := series.MinUsage(), series.MaxUsage()
	levels := gridLevels(lo, hi, steps)
	f := objective(series, premium)

	var costs []float64
	if opts.Workers > 1 {
		costs = sweepParallel(f, levels, opts.Workers)
	} else {
		costs = make([]float64, len(levels))
		for i, lvl := range levels {
			costs[i] = f(lvl)
		}
	}

	best := 0
	for i := 1; i < len(costs); i++ {
		if costs[i] < costs[best] {
			best = i
		}
	}
	return Result{Method: MethodGrid, Level: levels[best], Cost: costs[best]}, nil
}

func gridLevels(lo, hi float64, steps int) []float64 {
	if steps == 1 || hi == lo {
		if steps == 1 {
			return []float64{(lo + hi) / 2}
		}
		levels := make([]float64, steps)
		for i := range levels {
			levels[i] = lo
		}
		return levels
	}
	levels := make([]float64, steps)
	span := hi - lo
	for i := range levels {
		levels[i] = lo + span*float64(i)/float64(steps-1)
	}
	// Pin the endpoint so rounding cannot push it past hi.
	levels[steps-1] = hi
	return levels
}

// sweepParallel evaluates the candidate levels across workers. Each
// candidate's cost lands at its own index, so the caller's lowest-index
// argmin scan gives the same answer as the serial sweep.
func sweepParallel(f func(float64) float64, levels []float64, workers int) []float64 {
	if workers > len(levels) {
		workers = len(levels)
	}
	costs := make([]float64, len(levels))

	var g errgroup.Group
	chunk := (len(levels) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(levels) {
			end = len(levels)
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				costs[i] = f(levels[i])
			}
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()
	return costs
}
