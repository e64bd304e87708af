// Package search finds the flat commitment level minimizing the total cost
// of serving a demand series.
//
// Three interchangeable strategies are offered. Grid search is the reference:
// it is exhaustive over its candidate set and deterministic under ties. The
// bounded (golden-section) and numeric (Nelder-Mead style) minimizers are
// faster heuristics; the objective is piecewise linear and usually convex,
// but on multi-modal demand they may settle on a local flat rather than the
// global minimum. Callers that need certified optimality should use grid
// search with sufficient resolution.
package search

import (
	"fmt"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// Method selects one of the closed set of level-search strategies.
type Method string

const (
	MethodGrid    Method = "grid"
	MethodBounded Method = "bounded"
	MethodNumeric Method = "numeric"
)

// Options carries the per-strategy knobs. Zero values select the defaults.
type Options struct {
	// Premium is the on-demand multiplier. Default commit.DefaultPremium.
	Premium float64

	// Steps is the grid resolution (grid only). Default 100.
	Steps int

	// Tolerance is the absolute convergence tolerance on the level
	// (bounded and numeric). Default 1e-3.
	Tolerance float64

	// InitialGuess seeds the numeric minimizer when HasGuess is set.
	// Default: midpoint of [min(usage), max(usage)].
	InitialGuess float64
	HasGuess     bool

	// MaxIter caps minimizer iterations (bounded and numeric). Default 200.
	MaxIter int

	// Workers > 1 evaluates the grid in parallel (grid only). The result is
	// identical to the serial sweep.
	Workers int
}

func (o Options) premium() float64 {
	if o.Premium == 0 {
		return commit.DefaultPremium
	}
	return o.Premium
}

func (o Options) steps() int {
	if o.Steps == 0 {
		return 100
	}
	return o.Steps
}

func (o Options) tolerance() float64 {
	if o.Tolerance == 0 {
		return 1e-3
	}
	return o.Tolerance
}

func (o Options) maxIter() int {
	if o.MaxIter <= 0 {
		return 200
	}
	return o.MaxIter
}

// Result is one optimization outcome. Cost always equals
// commit.Evaluate(series, Level, premium).Total for the same inputs.
type Result struct {
	Method Method
	Level  float64
	Cost   float64
}

// Minimize dispatches to the strategy named by method.
func Minimize(series model.DemandSeries, method Method, opts Options) (Result, error) {
	switch method {
	case MethodGrid:
		return Grid(series, opts)
	case MethodBounded:
		return Bounded(series, opts)
	case MethodNumeric:
		return Numeric(series, opts)
	default:
		return Result{}, fmt.Errorf("%w: unknown search method %q", model.ErrInvalidInput, method)
	}
}

// validate runs the shared eager checks for every strategy.
func validate(series model.DemandSeries, premium float64) error {
	if err := series.Validate(); err != nil {
		return err
	}
	return model.ValidatePremium(premium)
}

// objective binds series and premium into a level -> total cost function.
// The series must already be validated; Evaluate cannot fail after that.
func objective(series model.DemandSeries, premium float64) func(float64) float64 {
	return func(level float64) float64 {
		seg, _ := commit.Evaluate(series, level, premium)
		return seg.Total
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
