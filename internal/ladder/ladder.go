// Package ladder splits a multi-week demand series into sub-periods, commits
// to an independently optimized level per sub-period, and compares the total
// against a single flat commitment for the whole range.
package ladder

import (
	"fmt"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/scenario"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// Rung is one sub-period of a ladder plan: the range of sample indices it
// covers and the commitment level bought for it.
type Rung struct {
	Start      time.Time
	StartIndex int // inclusive
	EndIndex   int // exclusive
	Level      float64
	Cost       float64 // cost of the rung's charged intervals at Level
}

// Plan is an ordered set of rungs covering a series contiguously and
// exhaustively: rung i ends exactly where rung i+1 begins.
type Plan struct {
	Rungs []Rung
}

// Partition splits the series into contiguous sub-series of periodHours
// samples each (weekly by default). A trailing remainder becomes a final
// shorter sub-period; a single-sample remainder is folded into the previous
// sub-period so every sub-series stays costable.
func Partition(series model.DemandSeries, periodHours int) ([]model.DemandSeries, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if periodHours == 0 {
		periodHours = scenario.HoursPerWeek
	}
	if periodHours < 2 {
		return nil, fmt.Errorf("%w: period must be at least 2 hours, got %d", model.ErrInvalidInput, periodHours)
	}

	var parts []model.DemandSeries
	for start := 0; start < len(series); start += periodHours {
		end := start + periodHours
		if end > len(series) {
			end = len(series)
		}
		if end-start == 1 {
			// Fold the lone trailing sample into the previous sub-period.
			last := parts[len(parts)-1]
			parts[len(parts)-1] = series[start-len(last) : end]
			break
		}
		parts = append(parts, series[start:end])
	}
	return parts, nil
}

// BuildPlan runs the level search independently on each sub-series and
// assembles the resulting rungs into a contiguous plan.
//
// Every rung except the last is searched with the next sub-period's first
// sample appended: EvaluatePlan charges the interval crossing the boundary
// to the earlier rung, so that interval must be part of the rung's
// objective. The extended windows make the charged intervals partition the
// series exactly, which is what keeps a ladder of per-rung optima from
// costing more than a single flat level.
func BuildPlan(parts []model.DemandSeries, method search.Method, opts search.Options) (Plan, error) {
	if len(parts) == 0 {
		return Plan{}, fmt.Errorf("%w: no sub-periods", model.ErrInvalidInput)
	}

	plan := Plan{Rungs: make([]Rung, 0, len(parts))}
	offset := 0
	for i, part := range parts {
		sub := part
		if i < len(parts)-1 {
			sub = make(model.DemandSeries, 0, len(part)+1)
			sub = append(sub, part...)
			sub = append(sub, parts[i+1][0])
		}
		res, err := search.Minimize(sub, method, opts)
		if err != nil {
			return Plan{}, fmt.Errorf("sub-period %d: %w", i, err)
		}
		plan.Rungs = append(plan.Rungs, Rung{
			Start:      part.Start(),
			StartIndex: offset,
			EndIndex:   offset + len(part),
			Level:      res.Level,
			Cost:       res.Cost,
		})
		offset += len(part)
	}
	return plan, nil
}

// EvaluatePlan re-walks the whole series, costing each hourly interval at
// the level of the rung containing the interval's left endpoint. Intervals
// spanning a rung boundary are charged to the earlier rung.
func EvaluatePlan(series model.DemandSeries, plan Plan, premium float64) (float64, error) {
	if err := series.Validate(); err != nil {
		return 0, err
	}
	if err := model.ValidatePremium(premium); err != nil {
		return 0, err
	}
	if len(plan.Rungs) == 0 {
		return 0, fmt.Errorf("%w: empty ladder plan", model.ErrInvalidInput)
	}
	if plan.Rungs[0].StartIndex != 0 || plan.Rungs[len(plan.Rungs)-1].EndIndex != len(series) {
		return 0, fmt.Errorf("%w: ladder plan does not cover the series", model.ErrInvalidInput)
	}

	total := 0.0
	rung := 0
	for i := 0; i < len(series)-1; i++ {
		for rung < len(plan.Rungs)-1 && i >= plan.Rungs[rung].EndIndex {
			if plan.Rungs[rung+1].StartIndex != plan.Rungs[rung].EndIndex {
				return 0, fmt.Errorf("%w: ladder plan has a gap at sample %d", model.ErrInvalidInput, i)
			}
			rung++
		}
		usage := series[i].Usage
		level := plan.Rungs[rung].Level

		od := usage - level
		if od < 0 {
			od = 0
		}
		// Committed cost is exactly the level per hour; only the overflow
		// pays the premium.
		total += level + od*premium
	}
	return total, nil
}

// Comparison quantifies laddering against one flat whole-period commitment.
type Comparison struct {
	Plan       Plan
	FlatLevel  float64
	FlatCost   float64
	LadderCost float64
	Savings    float64 // FlatCost - LadderCost
}

// CompareFlat builds a ladder over periodHours sub-periods and scores it
// against the single level found on the whole series. With per-period
// optimal levels the ladder is never worse than the flat commitment; the two
// meet only when every sub-period optimizes to the same level.
func CompareFlat(series model.DemandSeries, periodHours int, method search.Method, opts search.Options) (Comparison, error) {
	parts, err := Partition(series, periodHours)
	if err != nil {
		return Comparison{}, err
	}
	plan, err := BuildPlan(parts, method, opts)
	if err != nil {
		return Comparison{}, err
	}

	premium := opts.Premium
	if premium == 0 {
		premium = commit.DefaultPremium
	}
	ladderCost, err := EvaluatePlan(series, plan, premium)
	if err != nil {
		return Comparison{}, err
	}

	flat, err := search.Minimize(series, method, opts)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Plan:       plan,
		FlatLevel:  flat.Level,
		FlatCost:   flat.Cost,
		LadderCost: ladderCost,
		Savings:    flat.Cost - ladderCost,
	}, nil
}
