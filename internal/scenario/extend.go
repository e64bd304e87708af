// Package scenario projects a demand series forward under a compounding
// growth assumption, to measure how sensitive the optimal commitment level
// is to forecasting. The trend is a deterministic multiplicative scenario
// supplied by the caller, not a fitted model.
package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// HoursPerWeek is the length of the weekly template the extension tiles.
const HoursPerWeek = 7 * 24

// Extend replicates the series' trailing week forward in time, week by week,
// for weeks repetitions. The daily growth factor is
// (1+annualTrend)^(1/365); generated week k scales day d (1..7) of the
// template by that factor raised to the cumulative day offset (k-1)*7+d,
// applied uniformly to the 24 hours of the day. Compounding is
// multiplicative: week 2 of the extension carries the day-indexed factors a
// second time on top of week 1's.
//
// The result contains the original series followed by weeks*168 generated
// samples, hourly and strictly increasing. The input must span at least one
// full week.
func Extend(series model.DemandSeries, weeks int, annualTrend float64) (model.DemandSeries, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(series) < HoursPerWeek {
		return nil, fmt.Errorf("%w: extension needs at least one full week (%d samples), got %d",
			model.ErrInvalidInput, HoursPerWeek, len(series))
	}
	if weeks < 0 {
		return nil, fmt.Errorf("%w: weeks must be >= 0, got %d", model.ErrInvalidInput, weeks)
	}
	if annualTrend <= -1 {
		return nil, fmt.Errorf("%w: annual trend must be > -1, got %v", model.ErrInvalidInput, annualTrend)
	}

	out := make(model.DemandSeries, 0, len(series)+weeks*HoursPerWeek)
	out = append(out, series...)

	template := series[len(series)-HoursPerWeek:]
	daily := math.Pow(1+annualTrend, 1.0/365.0)
	last := series[len(series)-1].Timestamp

	hour := 0
	for week := 1; week <= weeks; week++ {
		for day := 1; day <= 7; day++ {
			scale := math.Pow(daily, float64((week-1)*7+day))
			for h := 0; h < 24; h++ {
				hour++
				idx := (day-1)*24 + h
				out = append(out, model.Sample{
					Timestamp: last.Add(time.Duration(hour) * time.Hour),
					Usage:     template[idx].Usage * scale,
				})
			}
		}
	}

	return out, nil
}

// FutureOnly keeps the samples strictly after the original series' end.
// Costing the forecast horizon against levels derived from actuals vs from
// the forecast itself must happen on the same future load.
func FutureOnly(extended, original model.DemandSeries) model.DemandSeries {
	end := original.End()
	out := make(model.DemandSeries, 0, len(extended))
	for _, s := range extended {
		if s.Timestamp.After(end) {
			out = append(out, s)
		}
	}
	return out
}
