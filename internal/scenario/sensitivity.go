package scenario

import (
	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// Sensitivity reports the cost of committing off today's actuals versus off
// a trend-projected forecast, both scored against the same future load.
type Sensitivity struct {
	Weeks       int
	AnnualTrend float64

	// ActualsLevel was searched on the historical series; ForecastLevel on
	// the projected future weeks.
	ActualsLevel  float64
	ForecastLevel float64

	// Costs of serving the future weeks at each level.
	ActualsCost  float64
	ForecastCost float64

	// Delta = ActualsCost - ForecastCost (>= 0 when the forecast-driven
	// level is at least as good). Ratio = ActualsCost / ForecastCost; an
	// all-zero future costs 0 either way, which reads as Ratio 1, not 0.
	Delta float64
	Ratio float64
}

// CompareForecast answers: if demand grows by annualTrend, how much extra
// cost results from setting the commitment level on today's data instead of
// on the weeks-ahead forecast? Both levels come from the same search method;
// both are costed against the generated future weeks only.
func CompareForecast(series model.DemandSeries, weeks int, annualTrend float64, method search.Method, opts search.Options) (Sensitivity, error) {
	extended, err := Extend(series, weeks, annualTrend)
	if err != nil {
		return Sensitivity{}, err
	}
	future := FutureOnly(extended, series)

	actuals, err := search.Minimize(series, method, opts)
	if err != nil {
		return Sensitivity{}, err
	}
	forecast, err := search.Minimize(future, method, opts)
	if err != nil {
		return Sensitivity{}, err
	}

	premium := opts.Premium
	if premium == 0 {
		premium = commit.DefaultPremium
	}
	actualsCost, err := commit.Total(future, actuals.Level, premium)
	if err != nil {
		return Sensitivity{}, err
	}

	s := Sensitivity{
		Weeks:         weeks,
		AnnualTrend:   annualTrend,
		ActualsLevel:  actuals.Level,
		ForecastLevel: forecast.Level,
		ActualsCost:   actualsCost,
		ForecastCost:  forecast.Cost,
		Delta:         actualsCost - forecast.Cost,
	}
	switch {
	case s.ForecastCost != 0:
		s.Ratio = s.ActualsCost / s.ForecastCost
	case s.ActualsCost == 0:
		// Both plans are free on a zero future: parity.
		s.Ratio = 1
	}
	return s, nil
}
