package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// Demo:
// - Build a synthetic two-day demand curve (one quiet day, one busy day)
// - Price it at a few commitment levels to show the cost decomposition
// - Run all three search strategies and show they agree on the optimum
func main() {
	premium := flag.Float64("premium", 2.0, "On-demand premium multiplier")
	steps := flag.Int("steps", 3, "Grid resolution")
	flag.Parse()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(model.DemandSeries, 0, 48)
	for h := 0; h < 48; h++ {
		usage := 10.0
		if h >= 24 {
			usage = 20.0
		}
		series = append(series, model.Sample{
			Timestamp: start.Add(time.Duration(h) * time.Hour),
			Usage:     usage,
		})
	}

	fmt.Printf("synthetic series: %d hourly samples, usage %g then %g, premium %.1f\n\n",
		len(series), series[0].Usage, series[47].Usage, *premium)

	for _, level := range []float64{10, 15, 20} {
		seg, err := commit.Evaluate(series, level, *premium)
		if err != nil {
			panic(err)
		}
		fmt.Printf("level=%5.1f  used=%8.2f  unused=%8.2f  on_demand=%8.2f  total=%8.2f\n",
			level, seg.UsedTotal, seg.UnusedTotal, seg.OnDemandCostTotal, seg.Total)
	}
	fmt.Println()

	for _, method := range []search.Method{search.MethodGrid, search.MethodBounded, search.MethodNumeric} {
		res, err := search.Minimize(series, method, search.Options{Premium: *premium, Steps: *steps})
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-8s level=%.4f cost=%.2f\n", res.Method, res.Level, res.Cost)
	}
}
