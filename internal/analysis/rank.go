package analysis

import (
	"fmt"
	"sort"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/dataset"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

type RankedSummary struct {
	DemandSummary
}

// RankBySavings aggregates each deployment's records, summarizes them, and
// sorts descending by commitment savings. Region id breaks ties so the
// ordering is stable across runs.
func RankBySavings(byRegion map[int][]model.UsageRecord, premium float64, steps int) ([]RankedSummary, error) {
	out := make([]RankedSummary, 0, len(byRegion))
	for region, records := range byRegion {
		series := dataset.Aggregate(records)
		s, err := ComputeSummary(region, series, premium, steps)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", region, err)
		}
		out = append(out, RankedSummary{DemandSummary: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Savings != out[j].Savings {
			return out[i].Savings > out[j].Savings
		}
		return out[i].Region < out[j].Region
	})
	return out, nil
}
