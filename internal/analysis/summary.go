package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// DemandSummary is a deployment-level overview used for ranking: raw demand
// statistics plus the grid-search commitment optimum and its savings against
// the two naive policies (no commitment at all, commit to the peak).
type DemandSummary struct {
	Region int

	Start time.Time
	End   time.Time

	Count int

	MinUsage  float64
	MaxUsage  float64
	MeanUsage float64
	P05Usage  float64
	P95Usage  float64

	Premium float64

	OptimalLevel float64
	OptimalCost  float64

	// OnDemandOnlyCost serves the whole series at the premium rate with no
	// commitment; PeakCommitCost buys the peak for every hour.
	OnDemandOnlyCost float64
	PeakCommitCost   float64

	// Savings is the optimum's advantage over the better naive policy.
	Savings float64
}

// ComputeSummary builds the summary for one deployment's aggregated series.
// The optimum comes from grid search (the reference strategy) at the given
// resolution.
func ComputeSummary(region int, series model.DemandSeries, premium float64, steps int) (DemandSummary, error) {
	res, err := search.Grid(series, search.Options{Premium: premium, Steps: steps})
	if err != nil {
		return DemandSummary{}, err
	}

	s := DemandSummary{
		Region:  region,
		Start:   series.Start(),
		End:     series.End(),
		Count:   len(series),
		Premium: premiumOrDefault(premium),
	}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(series))
	for _, smp := range series {
		v := smp.Usage
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.MinUsage = minv
	s.MaxUsage = maxv
	s.MeanUsage = sum / float64(len(vals))
	s.P05Usage = percentileSorted(vals, 0.05)
	s.P95Usage = percentileSorted(vals, 0.95)

	s.OptimalLevel = res.Level
	s.OptimalCost = res.Cost

	// Both baselines fall out of the same cost model at the bound levels.
	intervals := float64(series.Intervals())
	usageSum := sum - series[len(series)-1].Usage // left endpoints only
	s.OnDemandOnlyCost = usageSum * s.Premium
	s.PeakCommitCost = intervals * maxv

	baseline := math.Min(s.OnDemandOnlyCost, s.PeakCommitCost)
	s.Savings = baseline - s.OptimalCost
	return s, nil
}

func premiumOrDefault(p float64) float64 {
	if p == 0 {
		return commit.DefaultPremium
	}
	return p
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
