package commit

import (
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// DefaultPremium is the on-demand multiplier used when the caller does not
// supply one. It matches the rate spread assumed throughout the dataset's
// accompanying analysis.
const DefaultPremium = 2.1

// SegmentRow is the cost breakdown for one hourly interval.
// The interval is identified by its start timestamp; the usage that prices it
// is the earlier sample's value (left-endpoint convention, kept for numeric
// reproducibility with the published figures).
type SegmentRow struct {
	Index int
	Start time.Time

	Usage float64
	Level float64

	Used         float64 // committed capacity actually consumed
	Unused       float64 // committed capacity wasted this hour
	OnDemandRaw  float64 // demand above the commitment, before the premium
	OnDemandCost float64 // OnDemandRaw * premium

	Total float64
}

// CostSegments is the full per-interval decomposition of serving a demand
// series at one flat commitment level, plus totals across the series.
type CostSegments struct {
	Level   float64
	Premium float64

	Rows []SegmentRow

	UsedTotal         float64
	UnusedTotal       float64
	OnDemandRawTotal  float64
	OnDemandCostTotal float64
	Total             float64
}

// Evaluate prices a demand series against a flat commitment level.
//
// Per interval: used = min(usage, level), unused = max(level-usage, 0),
// onDemandRaw = max(usage-level, 0), and the interval total is
// used + unused + onDemandRaw*premium. O(n) in the series length.
//
// Premiums below 1 are not rejected here; the search and serving layers
// enforce that bound.
func Evaluate(series model.DemandSeries, level, premium float64) (CostSegments, error) {
	if err := series.Validate(); err != nil {
		return CostSegments{}, err
	}

	seg := CostSegments{
		Level:   level,
		Premium: premium,
		Rows:    make([]SegmentRow, 0, len(series)-1),
	}

	for i := 0; i < len(series)-1; i++ {
		usage := series[i].Usage

		used := usage
		if used > level {
			used = level
		}
		unused := level - usage
		if unused < 0 {
			unused = 0
		}
		odRaw := usage - level
		if odRaw < 0 {
			odRaw = 0
		}
		odCost := odRaw * premium

		row := SegmentRow{
			Index:        i,
			Start:        series[i].Timestamp,
			Usage:        usage,
			Level:        level,
			Used:         used,
			Unused:       unused,
			OnDemandRaw:  odRaw,
			OnDemandCost: odCost,
			Total:        used + unused + odCost,
		}
		seg.Rows = append(seg.Rows, row)

		seg.UsedTotal += used
		seg.UnusedTotal += unused
		seg.OnDemandRawTotal += odRaw
		seg.OnDemandCostTotal += odCost
		seg.Total += row.Total
	}

	return seg, nil
}

// Total is a convenience wrapper for callers that only need the scalar total.
func Total(series model.DemandSeries, level, premium float64) (float64, error) {
	seg, err := Evaluate(series, level, premium)
	if err != nil {
		return 0, err
	}
	return seg.Total, nil
}
