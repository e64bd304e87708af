package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// DefaultCeiling is the normalization ceiling used throughout the analysis:
// the busiest hour of a normalized series reads as 100.
const DefaultCeiling = 100.0

// Aggregate collapses raw per-(type, region) records into one hourly demand
// series: group by timestamp, sum counts across all combinations, sort
// ascending. Cadence is not validated here; the dataset files are complete
// hourly and the core treats gaps as a caller error.
func Aggregate(records []model.UsageRecord) model.DemandSeries {
	byHour := map[time.Time]float64{}
	for _, rec := range records {
		byHour[rec.Timestamp] = byHour[rec.Timestamp] + rec.Count
	}

	series := make(model.DemandSeries, 0, len(byHour))
	for ts, usage := range byHour {
		series = append(series, model.Sample{Timestamp: ts, Usage: usage})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	return series
}

// Normalize scales the series so its maximum sample equals ceiling.
// An all-zero series cannot be scaled and surfaces a degenerate
// normalization error rather than a silent divide-by-zero.
func Normalize(series model.DemandSeries, ceiling float64) (model.DemandSeries, error) {
	if ceiling <= 0 {
		return nil, fmt.Errorf("%w: ceiling must be > 0, got %v", model.ErrInvalidInput, ceiling)
	}
	max := series.MaxUsage()
	if max == 0 {
		return nil, fmt.Errorf("%w: cannot scale an all-zero series to ceiling %v", model.ErrDegenerateNormalization, ceiling)
	}

	scale := ceiling / max
	out := make(model.DemandSeries, len(series))
	for i, s := range series {
		out[i] = model.Sample{Timestamp: s.Timestamp, Usage: s.Usage * scale}
	}
	return out, nil
}

// GroupByRegion splits records by deployment region id.
func GroupByRegion(records []model.UsageRecord) map[int][]model.UsageRecord {
	out := map[int][]model.UsageRecord{}
	for _, rec := range records {
		out[rec.Region] = append(out[rec.Region], rec)
	}
	return out
}

// GroupByVMType splits records by the obfuscated SKU label.
func GroupByVMType(records []model.UsageRecord) map[string][]model.UsageRecord {
	out := map[string][]model.UsageRecord{}
	for _, rec := range records {
		out[rec.VMType] = append(out[rec.VMType], rec)
	}
	return out
}
