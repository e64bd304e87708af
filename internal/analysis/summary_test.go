package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

func twoDaySeries() model.DemandSeries {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	s := make(model.DemandSeries, 0, 48)
	for i := 0; i < 48; i++ {
		usage := 10.0
		if i >= 24 {
			usage = 20.0
		}
		s = append(s, model.Sample{Timestamp: start.Add(time.Duration(i) * time.Hour), Usage: usage})
	}
	return s
}

func TestComputeSummaryTwoDay(t *testing.T) {
	series := twoDaySeries()
	s, err := ComputeSummary(7, series, 2, 11)
	if err != nil {
		t.Fatal(err)
	}

	if s.Region != 7 || s.Count != 48 {
		t.Errorf("region/count = %d/%d", s.Region, s.Count)
	}
	if s.MinUsage != 10 || s.MaxUsage != 20 || s.MeanUsage != 15 {
		t.Errorf("min/max/mean = %v/%v/%v", s.MinUsage, s.MaxUsage, s.MeanUsage)
	}
	if s.P05Usage != 10 || s.P95Usage != 20 {
		t.Errorf("p05/p95 = %v/%v", s.P05Usage, s.P95Usage)
	}

	// 47 intervals: 24 at usage 10, 23 at usage 20. Committing at 10 costs
	// 24*10 + 23*(10 + 10*2) = 930 and beats every other candidate.
	if s.OptimalLevel != 10 {
		t.Errorf("optimal level = %v, want 10", s.OptimalLevel)
	}
	if math.Abs(s.OptimalCost-930) > 1e-9 {
		t.Errorf("optimal cost = %v, want 930", s.OptimalCost)
	}

	// No commitment: (24*10 + 23*20) * 2 = 1400. Peak commit: 47 * 20 = 940.
	if math.Abs(s.OnDemandOnlyCost-1400) > 1e-9 {
		t.Errorf("on-demand-only cost = %v, want 1400", s.OnDemandOnlyCost)
	}
	if math.Abs(s.PeakCommitCost-940) > 1e-9 {
		t.Errorf("peak-commit cost = %v, want 940", s.PeakCommitCost)
	}
	if math.Abs(s.Savings-10) > 1e-9 {
		t.Errorf("savings = %v, want 10 (vs peak commit)", s.Savings)
	}
}

func TestComputeSummaryShortSeries(t *testing.T) {
	one := model.DemandSeries{{Timestamp: time.Now(), Usage: 5}}
	if _, err := ComputeSummary(0, one, 2, 11); err == nil {
		t.Error("expected error for single-sample series")
	}
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.5, 3},
		{0.25, 2},
		{1, 5},
		{0.95, 4.8},
	}
	for _, tt := range tests {
		if got := percentileSorted(vals, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("q=%v: got %v, want %v", tt.q, got, tt.want)
		}
	}
	if got := percentileSorted(nil, 0.5); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
}

func regionRecords(region int, usages []float64) []model.UsageRecord {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	out := make([]model.UsageRecord, 0, len(usages))
	for i, u := range usages {
		out = append(out, model.UsageRecord{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			VMType:    "a1b2",
			Region:    region,
			Count:     u,
		})
	}
	return out
}

func TestRankBySavings(t *testing.T) {
	spiky := make([]float64, 48)
	for i := range spiky {
		spiky[i] = 5
		if i%12 == 0 {
			spiky[i] = 90
		}
	}
	flat := []float64{10, 10, 10, 10}

	byRegion := map[int][]model.UsageRecord{
		1: regionRecords(1, spiky),
		5: regionRecords(5, flat),
		2: regionRecords(2, flat),
	}

	ranked, err := RankBySavings(byRegion, 2, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 3 {
		t.Fatalf("got %d entries, want 3", len(ranked))
	}
	if ranked[0].Region != 1 {
		t.Errorf("top region = %d, want the spiky deployment", ranked[0].Region)
	}
	if ranked[0].Savings <= 0 {
		t.Errorf("spiky savings = %v, want > 0", ranked[0].Savings)
	}
	// Flat deployments save nothing and tie-break by region id.
	if ranked[1].Region != 2 || ranked[2].Region != 5 {
		t.Errorf("tie order = %d, %d, want 2, 5", ranked[1].Region, ranked[2].Region)
	}
	for _, r := range ranked[1:] {
		if math.Abs(r.Savings) > 1e-9 {
			t.Errorf("flat region %d savings = %v, want 0", r.Region, r.Savings)
		}
	}
}
