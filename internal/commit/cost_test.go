package commit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

func hourlySeries(usages ...float64) model.DemandSeries {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.DemandSeries, 0, len(usages))
	for i, u := range usages {
		s = append(s, model.Sample{Timestamp: start.Add(time.Duration(i) * time.Hour), Usage: u})
	}
	return s
}

// syntheticUsage gives a deterministic non-trivial demand shape.
func syntheticUsage(i int) float64 {
	return 50 + 40*math.Sin(float64(i)/3) + float64(i%7)
}

func TestEvaluateDecomposition(t *testing.T) {
	const premium = 2.1
	for _, n := range []int{3, 10, 48, 100} {
		usages := make([]float64, n)
		for i := range usages {
			usages[i] = syntheticUsage(i)
		}
		series := hourlySeries(usages...)
		level := (series.MinUsage() + series.MaxUsage()) / 2

		seg, err := Evaluate(series, level, premium)
		if err != nil {
			t.Fatalf("n=%d: Evaluate: %v", n, err)
		}
		if len(seg.Rows) != n-1 {
			t.Fatalf("n=%d: got %d rows, want %d", n, len(seg.Rows), n-1)
		}

		sum := 0.0
		for i, r := range seg.Rows {
			u := usages[i]
			if r.Used != math.Min(u, level) {
				t.Errorf("n=%d row %d: used = %v, want %v", n, i, r.Used, math.Min(u, level))
			}
			if r.Unused != math.Max(level-u, 0) {
				t.Errorf("n=%d row %d: unused = %v, want %v", n, i, r.Unused, math.Max(level-u, 0))
			}
			if r.OnDemandRaw != math.Max(u-level, 0) {
				t.Errorf("n=%d row %d: onDemandRaw = %v, want %v", n, i, r.OnDemandRaw, math.Max(u-level, 0))
			}
			if got, want := r.Total, r.Used+r.Unused+r.OnDemandRaw*premium; math.Abs(got-want) > 1e-9 {
				t.Errorf("n=%d row %d: total = %v, want %v", n, i, got, want)
			}
			if !r.Start.Equal(series[i].Timestamp) {
				t.Errorf("n=%d row %d: start = %v, want %v", n, i, r.Start, series[i].Timestamp)
			}
			sum += r.Total
		}
		if math.Abs(seg.Total-sum) > 1e-9 {
			t.Errorf("n=%d: Total = %v, want row sum %v", n, seg.Total, sum)
		}
		if got, want := seg.Total, seg.UsedTotal+seg.UnusedTotal+seg.OnDemandRawTotal*premium; math.Abs(got-want) > 1e-9 {
			t.Errorf("n=%d: totals do not decompose: %v vs %v", n, got, want)
		}
	}
}

func TestEvaluateBoundaryLevels(t *testing.T) {
	usages := []float64{10, 30, 20, 50, 40, 15}
	series := hourlySeries(usages...)

	atMax, err := Evaluate(series, series.MaxUsage(), 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range atMax.Rows {
		if r.OnDemandRaw != 0 {
			t.Errorf("level=max row %d: onDemandRaw = %v, want 0", i, r.OnDemandRaw)
		}
	}

	atMin, err := Evaluate(series, series.MinUsage(), 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range atMin.Rows {
		if r.Unused != 0 {
			t.Errorf("level=min row %d: unused = %v, want 0", i, r.Unused)
		}
	}
}

func TestEvaluatePremiumMonotonic(t *testing.T) {
	series := hourlySeries(10, 30, 20, 50, 40, 15)
	level := 25.0 // some intervals overflow

	prev := -1.0
	for _, premium := range []float64{1, 1.5, 2, 2.1, 3} {
		seg, err := Evaluate(series, level, premium)
		if err != nil {
			t.Fatal(err)
		}
		if seg.OnDemandRawTotal <= 0 {
			t.Fatal("test series should have on-demand overflow at this level")
		}
		if seg.Total <= prev {
			t.Errorf("premium %v: total %v did not increase from %v", premium, seg.Total, prev)
		}
		prev = seg.Total
	}
}

// The two-day worked example: 24 hours at 10, then 24 at 20, premium 2.
// Expected totals are recomputed from the per-interval formula, not
// hardcoded.
func TestEvaluateTwoDayExample(t *testing.T) {
	usages := make([]float64, 48)
	for i := range usages {
		usages[i] = 10
		if i >= 24 {
			usages[i] = 20
		}
	}
	series := hourlySeries(usages...)

	for _, level := range []float64{10, 15, 20} {
		want := 0.0
		for i := 0; i < len(usages)-1; i++ {
			u := usages[i]
			want += math.Min(u, level) + math.Max(level-u, 0) + math.Max(u-level, 0)*2
		}
		seg, err := Evaluate(series, level, 2)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(seg.Total-want) > 1e-9 {
			t.Errorf("level %v: total = %v, want %v", level, seg.Total, want)
		}
	}

	// Among the three candidate levels, 10 must win.
	best := math.Inf(1)
	bestLevel := 0.0
	for _, level := range []float64{10, 15, 20} {
		total, err := Total(series, level, 2)
		if err != nil {
			t.Fatal(err)
		}
		if total < best {
			best = total
			bestLevel = level
		}
	}
	if bestLevel != 10 {
		t.Errorf("best candidate level = %v, want 10", bestLevel)
	}
}

func TestEvaluateInvalidSeries(t *testing.T) {
	for _, series := range []model.DemandSeries{nil, hourlySeries(5), hourlySeries(1, -1)} {
		_, err := Evaluate(series, 10, 2)
		if err == nil {
			t.Fatalf("Evaluate(%v) = nil error, want invalid input", series)
		}
		if !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("error %v is not ErrInvalidInput", err)
		}
	}
}
