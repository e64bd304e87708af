package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

const sampleCSV = `timestamp,vm_type,region,count
2024-01-01T00:00:00Z,a1b2,0,5
2024-01-01T00:00:00Z,c3d4,1,3
2024-01-01T01:00:00Z,a1b2,0,8.5
2024-01-01 02:00:00,c3d4,1,2
`

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	first := records[0]
	if first.VMType != "a1b2" || first.Region != 0 || first.Count != 5 {
		t.Errorf("first record = %+v", first)
	}
	if !first.Timestamp.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first timestamp = %v", first.Timestamp)
	}
	// Space-separated layout also parses.
	if !records[3].Timestamp.Equal(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)) {
		t.Errorf("space layout timestamp = %v", records[3].Timestamp)
	}
	if records[2].Count != 8.5 {
		t.Errorf("fractional count = %v, want 8.5", records[2].Count)
	}
}

func TestReadRecordsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"wrong header", "time,sku,dc,n\n2024-01-01T00:00:00Z,a,0,1\n"},
		{"bad timestamp", "timestamp,vm_type,region,count\nyesterday,a,0,1\n"},
		{"bad region", "timestamp,vm_type,region,count\n2024-01-01T00:00:00Z,a,west,1\n"},
		{"bad count", "timestamp,vm_type,region,count\n2024-01-01T00:00:00Z,a,0,lots\n"},
		{"missing column", "timestamp,vm_type,region,count\n2024-01-01T00:00:00Z,a,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRecords(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAggregateSumsAndSorts(t *testing.T) {
	h := func(i int) time.Time { return time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC) }
	// Deliberately out of order: hour 1 first.
	records := []model.UsageRecord{
		{Timestamp: h(1), VMType: "a", Region: 0, Count: 4},
		{Timestamp: h(0), VMType: "a", Region: 0, Count: 5},
		{Timestamp: h(0), VMType: "b", Region: 1, Count: 3},
		{Timestamp: h(1), VMType: "b", Region: 1, Count: 6},
	}

	series := Aggregate(records)
	if len(series) != 2 {
		t.Fatalf("got %d samples, want 2", len(series))
	}
	if !series[0].Timestamp.Equal(h(0)) || !series[1].Timestamp.Equal(h(1)) {
		t.Errorf("series not sorted: %v, %v", series[0].Timestamp, series[1].Timestamp)
	}
	if series[0].Usage != 8 || series[1].Usage != 10 {
		t.Errorf("usage = %v, %v, want 8, 10", series[0].Usage, series[1].Usage)
	}
}

func TestNormalize(t *testing.T) {
	h := func(i int) time.Time { return time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC) }
	series := model.DemandSeries{
		{Timestamp: h(0), Usage: 10},
		{Timestamp: h(1), Usage: 50},
		{Timestamp: h(2), Usage: 25},
	}

	got, err := Normalize(series, DefaultCeiling)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{20, 100, 50}
	for i, w := range want {
		if math.Abs(got[i].Usage-w) > 1e-9 {
			t.Errorf("sample %d: usage = %v, want %v", i, got[i].Usage, w)
		}
	}
	// The input series is left untouched.
	if series[1].Usage != 50 {
		t.Errorf("input mutated: %v", series[1].Usage)
	}
}

func TestNormalizeErrors(t *testing.T) {
	h := func(i int) time.Time { return time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC) }
	zero := model.DemandSeries{{Timestamp: h(0)}, {Timestamp: h(1)}}

	if _, err := Normalize(zero, 100); !errors.Is(err, model.ErrDegenerateNormalization) {
		t.Errorf("all-zero series: error = %v, want ErrDegenerateNormalization", err)
	}
	live := model.DemandSeries{{Timestamp: h(0), Usage: 1}, {Timestamp: h(1), Usage: 2}}
	if _, err := Normalize(live, 0); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("ceiling 0: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Normalize(live, -5); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("ceiling -5: error = %v, want ErrInvalidInput", err)
	}
}

func TestGroupings(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	byRegion := GroupByRegion(records)
	if len(byRegion) != 2 {
		t.Fatalf("got %d regions, want 2", len(byRegion))
	}
	if len(byRegion[0]) != 2 || len(byRegion[1]) != 2 {
		t.Errorf("region sizes = %d, %d, want 2, 2", len(byRegion[0]), len(byRegion[1]))
	}

	byType := GroupByVMType(records)
	if len(byType) != 2 {
		t.Fatalf("got %d vm types, want 2", len(byType))
	}
	for _, rec := range byType["a1b2"] {
		if rec.VMType != "a1b2" {
			t.Errorf("stray record in a1b2 group: %+v", rec)
		}
	}
}
