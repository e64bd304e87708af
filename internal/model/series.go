package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Error kinds shared across packages. Wrap with fmt.Errorf("%w: ...") and
// classify with errors.Is.
var (
	// ErrInvalidInput covers series that are too short, non-finite or
	// negative usage, premium < 1, and steps < 1.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateNormalization is returned when an all-zero series is
	// normalized to a ceiling (the scale factor would divide by zero).
	ErrDegenerateNormalization = errors.New("degenerate normalization")
)

// Sample is one hourly observation of aggregate VM demand.
type Sample struct {
	Timestamp time.Time
	Usage     float64
}

// DemandSeries is an ordered sequence of hourly samples.
// Timestamps are strictly increasing at exactly one-hour spacing; gaps are a
// caller error and are not handled specially. A series is immutable once
// constructed for a given analysis.
type DemandSeries []Sample

// Validate checks the series is usable for costing: at least two samples,
// every usage finite and non-negative. Cadence is the loader's contract and
// is not re-checked here.
func (s DemandSeries) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("%w: series must have at least 2 samples, got %d", ErrInvalidInput, len(s))
	}
	for i, smp := range s {
		if math.IsNaN(smp.Usage) || math.IsInf(smp.Usage, 0) {
			return fmt.Errorf("%w: non-finite usage at sample %d", ErrInvalidInput, i)
		}
		if smp.Usage < 0 {
			return fmt.Errorf("%w: negative usage %.6f at sample %d", ErrInvalidInput, smp.Usage, i)
		}
	}
	return nil
}

// MinUsage returns the smallest usage value in the series (0 for empty).
func (s DemandSeries) MinUsage() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0].Usage
	for _, smp := range s[1:] {
		if smp.Usage < m {
			m = smp.Usage
		}
	}
	return m
}

// MaxUsage returns the largest usage value in the series (0 for empty).
func (s DemandSeries) MaxUsage() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0].Usage
	for _, smp := range s[1:] {
		if smp.Usage > m {
			m = smp.Usage
		}
	}
	return m
}

// Start returns the first timestamp (zero time for empty).
func (s DemandSeries) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Timestamp
}

// End returns the last timestamp (zero time for empty).
func (s DemandSeries) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Timestamp
}

// Intervals is the number of hourly intervals the series spans.
func (s DemandSeries) Intervals() int {
	if len(s) < 2 {
		return 0
	}
	return len(s) - 1
}

// ValidatePremium rejects premiums below 1: an on-demand rate cheaper than
// committed capacity inverts the economic model the level search relies on.
func ValidatePremium(premium float64) error {
	if math.IsNaN(premium) || math.IsInf(premium, 0) || premium < 1 {
		return fmt.Errorf("%w: premium must be >= 1, got %v", ErrInvalidInput, premium)
	}
	return nil
}
