package models

import "time"

// SeriesSource tells the server where the demand series comes from: either
// a dataset CSV under the server's data directory or inline samples.
type SeriesSource struct {
	Dataset string          `json:"dataset,omitempty"`
	Samples []SamplePayload `json:"samples,omitempty"`

	// NormalizeCeiling, when set, rescales the series so its peak equals
	// this value before any costing.
	NormalizeCeiling float64 `json:"normalize_ceiling,omitempty"`
}

// SamplePayload is one inline hourly sample.
type SamplePayload struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Usage     float64   `json:"usage"`
}

// SearchParams selects and tunes the level-search strategy.
type SearchParams struct {
	Method       string   `json:"method,omitempty"` // grid | bounded | numeric
	Steps        int      `json:"steps,omitempty"`
	Tolerance    float64  `json:"tolerance,omitempty"`
	InitialGuess *float64 `json:"initial_guess,omitempty"`
	Workers      int      `json:"workers,omitempty"`
}

// OptimizeRequest is the body for POST /api/v1/optimize.
type OptimizeRequest struct {
	Source          SeriesSource `json:"source" binding:"required"`
	Premium         float64      `json:"premium,omitempty"`
	Search          SearchParams `json:"search,omitempty"`
	IncludeSegments bool         `json:"include_segments,omitempty"`
}

// LadderRequest is the body for POST /api/v1/ladder.
type LadderRequest struct {
	Source      SeriesSource `json:"source" binding:"required"`
	Premium     float64      `json:"premium,omitempty"`
	Search      SearchParams `json:"search,omitempty"`
	PeriodHours int          `json:"period_hours,omitempty"`
}

// ScenarioRequest is the body for POST /api/v1/scenario.
type ScenarioRequest struct {
	Source      SeriesSource `json:"source" binding:"required"`
	Premium     float64      `json:"premium,omitempty"`
	Search      SearchParams `json:"search,omitempty"`
	Weeks       int          `json:"weeks" binding:"required"`
	AnnualTrend float64      `json:"annual_trend"`
}
