package models

import "time"

// OptimizeResponse carries one optimization result plus the cost breakdown
// at the optimal level.
type OptimizeResponse struct {
	Method string `json:"method"`

	Level float64 `json:"level"`
	Cost  float64 `json:"cost"`

	UsedTotal         float64 `json:"used_total"`
	UnusedTotal       float64 `json:"unused_total"`
	OnDemandRawTotal  float64 `json:"on_demand_raw_total"`
	OnDemandCostTotal float64 `json:"on_demand_cost_total"`

	Intervals int `json:"intervals"`

	Segments []SegmentPayload `json:"segments,omitempty"`
}

// SegmentPayload is one hourly interval of the cost decomposition.
type SegmentPayload struct {
	Index        int       `json:"index"`
	Start        time.Time `json:"start"`
	Usage        float64   `json:"usage"`
	Used         float64   `json:"used"`
	Unused       float64   `json:"unused"`
	OnDemandRaw  float64   `json:"on_demand_raw"`
	OnDemandCost float64   `json:"on_demand_cost"`
	Total        float64   `json:"total"`
}

// LadderResponse compares a per-sub-period ladder to one flat commitment.
type LadderResponse struct {
	Rungs      []RungPayload `json:"rungs"`
	FlatLevel  float64       `json:"flat_level"`
	FlatCost   float64       `json:"flat_cost"`
	LadderCost float64       `json:"ladder_cost"`
	Savings    float64       `json:"savings"`
}

// RungPayload is one sub-period commitment of a ladder plan.
type RungPayload struct {
	Start      time.Time `json:"start"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Level      float64   `json:"level"`
	Cost       float64   `json:"cost"`
}

// ScenarioResponse reports forecast sensitivity for a trend scenario.
type ScenarioResponse struct {
	Weeks       int     `json:"weeks"`
	AnnualTrend float64 `json:"annual_trend"`

	ActualsLevel  float64 `json:"actuals_level"`
	ForecastLevel float64 `json:"forecast_level"`
	ActualsCost   float64 `json:"actuals_cost"`
	ForecastCost  float64 `json:"forecast_cost"`
	Delta         float64 `json:"delta"`
	Ratio         float64 `json:"ratio"`
}

// DatasetInfo describes one CSV file available under the data directory.
type DatasetInfo struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	SizeBytes int64  `json:"size_bytes"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
