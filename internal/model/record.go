package model

import "time"

// UsageRecord is one raw dataset row: hourly VM demand for one
// (type, region) combination. VMType is an obfuscated category label and
// Region an obfuscated deployment id (1-4). Count is the normalized VM
// count (0-10000).
type UsageRecord struct {
	Timestamp time.Time
	VMType    string
	Region    int
	Count     float64
}
