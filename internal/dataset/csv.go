package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
)

// timestampLayouts are the formats the dataset files have shipped with.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// LoadRecordsCSV reads raw usage records from a dataset CSV with the columns
// timestamp, vm_type, region, count (header required, order fixed).
func LoadRecordsCSV(path string) ([]model.UsageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords parses dataset rows from r.
func ReadRecords(r io.Reader) ([]model.UsageRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.TrimSpace(strings.ToLower(header[0])) != "timestamp" {
		return nil, fmt.Errorf("unexpected header %q, want timestamp,vm_type,region,count", strings.Join(header, ","))
	}

	var records []model.UsageRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		ts, err := parseTimestamp(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		region, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad region %q: %w", line, row[2], err)
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count %q: %w", line, row[3], err)
		}

		records = append(records, model.UsageRecord{
			Timestamp: ts,
			VMType:    strings.TrimSpace(row[1]),
			Region:    region,
			Count:     count,
		})
	}
	return records, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
