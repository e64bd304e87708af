package commit

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteSegmentsCSV writes the per-interval cost decomposition to path.
// Column names are stable; downstream plotting reads them by header.
func WriteSegmentsCSV(path string, seg CostSegments) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"interval_start",
		"usage",
		"level",
		"used",
		"unused",
		"on_demand_raw",
		"on_demand_cost",
		"total",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range seg.Rows {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Start),
			fmtFloat(r.Usage),
			fmtFloat(r.Level),
			fmtFloat(r.Used),
			fmtFloat(r.Unused),
			fmtFloat(r.OnDemandRaw),
			fmtFloat(r.OnDemandCost),
			fmtFloat(r.Total),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
