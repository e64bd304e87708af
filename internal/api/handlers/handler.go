package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/models"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/dataset"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/model"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

var searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "shavedice_search_duration_seconds",
	Help:    "Level-search wall time by strategy.",
	Buckets: prometheus.DefBuckets,
}, []string{"method"})

// Handler serves the optimizer endpoints. DataDir is where dataset CSVs
// referenced by name in requests are resolved.
type Handler struct {
	DataDir string
}

func New(dataDir string) *Handler {
	if dataDir == "" {
		dataDir = "data"
	}
	return &Handler{DataDir: dataDir}
}

// resolveSeries turns a request source into a costable series.
func (h *Handler) resolveSeries(src models.SeriesSource) (model.DemandSeries, error) {
	var series model.DemandSeries

	switch {
	case len(src.Samples) > 0:
		series = make(model.DemandSeries, 0, len(src.Samples))
		for _, s := range src.Samples {
			series = append(series, model.Sample{Timestamp: s.Timestamp, Usage: s.Usage})
		}
	case src.Dataset != "":
		name := filepath.Base(src.Dataset) // no path traversal out of the data dir
		if !strings.HasSuffix(name, ".csv") {
			name += ".csv"
		}
		records, err := dataset.LoadRecordsCSV(filepath.Join(h.DataDir, name))
		if err != nil {
			return nil, fmt.Errorf("load dataset %q: %w", name, err)
		}
		series = dataset.Aggregate(records)
	default:
		return nil, fmt.Errorf("%w: source needs either samples or a dataset name", model.ErrInvalidInput)
	}

	if src.NormalizeCeiling > 0 {
		return dataset.Normalize(series, src.NormalizeCeiling)
	}
	return series, nil
}

func buildOptions(premium float64, p models.SearchParams) (search.Method, search.Options) {
	method := search.Method(p.Method)
	if p.Method == "" {
		method = search.MethodGrid
	}
	opts := search.Options{
		Premium:   premium,
		Steps:     p.Steps,
		Tolerance: p.Tolerance,
		Workers:   p.Workers,
	}
	if p.InitialGuess != nil {
		opts.InitialGuess = *p.InitialGuess
		opts.HasGuess = true
	}
	return method, opts
}

func effectivePremium(premium float64) float64 {
	if premium == 0 {
		return commit.DefaultPremium
	}
	return premium
}

// writeError maps core error kinds onto coded HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_INPUT", Message: err.Error()},
		})
	case errors.Is(err, model.ErrDegenerateNormalization):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DEGENERATE_NORMALIZATION", Message: err.Error()},
		})
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "REQUEST_FAILED", Message: err.Error()},
		})
	}
}
