package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/models"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/commit"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/search"
)

// Optimize handles POST /api/v1/optimize: find the commitment level
// minimizing total cost for the supplied series.
func (h *Handler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	series, err := h.resolveSeries(req.Source)
	if err != nil {
		writeError(c, err)
		return
	}

	method, opts := buildOptions(req.Premium, req.Search)
	start := time.Now()
	res, err := search.Minimize(series, method, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	searchDuration.WithLabelValues(string(res.Method)).Observe(time.Since(start).Seconds())

	seg, err := commit.Evaluate(series, res.Level, effectivePremium(req.Premium))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.OptimizeResponse{
		Method:            string(res.Method),
		Level:             res.Level,
		Cost:              res.Cost,
		UsedTotal:         seg.UsedTotal,
		UnusedTotal:       seg.UnusedTotal,
		OnDemandRawTotal:  seg.OnDemandRawTotal,
		OnDemandCostTotal: seg.OnDemandCostTotal,
		Intervals:         len(seg.Rows),
	}
	if req.IncludeSegments {
		resp.Segments = make([]models.SegmentPayload, 0, len(seg.Rows))
		for _, r := range seg.Rows {
			resp.Segments = append(resp.Segments, models.SegmentPayload{
				Index:        r.Index,
				Start:        r.Start,
				Usage:        r.Usage,
				Used:         r.Used,
				Unused:       r.Unused,
				OnDemandRaw:  r.OnDemandRaw,
				OnDemandCost: r.OnDemandCost,
				Total:        r.Total,
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
