package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/models"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/ladder"
)

// Ladder handles POST /api/v1/ladder: per-sub-period commitment levels
// versus one flat level across the whole series.
func (h *Handler) Ladder(c *gin.Context) {
	var req models.LadderRequest
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
	cmp, err := ladder.CompareFlat(series, req.PeriodHours, method, opts)
	if err != nil {
		writeError(c, err)
		return
	}

	rungs := make([]models.RungPayload, 0, len(cmp.Plan.Rungs))
	for _, r := range cmp.Plan.Rungs {
		rungs = append(rungs, models.RungPayload{
			Start:      r.Start,
			StartIndex: r.StartIndex,
			EndIndex:   r.EndIndex,
			Level:      r.Level,
			Cost:       r.Cost,
		})
	}

	c.JSON(http.StatusOK, models.LadderResponse{
		Rungs:      rungs,
		FlatLevel:  cmp.FlatLevel,
		FlatCost:   cmp.FlatCost,
		LadderCost: cmp.LadderCost,
		Savings:    cmp.Savings,
	})
}
