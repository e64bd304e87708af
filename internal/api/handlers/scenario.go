package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/models"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/scenario"
)

// Scenario handles POST /api/v1/scenario: forecast sensitivity of the
// commitment level under a compounding demand trend.
func (h *Handler) Scenario(c *gin.Context) {
	var req models.ScenarioRequest
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
	sens, err := scenario.CompareForecast(series, req.Weeks, req.AnnualTrend, method, opts)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ScenarioResponse{
		Weeks:         sens.Weeks,
		AnnualTrend:   sens.AnnualTrend,
		ActualsLevel:  sens.ActualsLevel,
		ForecastLevel: sens.ForecastLevel,
		ActualsCost:   sens.ActualsCost,
		ForecastCost:  sens.ForecastCost,
		Delta:         sens.Delta,
		Ratio:         sens.Ratio,
	})
}
