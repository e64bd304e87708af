package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/models"
)

// ListDatasets handles GET /api/v1/datasets: the CSV files available under
// the server's data directory.
func (h *Handler) ListDatasets(c *gin.Context) {
	entries, err := os.ReadDir(h.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"datasets": []models.DatasetInfo{}})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DATASET_LIST_ERROR", Message: err.Error()},
		})
		return
	}

	datasets := make([]models.DatasetInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		datasets = append(datasets, models.DatasetInfo{
			Name:      strings.TrimSuffix(e.Name(), ".csv"),
			File:      filepath.Join(h.DataDir, e.Name()),
			SizeBytes: info.Size(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"datasets": datasets, "count": len(datasets)})
}
