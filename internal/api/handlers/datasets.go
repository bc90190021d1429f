package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"battery-sim-data/internal/api/models"
	"battery-sim-data/internal/data"
	"battery-sim-data/internal/metrics"
)

// DatasetHandler serves the produced dataset files from the data directory.
type DatasetHandler struct {
	DataDir string
}

func NewDatasetHandler(dataDir string) *DatasetHandler {
	return &DatasetHandler{DataDir: dataDir}
}

// ListDatasets handles GET /api/v1/datasets. It prefers the catalog file
// written by the batch drivers and falls back to scanning the directory.
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	catalog, err := data.LoadCatalog(data.CatalogPath(h.DataDir))
	if err != nil {
		if !os.IsNotExist(err) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "CATALOG_LOAD_ERROR",
					Message: fmt.Sprintf("Failed to load catalog: %v", err),
				},
			})
			return
		}
		catalog, err = data.BuildCatalog(h.DataDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "CATALOG_SCAN_ERROR",
					Message: fmt.Sprintf("Failed to scan data directory: %v", err),
				},
			})
			return
		}
	}

	datasets := make([]models.DatasetInfo, len(catalog.Datasets))
	for i, d := range catalog.Datasets {
		datasets[i] = models.DatasetInfo{
			Kind:    d.Kind,
			Year:    d.Year,
			Variant: d.Variant,
			File:    d.File,
			Count:   d.Count,
		}
	}

	c.JSON(http.StatusOK, models.DatasetsResponse{
		UpdatedAt: catalog.UpdatedAt,
		Datasets:  datasets,
		Count:     len(datasets),
	})
}

// GetPrices handles GET /api/v1/prices/:year.
func (h *DatasetHandler) GetPrices(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_YEAR",
				Message: fmt.Sprintf("Invalid year: %q", c.Param("year")),
			},
		})
		return
	}

	path := data.PriceFilePath(h.DataDir, year)
	series, err := data.LoadPriceFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "NOT_FOUND",
					Message: fmt.Sprintf("No price dataset for year %d", year),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_LOAD_ERROR",
				Message: fmt.Sprintf("Failed to load price dataset: %v", err),
			},
		})
		return
	}

	metrics.DatasetServed("prices")
	c.JSON(http.StatusOK, series)
}
