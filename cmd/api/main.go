// api serves the produced dataset files to the simulation front end.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"battery-sim-data/internal/api/handlers"
	"battery-sim-data/internal/api/middleware"
	"battery-sim-data/internal/metrics"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		logger.Warn("data directory not found, API will serve empty catalogs", "dir", dataDir)
	}

	metrics.Init()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	datasetHandler := handlers.NewDatasetHandler(dataDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/datasets", datasetHandler.ListDatasets)
		api.GET("/prices/:year", datasetHandler.GetPrices)
	}

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting dataset API", "addr", addr, "data_dir", dataDir)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
