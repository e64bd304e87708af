package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/handlers"
	"github.com/Snowflake-Labs/shavedice-dataset/internal/api/middleware"
)

func main() {
	// Local development keeps settings in a .env file; absence is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("could not read .env")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&log.JSONFormatter{})
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	h := handlers.New(dataDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/optimize", h.Optimize)
		v1.POST("/ladder", h.Ladder)
		v1.POST("/scenario", h.Scenario)
		v1.GET("/datasets", h.ListDatasets)
	}

	log.WithFields(log.Fields{"port": port, "data_dir": dataDir}).Info("starting API server")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
