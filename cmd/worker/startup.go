package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/pkg/container"
)

// startServices runs the dependency checks and starts the health endpoint
func startServices(c *container.Container, cfg *Config) error {
	log.Info().Msg("🚀 Restaurant Catalog Worker Starting...")

	for _, name := range []string{"database", "redis", "storage"} {
		check, ok := c.Checks[name]
		if !ok {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check(ctx)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("check", name).Msg("❌ Health check failed")
			return fmt.Errorf("%s failed: %w", name, err)
		}
		log.Info().Str("check", name).Msg("✓ OK")
	}

	go startHealthCheckServer(cfg.HealthPort)

	return nil
}

// startHealthCheckServer serves /health and /ready for the orchestrator
func startHealthCheckServer(port string) {
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "restaurant-catalog-worker"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := router.Run(":" + port); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
