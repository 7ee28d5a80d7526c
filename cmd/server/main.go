package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/broadbandiq/subscription-intel/internal/api"
	"github.com/broadbandiq/subscription-intel/internal/catalog"
	"github.com/broadbandiq/subscription-intel/internal/churn"
	"github.com/broadbandiq/subscription-intel/internal/logger"
	"github.com/broadbandiq/subscription-intel/internal/middleware"
	"github.com/broadbandiq/subscription-intel/internal/services"
	"github.com/broadbandiq/subscription-intel/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	lg := logger.NewSimpleLogger()

	// Train the churn classifier once at startup. Training failure is not
	// fatal: the classifier enters fallback mode for the process lifetime.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	classifier := churn.NewClassifier(cfg.DataDir, cfg.GetReferenceDate(), rng, lg)
	lg.Info("churn classifier initialized", "mode", classifier.Mode().String())

	// Build the read-only core shared by all requests
	svcs := services.NewServices(catalog.Default(), classifier)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware())
	}
	r.Use(gin.Recovery())

	// Setup API routes
	api.SetupRoutes(r, svcs)

	lg.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		lg.Fatal("failed to start server", err)
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	if cfg.IsDevelopment() {
		corsCfg.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
		}
	} else {
		corsCfg.AllowOrigins = cfg.GetAllowedOrigins()
	}
	return corsCfg
}
