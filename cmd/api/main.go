package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"scaleout-planner/internal/api/handlers"
	"scaleout-planner/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and important paths for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		// Check if examples/positions exists
		presetDir := filepath.Join(wd, "examples", "positions")
		if info, err := os.Stat(presetDir); err == nil && info.IsDir() {
			log.Printf("Preset directory found: %s", presetDir)
		} else {
			log.Printf("Preset directory not found at: %s (error: %v)", presetDir, err)
		}
	}

	// Note: the price API key is passed through from client requests;
	// the server itself never holds one.

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	planHandler := handlers.NewPlanHandler()
	presetHandler := handlers.NewPresetHandler()
	strategyHandler := handlers.NewStrategyHandler()
	rankHandler := handlers.NewRankHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Diagnostic endpoint to check preset directory
	router.GET("/debug/preset-dir", func(c *gin.Context) {
		wd, _ := os.Getwd()
		presetDir := presetHandler.GetPresetDir()
		info, statErr := os.Stat(presetDir)

		var entries []string
		if dirEntries, err := os.ReadDir(presetDir); err == nil {
			for _, e := range dirEntries {
				entries = append(entries, e.Name())
			}
		}

		c.JSON(200, gin.H{
			"working_directory": wd,
			"preset_dir":        presetDir,
			"preset_dir_exists": statErr == nil,
			"preset_dir_is_dir": info != nil && info.IsDir(),
			"stat_error": func() string {
				if statErr != nil {
					return statErr.Error()
				}
				return ""
			}(),
			"entries":     entries,
			"entry_count": len(entries),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/plan", planHandler.RunPlan)
		api.POST("/plan/compare", planHandler.ComparePlans)

		api.GET("/presets", presetHandler.ListPresets)
		api.GET("/strategies", strategyHandler.ListStrategies)

		api.GET("/rank", rankHandler.RankSymbols)

		api.GET("/markets", handlers.ListMarkets)
		api.GET("/symbols", handlers.ListSymbols)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	// Check if static directory exists
	if _, err := os.Stat(staticDir); err == nil {
		// Serve static assets
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			// Don't serve index.html for API routes
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
