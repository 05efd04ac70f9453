package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/jobhunt/internal/app"
	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/handlers"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file loaded, using the process environment")
	}

	// 2. Configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// 3. Initialize Google + Gemini clients and the pipeline
	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize: ", err)
	}

	// 4. Initialize Handlers
	jobHandler := handlers.NewJobHandler(a.Pipeline, cfg.UserProfile)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	jobHandler.RegisterRoutes(r.Group("/api/v1"))

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
