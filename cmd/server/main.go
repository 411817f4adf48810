package main

import (
	"net/http"
	"os"

	"github.com/EcoBloomApp/EcoBloom-backend/internal/api"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/config"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/database"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/logger"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/middleware"
	"github.com/EcoBloomApp/EcoBloom-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Classifier d'activités (service externe)
	classifier, err := services.NewHTTPClassifier(cfg)
	if err != nil {
		logger.Warning("Classifier unavailable, freeform activities disabled: %v", err)
	} else {
		services.Classifier = classifier
	}

	// Stockage des avatars
	cld, err := services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Warning("Cloudinary unavailable, avatar upload disabled: %v", err)
	} else {
		services.Cloudinary = cld
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	handler := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
