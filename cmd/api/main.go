package main

import (
	"net/http"
	"os"
	"time"

	"property-portal/internal/config"
	"property-portal/internal/database"
	"property-portal/internal/handlers"
	"property-portal/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	log := newLogger(appConfig.Logging.Level)

	// Initialize database
	mongoURI := getEnvOrConfig(appConfig.Database.URI, "MONGODB_URI", "mongodb://localhost:27017")
	db, err := database.NewMongoDB(mongoURI, appConfig.Database.Database, appConfig.Database.GetTimeout())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connected successfully")

	// Initialize image uploader; missing credentials disable uploads but do
	// not prevent the API from serving.
	ikConfig := config.ImageKitConfig{
		PublicKey:   getEnvOrConfig(appConfig.ImageKit.PublicKey, "IMAGEKIT_PUBLIC_KEY", ""),
		PrivateKey:  getEnvOrConfig(appConfig.ImageKit.PrivateKey, "IMAGEKIT_PRIVATE_KEY", ""),
		URLEndpoint: getEnvOrConfig(appConfig.ImageKit.URLEndpoint, "IMAGEKIT_URL_ENDPOINT", ""),
	}
	var uploader storage.Uploader
	if ikConfig.Configured() {
		uploader = storage.NewImageKitUploader(ikConfig.PublicKey, ikConfig.PrivateKey, ikConfig.URLEndpoint)
		log.Info("ImageKit connected successfully")
	} else {
		uploader = storage.NewDisabledUploader()
		log.Warn("ImageKit configuration not found - running without image upload functionality")
	}

	propertyRepo := database.NewPropertyRepo(db)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo, uploader, appConfig.Upload, log)

	// Setup Gin router
	gin.SetMode(getEnv("GIN_MODE", gin.ReleaseMode))
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.RecoveryHandler(log)))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Routes
	r.GET("/health", healthCheck)
	api := r.Group("/api")
	{
		api.POST("/properties", propertyHandler.Create)
		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.GetOne)
		api.PUT("/properties", propertyHandler.Update)
		api.DELETE("/properties", propertyHandler.Delete)
	}
	r.NoRoute(handlers.NoRouteHandler(log))

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "4000")
	log.Infof("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig prefers the environment variable, then the config value,
// then the fallback.
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}
