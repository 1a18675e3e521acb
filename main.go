package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Murshi404/Online-store-Project/logger"
	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/razorpay"
	"github.com/Murshi404/Online-store-Project/routes"
	"github.com/Murshi404/Online-store-Project/store"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Log.Sync()

	logger.Log.Info("Starting application...")

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Log.Fatal("AutoMigrate failed", zap.Error(err))
	}

	// Redis holds the pending-payment staging records
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	rdb := store.NewRedisClient(redisURL)

	// Payment gateway client
	gateway, err := razorpay.NewFromEnv()
	if err != nil {
		logger.Log.Fatal("Razorpay configuration failed", zap.Error(err))
	}

	// Gin setup
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, rdb, gateway)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Info("Server running", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			logger.Log.Fatal("DB connection failed", zap.Error(err))
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("Failed to connect DB", zap.Error(err))
	}
	return db
}
