package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Murshi404/Online-store-Project/logger"
	"github.com/Murshi404/Online-store-Project/repository"
	"github.com/Murshi404/Online-store-Project/services"
	"github.com/Murshi404/Online-store-Project/store"
)

// SetupRoutes is the single entry-point that wires up the Auth, User, and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, gateway services.Gateway) {
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	pending := store.NewPendingStore(rdb)

	checkoutSvc := services.NewCheckoutService(carts, orders, gateway, pending, logger.Log)
	paymentSvc := services.NewPaymentService(orders, gateway, logger.Log)

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, carts, pending, checkoutSvc, paymentSvc)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
