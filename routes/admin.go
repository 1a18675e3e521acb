package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Murshi404/Online-store-Project/controllers/order"
	productControllers "github.com/Murshi404/Online-store-Project/controllers/product"
	"github.com/Murshi404/Online-store-Project/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Catalog ────────────────
		adminGroup.POST("/products", productControllers.CreateProduct(db))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(db))

		// ──────────────── Orders ────────────────
		adminGroup.GET("/orders", orderControllers.GetAllOrders(db))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
	}
}
