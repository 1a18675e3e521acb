package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Murshi404/Online-store-Project/controllers/cart"
	checkoutControllers "github.com/Murshi404/Online-store-Project/controllers/checkout"
	orderControllers "github.com/Murshi404/Online-store-Project/controllers/order"
	paymentControllers "github.com/Murshi404/Online-store-Project/controllers/payment"
	productControllers "github.com/Murshi404/Online-store-Project/controllers/product"
	"github.com/Murshi404/Online-store-Project/logger"
	"github.com/Murshi404/Online-store-Project/middleware"
	"github.com/Murshi404/Online-store-Project/services"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, carts services.CartRepository, pending services.PendingStore,
	checkoutSvc *services.CheckoutService, paymentSvc *services.PaymentService) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productControllers.GetProducts(db))
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))
		userGroup.GET("/categories", productControllers.GetCategories(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(carts))
			cartGroup.POST("/", cartControllers.AddCartItem(carts))
			cartGroup.DELETE("/:item_id", cartControllers.RemoveCartItem(carts))
		}

		// ──────────────── Checkout & Payment ────────────────
		userGroup.GET("/checkout", checkoutControllers.CheckoutPage(carts, pending, logger.Log))
		userGroup.POST("/checkout", checkoutControllers.Checkout(checkoutSvc))
		userGroup.GET("/payment/confirm", paymentControllers.ConfirmPayment(paymentSvc))

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
	}
}
