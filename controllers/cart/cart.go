package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Murshi404/Online-store-Project/services"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// POST /user/cart
func AddCartItem(carts services.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := carts.AddItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrProductNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			case errors.Is(err, services.ErrProductUnavailable):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			case errors.Is(err, services.ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:item_id
func RemoveCartItem(carts services.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		if err := carts.RemoveItem(c.Request.Context(), userID, uint(itemID)); err != nil {
			if errors.Is(err, services.ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// GET /user/cart
func GetUserCart(carts services.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		cart, err := carts.GetByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if cart == nil {
			c.JSON(http.StatusOK, gin.H{"items": []any{}, "subtotal": decimal.Zero})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":    cart.Items,
			"subtotal": cart.Subtotal(),
		})
	}
}
