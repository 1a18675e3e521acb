package checkoutControllers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Murshi404/Online-store-Project/razorpay"
	"github.com/Murshi404/Online-store-Project/services"
)

type CheckoutInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// POST /user/checkout
//
// Validates the cart and contact details, snapshots the order, opens the
// gateway session, and returns the payload the client needs to launch the
// payment widget. The cart is left untouched until payment confirmation.
func Checkout(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all required fields: " + err.Error()})
			return
		}

		contact := services.ContactInfo{
			FullName:        strings.TrimSpace(input.FirstName + " " + input.LastName),
			Email:           input.Email,
			Phone:           input.Phone,
			ShippingAddress: input.Address,
		}

		order, pending, err := svc.Checkout(c.Request.Context(), userID, contact)
		if err != nil {
			var apiErr *razorpay.APIError
			switch {
			case errors.Is(err, services.ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Please add items before checking out."})
			case errors.Is(err, services.ErrNonPositiveTotal):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot checkout with a zero or negative total."})
			case errors.Is(err, services.ErrInvalidContact):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all required fields."})
			case errors.Is(err, razorpay.ErrTimeout):
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Payment gateway timed out. Please try again."})
			case errors.As(err, &apiErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway rejected the request. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing your order."})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_ref":         order.OrderRef,
			"razorpay_order_id": pending.RazorpayOrderID,
			"amount_minor":      pending.AmountMinor,
			"currency":          services.Currency,
			"razorpay_key_id":   os.Getenv("RAZORPAY_KEY_ID"),
			"prefill": gin.H{
				"name":  pending.FullName,
				"email": pending.Email,
				"phone": pending.Phone,
			},
		})
	}
}

// GET /user/checkout
//
// Returns the cart summary plus, when a pending payment was staged by a
// prior POST, the one-shot widget payload. The staged record is consumed on
// read, so a reload after this call renders a plain checkout page.
func CheckoutPage(carts services.CartRepository, pending services.PendingStore, log *zap.Logger) gin.HandlerFunc {
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
		if cart == nil || len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty. Please add items before checking out."})
			return
		}

		subtotal := cart.Subtotal()
		resp := gin.H{
			"items":           cart.Items,
			"subtotal":        subtotal,
			"amount_minor":    services.AmountMinor(subtotal),
			"currency":        services.Currency,
			"razorpay_key_id": os.Getenv("RAZORPAY_KEY_ID"),
			"trigger_payment": false,
		}

		staged, err := pending.Consume(c.Request.Context(), userID)
		if err != nil {
			// the plain cart summary still renders, so don't fail the page
			log.Warn("failed to consume pending payment",
				zap.String("user_id", userID), zap.Error(err))
		}
		if staged != nil {
			resp["trigger_payment"] = true
			resp["order_ref"] = staged.OrderRef
			resp["razorpay_order_id"] = staged.RazorpayOrderID
			resp["amount_minor"] = staged.AmountMinor
			resp["prefill"] = gin.H{
				"name":  staged.FullName,
				"email": staged.Email,
				"phone": staged.Phone,
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
