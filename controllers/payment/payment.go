package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/Murshi404/Online-store-Project/controllers/order"
	"github.com/Murshi404/Online-store-Project/razorpay"
	"github.com/Murshi404/Online-store-Project/services"
)

// GET /user/payment/confirm?payment_id=...&order_ref=...
//
// Called by the client after the gateway's payment widget reports success.
// The payment reference is verified against the gateway before anything is
// committed; the order_ref parameter is optional and pins the exact order
// when the client round-trips it.
func ConfirmPayment(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		paymentID := c.Query("payment_id")
		if paymentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_id is required"})
			return
		}
		orderRef := c.Query("order_ref")

		order, err := svc.Confirm(c.Request.Context(), userID, paymentID, orderRef)
		if err != nil {
			var apiErr *razorpay.APIError
			switch {
			case errors.Is(err, services.ErrAlreadyPaid):
				// Duplicate callback; the first confirmation already won.
				c.JSON(http.StatusOK, gin.H{"message": "Order already paid", "order": order})
			case errors.Is(err, services.ErrNoPendingOrder):
				c.JSON(http.StatusNotFound, gin.H{"error": "No pending order found to finalize."})
			case errors.Is(err, services.ErrVerificationFailed):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed or status is pending."})
			case errors.Is(err, razorpay.ErrTimeout):
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Payment gateway timed out. Please try again."})
			case errors.As(err, &apiErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification error. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification error."})
			}
			return
		}

		orderControllers.BroadcastOrderPaid(*order)

		c.JSON(http.StatusOK, gin.H{
			"message": "Payment successful! Your order has been placed.",
			"order":   order,
		})
	}
}
