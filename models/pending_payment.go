package models

// PendingPayment is the short-lived record staged between checkout
// submission and the page render that triggers the payment widget.
// It lives in redis under the user's id and is consumed read-once.
type PendingPayment struct {
	OrderRef        string `json:"order_ref"`
	RazorpayOrderID string `json:"razorpay_order_id"`
	AmountMinor     int64  `json:"amount_minor"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}
