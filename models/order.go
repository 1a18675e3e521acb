package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created once per checkout submission. IsPaid flips false→true at
// most once; the row is never deleted by the payment flow.
type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderRef          string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID            string          `gorm:"index;not null" json:"user_id"`
	FullName          string          `gorm:"not null" json:"full_name"`
	Email             string          `gorm:"not null" json:"email"`
	PhoneNumber       string          `gorm:"not null" json:"phone_number"`
	ShippingAddress   string          `gorm:"not null" json:"shipping_address"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	RazorpayOrderID   string          `gorm:"index" json:"razorpay_order_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id,omitempty"`
	IsPaid            bool            `gorm:"default:false;index" json:"is_paid"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
}

// OrderItem snapshots product name and price at order-creation time, so
// later catalog edits never change historical orders.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"index" json:"order_id"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	ProductPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"product_price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
}

func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.ProductPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// ItemsTotal sums the snapshotted line totals. Equals TotalAmount at
// creation time by construction.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
