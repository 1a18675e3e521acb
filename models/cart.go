package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem holds no price fields. Lines are always priced off the live
// Product record, so catalog edits show up in the cart immediately.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Subtotal is recomputed on every call, never cached.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
