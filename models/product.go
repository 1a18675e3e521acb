package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *uint           `gorm:"index" json:"category_id,omitempty"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Image       string          `json:"image"`
	IsAvailable bool            `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
