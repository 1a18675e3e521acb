package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `json:"phone"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
