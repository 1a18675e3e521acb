package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/services"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetByUser returns the user's cart with items and live product records, or
// (nil, nil) when the user has no cart yet.
func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem adds quantity of a product to the user's cart, creating the cart
// lazily. Repeat adds accumulate. The increment rides on the insert's
// conflict clause, so two concurrent adds of 1 both land and end at
// quantity 2 instead of racing on a not-yet-existing row.
func (r *CartRepository) AddItem(ctx context.Context, userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, services.ErrInvalidQuantity
	}

	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrProductNotFound
			}
			return err
		}
		if !product.IsAvailable {
			return services.ErrProductUnavailable
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cart = models.Cart{UserID: userID}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&cart).Error; err != nil {
				return err
			}
			// a concurrent request created the cart first; pick up its id
			if cart.CartID == 0 {
				if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
					return err
				}
			}
		}

		now := time.Now()
		item = models.CartItem{
			CartID:    cart.CartID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
				"added_at": now,
			}),
		}).Create(&item).Error; err != nil {
			return err
		}
		// re-read: the insert may have folded into an existing line
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			First(&item).Error; err != nil {
			return err
		}

		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a cart line. The line must belong to the acting
// user's cart; anything else is a not-found.
func (r *CartRepository) RemoveItem(ctx context.Context, userID string, itemID uint) error {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrCartItemNotFound
		}
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cart.CartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrCartItemNotFound
	}
	return nil
}
