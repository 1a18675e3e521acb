package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/services"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and its item snapshot in one transaction.
// Either the whole snapshot lands or none of it does.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// LatestUnpaid returns the user's most recently created unpaid order.
func (r *OrderRepository) LatestUnpaid(ctx context.Context, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_paid = ?", userID, false).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoPendingOrder
		}
		return nil, err
	}
	return &order, nil
}

// ByRef returns the user's order with the given reference, paid or not.
func (r *OrderRepository) ByRef(ctx context.Context, userID, orderRef string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("order_ref = ? AND user_id = ?", orderRef, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoPendingOrder
		}
		return nil, err
	}
	return &order, nil
}

// MarkPaid records the gateway payment reference, flips is_paid, and clears
// the owner's cart lines as a single atomic unit. The order row is locked
// and is_paid re-checked first, so a duplicate callback cannot commit twice.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID uint, paymentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrNoPendingOrder
			}
			return err
		}
		if order.IsPaid {
			return services.ErrAlreadyPaid
		}

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"is_paid":             true,
		}).Error; err != nil {
			return err
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", order.UserID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // no cart to clear
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
}

// ListByUser returns the user's orders newest-first with their items.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
