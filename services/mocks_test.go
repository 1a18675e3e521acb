package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/razorpay"
)

// --- Mocks for Dependencies ---

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}
func (m *MockCartRepository) AddItem(ctx context.Context, userID string, productID uint, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}
func (m *MockCartRepository) RemoveItem(ctx context.Context, userID string, itemID uint) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepository) LatestUnpaid(ctx context.Context, userID string) (*models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *MockOrderRepository) ByRef(ctx context.Context, userID, orderRef string) (*models.Order, error) {
	args := m.Called(ctx, userID, orderRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderID uint, paymentID string) error {
	args := m.Called(ctx, orderID, paymentID)
	return args.Error(0)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error) {
	args := m.Called(ctx, amountMinor, currency, receipt, notes)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Payment), args.Error(1)
}

type MockPendingStore struct{ mock.Mock }

func (m *MockPendingStore) Stage(ctx context.Context, userID string, p *models.PendingPayment) error {
	args := m.Called(ctx, userID, p)
	return args.Error(0)
}
func (m *MockPendingStore) Consume(ctx context.Context, userID string) (*models.PendingPayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}
