package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/razorpay"
)

// Currency is fixed; multi-currency pricing is out of scope.
const Currency = "INR"

// minAmountMinor is the gateway-imposed minimum charge (100 paise = ₹1).
// Smaller totals are floored up to it so the gateway does not reject the
// session.
const minAmountMinor = 100

type CartRepository interface {
	// GetByUser returns (nil, nil) when the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, productID uint, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID string, itemID uint) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	LatestUnpaid(ctx context.Context, userID string) (*models.Order, error)
	ByRef(ctx context.Context, userID, orderRef string) (*models.Order, error)
	MarkPaid(ctx context.Context, orderID uint, paymentID string) error
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
}

type PendingStore interface {
	Stage(ctx context.Context, userID string, p *models.PendingPayment) error
	Consume(ctx context.Context, userID string) (*models.PendingPayment, error)
}

type ContactInfo struct {
	FullName        string
	Email           string
	Phone           string
	ShippingAddress string
}

func (ci ContactInfo) validate() error {
	for _, field := range []string{ci.FullName, ci.Email, ci.Phone, ci.ShippingAddress} {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidContact
		}
	}
	return nil
}

// AmountMinor converts a decimal total to the gateway's minor-unit integer
// representation, floored at the gateway minimum.
func AmountMinor(total decimal.Decimal) int64 {
	minor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if minor < minAmountMinor {
		return minAmountMinor
	}
	return minor
}

// CheckoutService materializes a live cart into an immutable order and
// opens the matching gateway session.
type CheckoutService struct {
	carts   CartRepository
	orders  OrderRepository
	gateway Gateway
	pending PendingStore
	log     *zap.Logger
}

func NewCheckoutService(carts CartRepository, orders OrderRepository, gateway Gateway, pending PendingStore, log *zap.Logger) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, gateway: gateway, pending: pending, log: log}
}

// Checkout validates the cart and contact details, opens the gateway
// session, then writes the order snapshot in one transaction.
//
// The gateway session is created before the order row on purpose: a gateway
// failure leaves no order behind, and a DB failure leaves only an orphan
// gateway session, which the gateway expires on its own. The cart is not
// cleared here; that happens only after payment confirmation.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, contact ContactInfo) (*models.Order, *models.PendingPayment, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, nil, ErrCartEmpty
	}

	subtotal := cart.Subtotal()
	if !subtotal.IsPositive() {
		return nil, nil, ErrNonPositiveTotal
	}

	if err := contact.validate(); err != nil {
		return nil, nil, err
	}

	amountMinor := AmountMinor(subtotal)
	orderRef := uuid.NewString()

	gatewayOrderID, err := s.gateway.CreateOrder(ctx, amountMinor, Currency, orderRef, map[string]string{
		"order_ref": orderRef,
	})
	if err != nil {
		return nil, nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		items = append(items, models.OrderItem{
			ProductName:  cartItem.Product.Name,
			ProductPrice: cartItem.Product.Price,
			Quantity:     cartItem.Quantity,
		})
	}

	order := &models.Order{
		OrderRef:        orderRef,
		UserID:          userID,
		FullName:        strings.TrimSpace(contact.FullName),
		Email:           contact.Email,
		PhoneNumber:     contact.Phone,
		ShippingAddress: contact.ShippingAddress,
		TotalAmount:     subtotal,
		RazorpayOrderID: gatewayOrderID,
		Items:           items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	pending := &models.PendingPayment{
		OrderRef:        orderRef,
		RazorpayOrderID: gatewayOrderID,
		AmountMinor:     amountMinor,
		FullName:        order.FullName,
		Email:           order.Email,
		Phone:           order.PhoneNumber,
	}
	// The checkout response already carries the payment payload, so a
	// staging failure only breaks the page-reload path. Not worth failing
	// the checkout over.
	if err := s.pending.Stage(ctx, userID, pending); err != nil {
		s.log.Warn("failed to stage pending payment",
			zap.String("order_ref", orderRef), zap.Error(err))
	}

	return order, pending, nil
}
