package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Murshi404/Online-store-Project/models"
	"github.com/Murshi404/Online-store-Project/razorpay"
)

// PaymentService reconciles gateway callbacks against pending orders. The
// gateway, not the callback, is the source of truth: a payment counts only
// if the gateway reports it captured and ties it to the session stored on
// the order being finalized.
type PaymentService struct {
	orders  OrderRepository
	gateway Gateway
	log     *zap.Logger
}

func NewPaymentService(orders OrderRepository, gateway Gateway, log *zap.Logger) *PaymentService {
	return &PaymentService{orders: orders, gateway: gateway, log: log}
}

// Confirm finalizes a payment for the acting user.
//
// When orderRef is supplied (round-tripped through the gateway notes) the
// order is looked up by reference; otherwise it falls back to the user's
// most recently created unpaid order. Verification requires the gateway to
// report the payment as captured AND to tie it to the gateway session id
// stored on the order. Marking paid and clearing the cart happen in one
// transaction; a duplicate confirmation returns ErrAlreadyPaid with no
// further mutation.
func (s *PaymentService) Confirm(ctx context.Context, userID, paymentID, orderRef string) (*models.Order, error) {
	if paymentID == "" {
		return nil, ErrVerificationFailed
	}

	var (
		order *models.Order
		err   error
	)
	if orderRef != "" {
		order, err = s.orders.ByRef(ctx, userID, orderRef)
	} else {
		order, err = s.orders.LatestUnpaid(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return order, ErrAlreadyPaid
	}

	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != razorpay.StatusCaptured || payment.OrderID != order.RazorpayOrderID {
		s.log.Warn("payment verification failed",
			zap.String("order_ref", order.OrderRef),
			zap.String("payment_id", paymentID),
			zap.String("payment_status", payment.Status),
			zap.String("expected_session", order.RazorpayOrderID),
			zap.String("reported_session", payment.OrderID))
		return nil, ErrVerificationFailed
	}

	if err := s.orders.MarkPaid(ctx, order.ID, paymentID); err != nil {
		if errors.Is(err, ErrAlreadyPaid) {
			// Lost a race against a duplicate callback. The winner already
			// committed; report the order as paid without touching anything.
			order.IsPaid = true
			return order, ErrAlreadyPaid
		}
		return nil, err
	}

	order.IsPaid = true
	order.RazorpayPaymentID = paymentID

	s.log.Info("order paid",
		zap.String("order_ref", order.OrderRef),
		zap.String("payment_id", paymentID))
	return order, nil
}
