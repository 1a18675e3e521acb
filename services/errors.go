package services

import "errors"

var (
	// Validation failures. Nothing is mutated when these are returned.
	ErrCartEmpty          = errors.New("cart is empty")
	ErrNonPositiveTotal   = errors.New("cart total must be positive")
	ErrInvalidContact     = errors.New("missing required contact field")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrProductUnavailable = errors.New("product is not available")

	// Lookup failures.
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNoPendingOrder   = errors.New("no pending order found")

	// ErrAlreadyPaid short-circuits duplicate confirmations. The order is
	// not re-marked and the cart is not re-cleared.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrVerificationFailed covers a payment the gateway does not report as
	// captured, or one whose gateway order id does not match the order being
	// finalized. The order stays unpaid and the user may retry.
	ErrVerificationFailed = errors.New("payment verification failed")
)
