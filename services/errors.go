package services

import "errors"

// Validation errors are returned before any state is touched; a failed call
// never leaves a cart or the ledger half-updated.
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrItemNotInCart   = errors.New("item is not in the cart")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrMissingIdentity = errors.New("missing user identity")
)
