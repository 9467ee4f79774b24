package services

import "errors"

// Domain error taxonomy. Handlers map these with errors.Is; anything else
// escaping a service is a generic persistence failure and must not leak
// internal detail to clients.
var (
	// ErrNotFound covers a missing order, product, user, category or
	// referenced entity, and a close attempt on an already-closed order.
	ErrNotFound = errors.New("not found")
	// ErrCartEmpty is returned when closing a cart with no linked products.
	ErrCartEmpty = errors.New("cart has no products")
	// ErrInvalidData is returned for constraint violations on write.
	ErrInvalidData = errors.New("invalid data submitted")
)
