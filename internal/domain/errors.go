package domain

import "errors"

// Error taxonomy surfaced by the core. Handlers map these to HTTP status codes;
// callers compare with errors.Is.
var (
	ErrInvalidSelection  = errors.New("selected option does not match the product's option groups")
	ErrInvalidPricing    = errors.New("computed price is invalid")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrNotFound          = errors.New("record not found")
	ErrSessionClosed     = errors.New("table session is closed")
	ErrConflict          = errors.New("conflicting concurrent operation")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
	ErrAlreadyFinalized  = errors.New("order is already paid or cancelled")
	ErrUnauthorized      = errors.New("actor is not allowed to perform this operation")
	ErrPromotionInvalid  = errors.New("promotion is not applicable to this order")
	ErrValidation        = errors.New("invalid request")
)
