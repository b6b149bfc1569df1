package common

import "errors"

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")

	// Transport errors.
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")

	// Checkout errors.
	ErrOrderCreation = errors.New("order creation failed")
	ErrVerification  = errors.New("payment verification failed")

	// Validation errors.
	ErrValidation = errors.New("validation error")
)
