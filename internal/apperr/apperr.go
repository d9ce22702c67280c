// Package apperr defines the error taxonomy shared by the service and
// repository layers. Handlers map these onto HTTP statuses; anything
// not in the taxonomy is treated as an internal error whose detail is
// logged but never returned to the client.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate signals a unique-constraint violation, e.g. a taken
	// username or email on registration.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidCredentials is the single, generic login failure. Unknown
	// usernames and wrong passwords are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound signals a missing entity by id.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart signals a checkout attempt with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTransition signals an order status change the transition
	// table forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
