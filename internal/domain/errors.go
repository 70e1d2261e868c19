package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
)

// ValidationError reports a missing required field. Callers surface it for
// re-display with the user's partial input preserved.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func RequiredField(field string) error {
	return &ValidationError{Field: field}
}
