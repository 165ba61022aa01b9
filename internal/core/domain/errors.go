package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("item not found")
	ErrFormat          = errors.New("invalid inventory format")
)

// ValidateItem rejects empty item names.
func ValidateItem(item string) error {
	if item == "" {
		return fmt.Errorf("%w: item must be a non-empty string", ErrInvalidArgument)
	}
	return nil
}

// ValidateQuantity rejects zero and negative quantities.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, qty)
	}
	return nil
}
