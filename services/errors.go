package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDiscountCode rejects the whole order before any mutation.
	ErrInvalidDiscountCode = errors.New("invalid or expired discount code")

	// ErrManualDiscountForbidden gates the admin-only discount override.
	ErrManualDiscountForbidden = errors.New("unauthorized to apply manual discount")

	// ErrDiscountConflict means both a promo code and a manual override were supplied.
	ErrDiscountConflict = errors.New("promo code and manual discount are mutually exclusive")

	// ErrVariantMismatch means the variant does not belong to the given menu item.
	ErrVariantMismatch = errors.New("variant does not belong to the given menu item")

	// ErrOrderNotPending guards the terminal transitions: an order completes
	// or cancels exactly once, from pending only.
	ErrOrderNotPending = errors.New("only pending orders can be modified")

	// ErrInsufficientCash means the tendered amount does not cover the due total.
	ErrInsufficientCash = errors.New("insufficient cash provided")

	// ErrNoOrderHistory means reorder found nothing to rebuild from.
	ErrNoOrderHistory = errors.New("no frequent items found")
)

// InsufficientStockError names the blocking ingredient.
type InsufficientStockError struct {
	IngredientID uint
	Ingredient   string
}

func (e *InsufficientStockError) Error() string {
	name := e.Ingredient
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("insufficient stock for ingredient: %s", name)
}
