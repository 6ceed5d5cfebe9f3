package apperr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Handlers map these to HTTP statuses; everything else
// is treated as a persistence/unexpected failure (500).
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBudgetExceeded    = errors.New("budget exceeded")
	ErrExternalService   = errors.New("external service unavailable")
)

// Invalid wraps ErrInvalidInput with a human-readable reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// InsufficientStock reports available stock alongside the requested quantity.
func InsufficientStock(available, requested int) error {
	return fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, available, requested)
}

// BudgetExceeded reports how far the category budget would be overrun.
func BudgetExceeded(category string, exceededBy float64) error {
	return fmt.Errorf("%w: category %q over by %.0f", ErrBudgetExceeded, category, exceededBy)
}
