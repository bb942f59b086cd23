package service

import "errors"

// --- Base Error Classes ---
// Every service error wraps one of these so handlers can map outcomes to
// HTTP statuses with a single errors.Is ladder.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid request state")
)

// immutableField guards a field that is fixed at creation time. A zero
// requested value means "keep the current one" and passes; anything else
// must match the stored value or the violation error is returned.
func immutableField(current, requested uint, violation error) error {
	if requested == 0 || requested == current {
		return nil
	}
	return violation
}
