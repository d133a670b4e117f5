package matching

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input rejected before any store access.
	ErrValidation = errors.New("validation error")
	// ErrStoreUnavailable wraps every failure of the vote or profile store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrRaceLost is returned by a store when a concurrent writer won the
	// conditional upsert for the same pair.
	ErrRaceLost = errors.New("concurrent vote write")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
