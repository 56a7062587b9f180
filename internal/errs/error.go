package errs

import (
	"errors"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	// ErrForbidden: the resource exists but the actor has no rights on it.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation: malformed or logically impossible field values.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState: the operation is not permitted given current entity state.
	ErrInvalidState = errors.New("invalid state")

	ErrUnknownState = errors.New("unknown state")

	ErrEmailUsed = errors.New("email already in use")
)

// IsNotFound groups the access-hidden lookups: the transport layer maps all
// of them to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}
