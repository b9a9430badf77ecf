package backend

import "errors"

var (
	// ErrMalformedResponse means the analysis endpoint answered, but none of
	// the known envelope shapes could explain the body.
	ErrMalformedResponse = errors.New("unexpected response format from emotion analysis")

	// ErrAvailabilityCheck is the only error the availability check ever
	// reports. The underlying cause is discarded on purpose; the form only
	// needs to know the check could not complete.
	ErrAvailabilityCheck = errors.New("failed to check nickname availability")

	// ErrUserList is reported when the user listing cannot be fetched.
	ErrUserList = errors.New("failed to get users")
)

// AuthError carries the backend's rejection message for a registration or
// login attempt, or a generic fallback when the backend supplied none.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
