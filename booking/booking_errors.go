package booking

import "errors"

var ErrDateAlreadyBooked = errors.New("date already booked")

var ErrBookingNotFound = errors.New("booking not found")

var ErrInvalidBookingState = errors.New("invalid booking state")

// ValidationError carries the user-facing reason a candidate was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
