package booking

import (
	"errors"
	"fmt"

	"rentora/models"
)

// Error codes surfaced to the orchestration boundary.
const (
	CodeInvalidDateRange        = "invalidDateRange"
	CodeAvailabilityConflict    = "availabilityConflict"
	CodeAvailabilityCheckFailed = "availabilityCheckFailed"
	CodePersistenceFailed       = "persistenceFailed"
	CodeInvalidInput            = "invalidInput"
	CodeNotFound                = "notFound"
	CodeSessionClosed           = "sessionClosed"
)

// Error is a typed booking failure with a machine-readable code.
type Error struct {
	Code     string
	Message  string
	Conflict *models.Booking // set for availability conflicts
	cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidDateRange reports an unusable check-in/check-out pair.
func NewInvalidDateRange(msg string) error {
	return &Error{Code: CodeInvalidDateRange, Message: msg}
}

// NewConflict reports an availability conflict, optionally naming the
// booking that holds the calendar.
func NewConflict(conflicting *models.Booking) error {
	msg := "property is not available for the selected dates"
	if conflicting != nil {
		msg = fmt.Sprintf("property is not available: conflicting booking from %s to %s",
			conflicting.CheckIn.Format("2006-01-02"), conflicting.CheckOut.Format("2006-01-02"))
	}
	return &Error{Code: CodeAvailabilityConflict, Message: msg, Conflict: conflicting}
}

// NewCheckFailed reports a storage read failure during availability checking.
func NewCheckFailed(cause error) error {
	return &Error{Code: CodeAvailabilityCheckFailed, Message: "availability check failed", cause: cause}
}

// NewPersistenceFailed reports a failed write after a successful check.
func NewPersistenceFailed(cause error) error {
	return &Error{Code: CodePersistenceFailed, Message: "failed to save booking", cause: cause}
}

// AsError extracts a typed booking error from an error chain.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
