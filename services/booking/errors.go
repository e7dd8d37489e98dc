package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking transitions. Validation failures surface before any
// side effect; RefundFailed means the refund was attempted but the status was
// deliberately left untouched.
const (
	CodeNotFound                 = "notFound"
	CodeUnauthorized             = "unauthorized"
	CodeInvalidTransition        = "invalidTransition"
	CodeAlreadyRefunded          = "alreadyRefunded"
	CodeRefundFailed             = "refundFailed"
	CodeCancellationWindowClosed = "cancellationWindowClosed"
	CodeSlotUnavailable          = "slotUnavailable"
)

// BookingError carries a machine-readable code alongside the message so the
// transport layer can map failures to proper responses and the caller always
// learns the concrete reason.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// NewBookingError builds a BookingError with the given code.
func NewBookingError(code, format string, args ...interface{}) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapBookingError builds a BookingError wrapping an underlying cause.
func WrapBookingError(code string, err error, format string, args ...interface{}) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// HasCode reports whether err is a BookingError carrying the given code.
func HasCode(err error, code string) bool {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
