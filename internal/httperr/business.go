package httperr

import (
	"errors"
	"fmt"
	"time"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ConflictError carries the appointment that already occupies the
// requested slot so the caller can show what collided.
type ConflictError struct {
	AppointmentID uint
	StartTime     time.Time
	EndTime       time.Time
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("time conflict with appointment %d", e.AppointmentID)
}

// RateLimitedError is an expected, user-actionable outcome: back off
// for RetryAfter and try again.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return "too many attempts"
}

// InvalidCodeError reports how many attempts remain before lockout.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e InvalidCodeError) Error() string {
	return "invalid code"
}
