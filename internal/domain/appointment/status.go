package appointment

import "github.com/velourstudio/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses are the statuses in which the time slot is still
// occupied for conflict purposes.
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusCheckedIn),
}

func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCheckedIn
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckIn(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusCheckedIn && current != StatusConfirmed && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
