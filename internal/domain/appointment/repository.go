package appointment

import (
	"context"
	"time"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Location --------
	GetLocationByID(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	GetLocationBySlug(
		ctx context.Context,
		slug string,
	) (*models.Location, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		locationID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------

	// FindConflict returns the first active appointment for the
	// technician whose half-open interval overlaps [start, end), or
	// nil when the slot is free. This is the fast rejection path; the
	// database exclusion constraint is the correctness backstop.
	FindConflict(
		ctx context.Context,
		technicianID uint,
		start time.Time,
		end time.Time,
	) (*models.Appointment, error)

	// CreateAppointment inserts the row. A write-time overlap
	// rejection surfaces as httperr.ConflictError.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Blocks --------
	HasBlockOverlap(
		ctx context.Context,
		technicianID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointmentForTechnician(
		ctx context.Context,
		appointmentID uint,
		technicianID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ConfirmIfPending flips status pending -> confirmed, stamping
	// confirmedAt/confirmedBy, guarded by status still being pending
	// at write time. Returns false when the guard fails.
	ConfirmIfPending(
		ctx context.Context,
		appointmentID uint,
		confirmedBy string,
		now time.Time,
	) (bool, error)

	// EarliestForClient returns the earliest appointment for the
	// client in one of the given statuses starting within
	// [from, until), or nil when there is none.
	EarliestForClient(
		ctx context.Context,
		clientID uint,
		statuses []string,
		from time.Time,
		until time.Time,
	) (*models.Appointment, error)

	// -------- Listings --------
	ListAppointmentsForDay(
		ctx context.Context,
		technicianID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		technicianID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
