package appointment

import (
	"context"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type CheckInAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckInAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CheckInAppointment {
	return &CheckInAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CheckInAppointment) Execute(
	ctx context.Context,
	locationID uint,
	technicianID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForTechnician(ctx, appointmentID, technicianID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CheckIn(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: locationID,
		UserID:     &technicianID,
		Action:     "appointment_checked_in",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
