package appointment

import (
	"context"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	locationID uint,
	technicianID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	loc, err := uc.repo.GetLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForTechnician(ctx, appointmentID, technicianID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(loc.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: locationID,
		UserID:     &technicianID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
