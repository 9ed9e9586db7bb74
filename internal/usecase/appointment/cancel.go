package appointment

import (
	"context"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
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
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: locationID,
		UserID:     &technicianID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
