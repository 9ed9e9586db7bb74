package appointment

import (
	"context"
	"time"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/dto"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	technicianID uint,
	locationID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc, err := uc.repo.GetLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	tz := timezone.Location(loc.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, tz)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		technicianID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}
