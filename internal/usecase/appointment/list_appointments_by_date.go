package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/dto"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	technicianID uint,
	locationID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc, err := uc.repo.GetLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	tz := timezone.Location(loc.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		tz,
	)
	end := start.Add(24 * time.Hour)

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

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	clientName := strings.TrimSpace(ap.Client.FirstName + " " + ap.Client.LastName)
	return dto.AppointmentListDTO{
		ID:          ap.ID,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		ClientName:  clientName,
		ServiceName: ap.Service.Name,
	}
}
