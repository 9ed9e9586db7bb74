package appointment

import (
	"context"
	"time"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	loc, err := uc.repo.GetLocationByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.LocationID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	tz := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			tz,
		)
	}

	open := loc.OpenTime
	closeAt := loc.CloseTime
	if open == "" || closeAt == "" {
		return []domain.TimeSlot{}, nil
	}

	dayStart := parseHM(open)
	dayEnd := parseHM(closeAt)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.TechnicianID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(svc.DurationMin) * time.Minute
	var slots []domain.TimeSlot

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// skip past finished appointments
		for apIdx < len(appointments) && appointments[apIdx].EndTime.Before(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
			}
		}

		if !conflict {
			blocked, err := uc.repo.HasBlockOverlap(ctx, in.TechnicianID, slotStart, slotEnd)
			if err != nil {
				return nil, err
			}
			if blocked {
				continue
			}

			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
