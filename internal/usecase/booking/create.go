package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
	"github.com/velourstudio/salon-scheduler/internal/usecase/identity"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	LocationID   uint
	TechnicianID uint

	ClientFirstName string
	ClientLastName  string
	ClientPhone     string
	ClientEmail     string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

type CreateBookingResult struct {
	Appointment *models.Appointment   `json:"appointment"`
	CardSetup   *payments.SetupSecret `json:"card_setup,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	resolver *identity.Resolver
	audit    *audit.Dispatcher
	logger   zerolog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	resolver *identity.Resolver,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		resolver: resolver,
		audit:    audit,
		logger:   logger.With().Str("component", "create_booking").Logger(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1) Location
	// --------------------------------------------------
	loc, err := uc.repo.GetLocationByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2) Date / time in the location's timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3) Minimum advance
	// --------------------------------------------------
	minAdvance := loc.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(loc.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4) Service and interval
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.LocationID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5) Technician blocks
	// --------------------------------------------------
	blocked, err := uc.repo.HasBlockOverlap(ctx, in.TechnicianID, start, end)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, httperr.ErrBusiness("technician_unavailable")
	}

	// --------------------------------------------------
	// 6) Client (find or create, normalized phone)
	// --------------------------------------------------
	client, err := uc.resolver.FindOrCreateClient(ctx, identity.FindOrCreateInput{
		Phone:     in.ClientPhone,
		FirstName: in.ClientFirstName,
		LastName:  in.ClientLastName,
		Email:     in.ClientEmail,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7) Conflict pre-check (fast, informative rejection)
	// --------------------------------------------------
	conflict, err := uc.repo.FindConflict(ctx, in.TechnicianID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, httperr.ConflictError{
			AppointmentID: conflict.ID,
			StartTime:     conflict.StartTime,
			EndTime:       conflict.EndTime,
		}
	}

	// --------------------------------------------------
	// 8) Insert; the exclusion constraint is the backstop
	//    for the pre-check/insert race
	// --------------------------------------------------
	ap := &models.Appointment{
		LocationID:    in.LocationID,
		TechnicianID:  in.TechnicianID,
		ClientID:      client.ID,
		ServiceID:     svc.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		DepositAmount: svc.DepositAmount,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9) Card on file. The booking is already committed;
	//    a processor failure must not lose the slot.
	// --------------------------------------------------
	result := &CreateBookingResult{Appointment: ap}

	if setup, err := uc.linkCardSetup(ctx, client); err != nil {
		uc.logger.Warn().
			Err(err).
			Uint("client_id", client.ID).
			Uint("appointment_id", ap.ID).
			Msg("card setup unavailable for booking")
	} else {
		result.CardSetup = setup
	}

	// --------------------------------------------------
	// 10) Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		LocationID: in.LocationID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return result, nil
}

func (uc *CreateBooking) linkCardSetup(
	ctx context.Context,
	client *models.Client,
) (*payments.SetupSecret, error) {

	if _, err := uc.resolver.LinkPaymentProfile(ctx, client); err != nil {
		return nil, err
	}

	return uc.resolver.CardSetup(ctx, client)
}
