package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/usecase/identity"
)

// ----- Fakes -----

type fakeAppointmentRepo struct {
	location *models.Location
	service  *models.Service

	conflict *models.Appointment
	blocked  bool

	created   *models.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) GetLocationByID(_ context.Context, _ uint) (*models.Location, error) {
	if f.location == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.location, nil
}

func (f *fakeAppointmentRepo) GetLocationBySlug(_ context.Context, _ string) (*models.Location, error) {
	return f.GetLocationByID(context.Background(), 0)
}

func (f *fakeAppointmentRepo) GetService(_ context.Context, _, _ uint) (*models.Service, error) {
	if f.service == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.service, nil
}

func (f *fakeAppointmentRepo) FindConflict(_ context.Context, _ uint, _, _ time.Time) (*models.Appointment, error) {
	return f.conflict, nil
}

func (f *fakeAppointmentRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = 99
	f.created = ap
	return nil
}

func (f *fakeAppointmentRepo) HasBlockOverlap(_ context.Context, _ uint, _, _ time.Time) (bool, error) {
	return f.blocked, nil
}

func (f *fakeAppointmentRepo) GetAppointmentForTechnician(_ context.Context, _, _ uint) (*models.Appointment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeAppointmentRepo) ConfirmIfPending(_ context.Context, _ uint, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAppointmentRepo) EarliestForClient(_ context.Context, _ uint, _ []string, _, _ time.Time) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListAppointmentsForDay(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

type fakeClientRepo struct {
	existing *models.Client
}

func (f *fakeClientRepo) FindByPhone(_ context.Context, _ string) (*models.Client, error) {
	return f.existing, nil
}

func (f *fakeClientRepo) FindByPhoneSuffix(_ context.Context, _ string) (*models.Client, error) {
	return f.existing, nil
}

func (f *fakeClientRepo) Create(_ context.Context, c *models.Client) error {
	c.ID = 5
	return nil
}

func (f *fakeClientRepo) UpdateContact(_ context.Context, _ *models.Client) error {
	return nil
}

func (f *fakeClientRepo) SetPaymentProfileIfEmpty(_ context.Context, _ uint, _ string) (bool, error) {
	return true, nil
}

func (f *fakeClientRepo) MarkPhoneVerified(_ context.Context, _ string) error {
	return nil
}

type fakeProcessor struct {
	ensureErr error
}

func (f *fakeProcessor) EnsureProfile(_ context.Context, _, _, _ string) (string, error) {
	return "prof_1", f.ensureErr
}

func (f *fakeProcessor) ListCards(_ context.Context, _ string) ([]payments.Card, error) {
	return nil, nil
}

func (f *fakeProcessor) CardSetup(_ context.Context, profileID string) (*payments.SetupSecret, error) {
	return &payments.SetupSecret{ProfileID: profileID, PublicKey: "pk_test"}, nil
}

// ----- Helpers -----

func newTestDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return audit.NewDispatcher(audit.New(db))
}

func newCreateBooking(repo *fakeAppointmentRepo, proc *fakeProcessor, t *testing.T) *CreateBooking {
	resolver := identity.NewResolver(&fakeClientRepo{}, proc)
	return NewCreateBooking(repo, resolver, newTestDispatcher(t), zerolog.Nop())
}

func futureInput() CreateBookingInput {
	day := time.Now().UTC().Add(48 * time.Hour)
	return CreateBookingInput{
		LocationID:      1,
		TechnicianID:    2,
		ClientFirstName: "Dana",
		ClientLastName:  "Reyes",
		ClientPhone:     "714-555-0100",
		ServiceID:       3,
		Date:            day.Format("2006-01-02"),
		Time:            "10:00",
	}
}

func openRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		location: &models.Location{ID: 1, Timezone: "UTC", MinAdvanceMinutes: 60},
		service:  &models.Service{ID: 3, DurationMin: 45, DepositAmount: 20},
	}
}

// ----- Tests -----

func TestCreateBooking_Success(t *testing.T) {
	repo := openRepo()
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	result, err := uc.Execute(context.Background(), futureInput())
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "pending", repo.created.Status)
	assert.Equal(t, 45*time.Minute, repo.created.EndTime.Sub(repo.created.StartTime))
	assert.Equal(t, 20.0, repo.created.DepositAmount)

	require.NotNil(t, result.CardSetup)
	assert.Equal(t, "prof_1", result.CardSetup.ProfileID)
}

func TestCreateBooking_ConflictCarriesDetails(t *testing.T) {
	repo := openRepo()
	repo.conflict = &models.Appointment{
		ID:        77,
		StartTime: time.Now().Add(48 * time.Hour),
		EndTime:   time.Now().Add(49 * time.Hour),
	}
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	_, err := uc.Execute(context.Background(), futureInput())

	var conflict httperr.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, uint(77), conflict.AppointmentID)
	assert.Nil(t, repo.created, "no row may be written on conflict")
}

func TestCreateBooking_WriteTimeConflictSurfaces(t *testing.T) {
	repo := openRepo()
	repo.createErr = httperr.ConflictError{AppointmentID: 88}
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	_, err := uc.Execute(context.Background(), futureInput())

	var conflict httperr.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, uint(88), conflict.AppointmentID)
}

func TestCreateBooking_TooSoon(t *testing.T) {
	repo := openRepo()
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	in := futureInput()
	soon := time.Now().UTC().Add(10 * time.Minute)
	in.Date = soon.Format("2006-01-02")
	in.Time = soon.Format("15:04")

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBooking_TechnicianBlocked(t *testing.T) {
	repo := openRepo()
	repo.blocked = true
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	_, err := uc.Execute(context.Background(), futureInput())
	assert.True(t, httperr.IsBusiness(err, "technician_unavailable"))
}

func TestCreateBooking_UnknownService(t *testing.T) {
	repo := openRepo()
	repo.service = nil
	uc := newCreateBooking(repo, &fakeProcessor{}, t)

	_, err := uc.Execute(context.Background(), futureInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_ProcessorFailureKeepsBooking(t *testing.T) {
	repo := openRepo()
	uc := newCreateBooking(repo, &fakeProcessor{ensureErr: errors.New("processor down")}, t)

	result, err := uc.Execute(context.Background(), futureInput())
	require.NoError(t, err, "a processor outage must not lose the slot")

	require.NotNil(t, repo.created)
	assert.Nil(t, result.CardSetup)
}
