package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

// SQLSTATE for an exclusion constraint violation.
const pgExclusionViolation = "23P01"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Location
// --------------------------------------------------

func (r *AppointmentGormRepository) GetLocationByID(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *AppointmentGormRepository) GetLocationBySlug(
	ctx context.Context,
	slug string,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	locationID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND location_id = ? AND active = true", serviceID, locationID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflict(
	ctx context.Context,
	technicianID uint,
	start time.Time,
	end time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"technician_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			technicianID,
			domain.ActiveStatuses,
			end,
			start,
		).
		Order("start_time ASC").
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Create(ap).Error
	if err == nil {
		return nil
	}

	// The exclusion constraint fires when a concurrent insert won the
	// slot between our pre-check and this write.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		if winner, lookupErr := r.FindConflict(
			ctx, ap.TechnicianID, ap.StartTime, ap.EndTime,
		); lookupErr == nil && winner != nil {
			return httperr.ConflictError{
				AppointmentID: winner.ID,
				StartTime:     winner.StartTime,
				EndTime:       winner.EndTime,
			}
		}
		return httperr.ConflictError{StartTime: ap.StartTime, EndTime: ap.EndTime}
	}

	return err
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *AppointmentGormRepository) HasBlockOverlap(
	ctx context.Context,
	technicianID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TechnicianBlock{}).
		Where(
			"technician_id = ? AND start_time < ? AND end_time > ?",
			technicianID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForTechnician(
	ctx context.Context,
	appointmentID uint,
	technicianID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND technician_id = ?", appointmentID, technicianID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ConfirmIfPending(
	ctx context.Context,
	appointmentID uint,
	confirmedBy string,
	now time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":       string(domain.StatusConfirmed),
			"confirmed_at": now,
			"confirmed_by": confirmedBy,
		})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) EarliestForClient(
	ctx context.Context,
	clientID uint,
	statuses []string,
	from time.Time,
	until time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			clientID,
			statuses,
			from,
			until,
		).
		Order("start_time ASC").
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	technicianID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"technician_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			technicianID, domain.ActiveStatuses, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	technicianID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"technician_id = ? AND start_time >= ? AND start_time < ?",
			technicianID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

// isUniqueViolation is shared by the gorm repositories in this package.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// The pure-Go sqlite driver used in tests reports unique
	// violations as plain-text errors.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
