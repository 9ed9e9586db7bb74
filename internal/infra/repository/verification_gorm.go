package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/verification"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type VerificationGormRepository struct {
	db *gorm.DB
}

func NewVerificationGormRepository(db *gorm.DB) *VerificationGormRepository {
	return &VerificationGormRepository{db: db}
}

func (r *VerificationGormRepository) CountRecentUnverified(
	ctx context.Context,
	phone string,
	since time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Select("COUNT(*) + COALESCE(SUM(attempts), 0)").
		Where(
			"phone = ? AND verified = false AND created_at >= ?",
			phone,
			since,
		).
		Scan(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *VerificationGormRepository) RecordFailedAttempt(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *VerificationGormRepository) LatestUnverified(
	ctx context.Context,
	phone string,
) (*models.PhoneVerification, error) {

	var v models.PhoneVerification
	err := r.db.WithContext(ctx).
		Where("phone = ? AND verified = false", phone).
		Order("created_at DESC").
		First(&v).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *VerificationGormRepository) Create(
	ctx context.Context,
	v *models.PhoneVerification,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VerificationGormRepository) MarkVerified(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

// Compile-time check
var _ domain.Repository = (*VerificationGormRepository)(nil)
