package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/client"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) FindByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ClientGormRepository) FindByPhoneSuffix(
	ctx context.Context,
	suffix string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone LIKE ?", "%"+suffix).
		Order("id ASC").
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) UpdateContact(
	ctx context.Context,
	c *models.Client,
) error {

	// Only caller-suppliable fields. phoneVerified/isBlocked stay
	// exclusively server-mutated.
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"first_name": c.FirstName,
			"last_name":  c.LastName,
			"email":      c.Email,
		}).Error
}

func (r *ClientGormRepository) SetPaymentProfileIfEmpty(
	ctx context.Context,
	clientID uint,
	profileID string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where(
			"id = ? AND (payment_profile_id IS NULL OR payment_profile_id = '')",
			clientID,
		).
		Update("payment_profile_id", profileID)

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *ClientGormRepository) MarkPhoneVerified(
	ctx context.Context,
	phone string,
) error {

	// Best effort: zero matched rows is fine.
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("phone = ?", phone).
		Update("phone_verified", true).Error
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
