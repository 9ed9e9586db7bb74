package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/webhook"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type WebhookEventGormRepository struct {
	db *gorm.DB
}

func NewWebhookEventGormRepository(db *gorm.DB) *WebhookEventGormRepository {
	return &WebhookEventGormRepository{db: db}
}

func (r *WebhookEventGormRepository) Exists(
	ctx context.Context,
	messageID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WebhookEvent{}).
		Where("id = ?", messageID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *WebhookEventGormRepository) Record(
	ctx context.Context,
	ev *models.WebhookEvent,
) error {

	err := r.db.WithContext(ctx).Create(ev).Error
	if err == nil {
		return nil
	}

	// Natural primary key: a concurrent redelivery that raced us past
	// the Exists check lands here.
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEvent
	}

	return err
}

// Compile-time check
var _ domain.LedgerRepository = (*WebhookEventGormRepository)(nil)
