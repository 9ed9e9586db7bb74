package verification

import (
	"context"
	"time"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

type Repository interface {
	// CountRecentUnverified counts unverified rows for the phone
	// created at or after since, plus the wrong guesses recorded
	// against those rows. Verified rows never count, so a successful
	// confirmation starts a clean attempt history.
	CountRecentUnverified(
		ctx context.Context,
		phone string,
		since time.Time,
	) (int64, error)

	// RecordFailedAttempt adds one wrong guess to the row's counter.
	RecordFailedAttempt(
		ctx context.Context,
		id string,
	) error

	// LatestUnverified returns the most recent pending row for the
	// phone, or nil when none exists.
	LatestUnverified(
		ctx context.Context,
		phone string,
	) (*models.PhoneVerification, error)

	Create(
		ctx context.Context,
		v *models.PhoneVerification,
	) error

	MarkVerified(
		ctx context.Context,
		id string,
	) error
}
