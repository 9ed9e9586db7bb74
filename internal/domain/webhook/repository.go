package webhook

import (
	"context"
	"errors"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

// ErrDuplicateEvent means the ledger already holds this message id.
var ErrDuplicateEvent = errors.New("duplicate webhook event")

// LedgerRepository is the append-only idempotency ledger. A row's
// mere existence means the message was already handled.
type LedgerRepository interface {
	Exists(
		ctx context.Context,
		messageID string,
	) (bool, error)

	// Record inserts the ledger row; a concurrent duplicate insert
	// surfaces as ErrDuplicateEvent.
	Record(
		ctx context.Context,
		ev *models.WebhookEvent,
	) error
}
