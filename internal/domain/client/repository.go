package client

import (
	"context"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

// Repository is the typed access layer for clients. All phone
// arguments are expected in digits-only canonical form.
type Repository interface {
	FindByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	// FindByPhoneSuffix matches a client whose stored phone ends with
	// the given trailing-10-digit suffix (inbound sender resolution).
	FindByPhoneSuffix(
		ctx context.Context,
		suffix string,
	) (*models.Client, error)

	Create(
		ctx context.Context,
		c *models.Client,
	) error

	// UpdateContact overwrites name/email only. Server-owned fields
	// (phoneVerified, isBlocked) are never touched here.
	UpdateContact(
		ctx context.Context,
		c *models.Client,
	) error

	// SetPaymentProfileIfEmpty persists the external profile id only
	// if the field is still empty at write time. Returns false when
	// another writer already won.
	SetPaymentProfileIfEmpty(
		ctx context.Context,
		clientID uint,
		profileID string,
	) (bool, error)

	// MarkPhoneVerified flags every client sharing the phone.
	// Best effort: no matching client is not an error.
	MarkPhoneVerified(
		ctx context.Context,
		phone string,
	) error
}
