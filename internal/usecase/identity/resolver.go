package identity

import (
	"context"

	clientdomain "github.com/velourstudio/salon-scheduler/internal/domain/client"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/phone"
)

// ======================================================
// INPUT
// ======================================================

type FindOrCreateInput struct {
	Phone     string
	FirstName string
	LastName  string
	Email     string
}

// ======================================================
// USE CASE
// ======================================================

type Resolver struct {
	clients   clientdomain.Repository
	processor payments.Processor
}

func NewResolver(
	clients clientdomain.Repository,
	processor payments.Processor,
) *Resolver {
	return &Resolver{
		clients:   clients,
		processor: processor,
	}
}

// FindOrCreateClient resolves a client by normalized phone, creating
// one on first contact. Name/email are overwritten from caller input;
// phoneVerified and isBlocked are server-owned and never touched here.
func (r *Resolver) FindOrCreateClient(
	ctx context.Context,
	in FindOrCreateInput,
) (*models.Client, error) {

	normalized := phone.Normalize(in.Phone)
	if normalized == "" {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	existing, err := r.clients.FindByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.IsBlocked {
			return nil, httperr.ErrBusiness("client_blocked")
		}

		existing.FirstName = in.FirstName
		existing.LastName = in.LastName
		existing.Email = in.Email
		if err := r.clients.UpdateContact(ctx, existing); err != nil {
			return nil, err
		}

		return existing, nil
	}

	client := &models.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     normalized,
		Email:     in.Email,
	}

	if err := r.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// LinkPaymentProfile makes sure the client has exactly one external
// payment profile. Two concurrent first-time bookings can both mint a
// processor profile; the conditional write lets only one id land, the
// loser re-reads and adopts the stored value.
func (r *Resolver) LinkPaymentProfile(
	ctx context.Context,
	client *models.Client,
) (string, error) {

	if client.PaymentProfileID != "" {
		return client.PaymentProfileID, nil
	}

	profileID, err := r.processor.EnsureProfile(
		ctx,
		client.Email,
		client.FirstName,
		client.LastName,
	)
	if err != nil {
		return "", err
	}

	won, err := r.clients.SetPaymentProfileIfEmpty(ctx, client.ID, profileID)
	if err != nil {
		return "", err
	}

	if !won {
		stored, err := r.clients.FindByPhone(ctx, client.Phone)
		if err != nil {
			return "", err
		}
		if stored != nil && stored.PaymentProfileID != "" {
			client.PaymentProfileID = stored.PaymentProfileID
			return stored.PaymentProfileID, nil
		}
	}

	client.PaymentProfileID = profileID
	return profileID, nil
}

// CardSetup returns the material the booking client needs to save a
// card on the client's profile.
func (r *Resolver) CardSetup(
	ctx context.Context,
	client *models.Client,
) (*payments.SetupSecret, error) {

	if client.PaymentProfileID == "" {
		return nil, httperr.ErrBusiness("no_payment_profile")
	}

	return r.processor.CardSetup(ctx, client.PaymentProfileID)
}
