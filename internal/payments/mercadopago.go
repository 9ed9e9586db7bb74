package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/customer"
	"github.com/mercadopago/sdk-go/pkg/customercard"
)

// MercadoPago implements Processor against the MercadoPago customer
// and card APIs. Constructed once at startup and injected into the
// use cases that need it.
type MercadoPago struct {
	customers customer.Client
	cards     customercard.Client
	publicKey string
}

func NewMercadoPago(accessToken, publicKey string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		customers: customer.NewClient(cfg),
		cards:     customercard.NewClient(cfg),
		publicKey: publicKey,
	}, nil
}

func (m *MercadoPago) EnsureProfile(
	ctx context.Context,
	email, firstName, lastName string,
) (string, error) {

	if email != "" {
		search, err := m.customers.Search(ctx, customer.SearchRequest{
			Filters: map[string]string{"email": email},
		})
		if err == nil && search != nil && len(search.Results) > 0 {
			return search.Results[0].ID, nil
		}
	}

	created, err := m.customers.Create(ctx, customer.Request{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return "", fmt.Errorf("mercadopago create customer: %w", err)
	}

	return created.ID, nil
}

func (m *MercadoPago) ListCards(
	ctx context.Context,
	profileID string,
) ([]Card, error) {

	resp, err := m.cards.List(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago list cards: %w", err)
	}

	// The default card id lives on the customer, not the card.
	defaultCardID := ""
	if profile, err := m.customers.Get(ctx, profileID); err == nil && profile != nil {
		defaultCardID = profile.DefaultCard
	}

	cards := make([]Card, 0, len(resp))
	for _, c := range resp {
		cards = append(cards, Card{
			ID:        c.ID,
			Brand:     c.PaymentMethod.Name,
			Last4:     c.LastFourDigits,
			ExpMonth:  c.ExpirationMonth,
			ExpYear:   c.ExpirationYear,
			Default:   defaultCardID != "" && c.ID == defaultCardID,
			CreatedAt: c.DateCreated,
		})
	}

	return cards, nil
}

func (m *MercadoPago) CardSetup(
	ctx context.Context,
	profileID string,
) (*SetupSecret, error) {

	// Card tokenization happens client-side with the public key; the
	// server only hands over the profile to attach the result to.
	return &SetupSecret{
		ProfileID: profileID,
		PublicKey: m.publicKey,
	}, nil
}

// Compile-time check
var _ Processor = (*MercadoPago)(nil)
