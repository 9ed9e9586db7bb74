// Package payments wraps the external payment processor. The engine
// only binds a payment method to a client ("card on file"); it never
// charges during booking.
package payments

import (
	"context"
	"time"
)

// Card is a stored payment method on an external profile.
type Card struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	ExpMonth  int       `json:"exp_month"`
	ExpYear   int       `json:"exp_year"`
	Default   bool      `json:"default"`
	CreatedAt time.Time `json:"created_at"`
}

// SetupSecret is the client-usable material for tokenizing and saving
// a card against an existing profile, without any charge.
type SetupSecret struct {
	ProfileID string `json:"profile_id"`
	PublicKey string `json:"public_key"`
}

type Processor interface {
	// EnsureProfile returns the external profile id for the contact,
	// creating one if the processor has none yet.
	EnsureProfile(ctx context.Context, email, firstName, lastName string) (string, error)

	// ListCards returns the stored cards for a profile.
	ListCards(ctx context.Context, profileID string) ([]Card, error)

	// CardSetup returns the secret material the booking client needs
	// to save a card on the profile.
	CardSetup(ctx context.Context, profileID string) (*SetupSecret, error)
}
