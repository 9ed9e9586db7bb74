package verification

import (
	"context"
	"crypto/subtle"
	"sort"
	"time"

	"github.com/rs/zerolog"

	clientdomain "github.com/velourstudio/salon-scheduler/internal/domain/client"
	verificationdomain "github.com/velourstudio/salon-scheduler/internal/domain/verification"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/phone"
	"github.com/velourstudio/salon-scheduler/internal/token"
)

const (
	// Lockout: max sends plus wrong guesses per phone inside the
	// window. Each unverified row counts once for the send and once
	// per wrong guess recorded against it.
	MaxAttempts    = 5
	AttemptsWindow = 15 * time.Minute
)

// ======================================================
// OUTPUT
// ======================================================

type ConfirmResult struct {
	Token          string          `json:"token"`
	ExpiresAt      time.Time       `json:"expires_at"`
	Client         *models.Client  `json:"client,omitempty"`
	PaymentMethods []payments.Card `json:"payment_methods"`
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmCode struct {
	verifications verificationdomain.Repository
	clients       clientdomain.Repository
	processor     payments.Processor
	codec         *token.Codec
	logger        zerolog.Logger
}

func NewConfirmCode(
	verifications verificationdomain.Repository,
	clients clientdomain.Repository,
	processor payments.Processor,
	codec *token.Codec,
	logger zerolog.Logger,
) *ConfirmCode {
	return &ConfirmCode{
		verifications: verifications,
		clients:       clients,
		processor:     processor,
		codec:         codec,
		logger:        logger.With().Str("component", "confirm_code").Logger(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmCode) Execute(
	ctx context.Context,
	rawPhone string,
	code string,
) (*ConfirmResult, error) {

	// --------------------------------------------------
	// 1) Normalize
	// --------------------------------------------------
	normalized := phone.Normalize(rawPhone)
	if normalized == "" || code == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	now := time.Now()

	// --------------------------------------------------
	// 2) Lockout window. Verified rows never count, so a
	//    successful confirmation resets the ledger.
	// --------------------------------------------------
	priorCount, err := uc.verifications.CountRecentUnverified(
		ctx, normalized, now.Add(-AttemptsWindow),
	)
	if err != nil {
		return nil, err
	}
	if priorCount >= MaxAttempts {
		return nil, httperr.RateLimitedError{RetryAfter: AttemptsWindow}
	}

	// --------------------------------------------------
	// 3) Most recent pending code
	// --------------------------------------------------
	pending, err := uc.verifications.LatestUnverified(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, httperr.ErrBusiness("no_pending_verification")
	}

	// --------------------------------------------------
	// 4) Expiry
	// --------------------------------------------------
	if now.After(pending.ExpiresAt) {
		return nil, httperr.ErrBusiness("code_expired")
	}

	// --------------------------------------------------
	// 5) Constant-time code comparison
	// --------------------------------------------------
	if !codesMatch(code, pending.Code) {
		if err := uc.verifications.RecordFailedAttempt(ctx, pending.ID); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to record wrong guess")
		}
		remaining := MaxAttempts - int(priorCount) - 1
		if remaining < 0 {
			remaining = 0
		}
		return nil, httperr.InvalidCodeError{AttemptsRemaining: remaining}
	}

	// --------------------------------------------------
	// 6) Consume the code; flag the client (best effort)
	// --------------------------------------------------
	if err := uc.verifications.MarkVerified(ctx, pending.ID); err != nil {
		return nil, err
	}

	if err := uc.clients.MarkPhoneVerified(ctx, normalized); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to flag client phone_verified")
	}

	client, err := uc.clients.FindByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7) Stored payment methods
	// --------------------------------------------------
	cards := []payments.Card{}
	if client != nil && client.PaymentProfileID != "" {
		listed, err := uc.processor.ListCards(ctx, client.PaymentProfileID)
		if err != nil {
			uc.logger.Warn().
				Err(err).
				Uint("client_id", client.ID).
				Msg("failed to list stored payment methods")
		} else {
			cards = usableCards(listed, now)
		}
	}

	// --------------------------------------------------
	// 8) Session token: full session when a client exists,
	//    phone-only otherwise
	// --------------------------------------------------
	var clientID *uint
	if client != nil {
		clientID = &client.ID
	}

	signed, err := uc.codec.CreateToken(clientID, normalized, now)
	if err != nil {
		return nil, err
	}

	return &ConfirmResult{
		Token:          signed,
		ExpiresAt:      now.Add(token.SessionTTL),
		Client:         client,
		PaymentMethods: cards,
	}, nil
}

// codesMatch compares in constant time; length mismatch is a plain
// mismatch (stored codes have a fixed length anyway).
func codesMatch(supplied, stored string) bool {
	if len(supplied) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}

// usableCards drops cards expired before the current month and orders
// default-first, then most recently added.
func usableCards(cards []payments.Card, now time.Time) []payments.Card {
	kept := make([]payments.Card, 0, len(cards))
	for _, c := range cards {
		if cardExpired(c, now) {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Default != kept[j].Default {
			return kept[i].Default
		}
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})

	return kept
}

func cardExpired(c payments.Card, now time.Time) bool {
	if c.ExpYear < now.Year() {
		return true
	}
	if c.ExpYear == now.Year() && c.ExpMonth < int(now.Month()) {
		return true
	}
	return false
}
