package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	verificationdomain "github.com/velourstudio/salon-scheduler/internal/domain/verification"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/phone"
	"github.com/velourstudio/salon-scheduler/internal/sms"
)

const CodeTTL = 10 * time.Minute

type SendCode struct {
	verifications verificationdomain.Repository
	gateway       sms.Gateway
	logger        zerolog.Logger
}

func NewSendCode(
	verifications verificationdomain.Repository,
	gateway sms.Gateway,
	logger zerolog.Logger,
) *SendCode {
	return &SendCode{
		verifications: verifications,
		gateway:       gateway,
		logger:        logger.With().Str("component", "send_code").Logger(),
	}
}

// Execute creates one PhoneVerification row and dispatches the code.
// Each send is a fresh row; rows are never deleted or reused.
func (uc *SendCode) Execute(ctx context.Context, rawPhone string) error {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		return httperr.ErrBusiness("invalid_phone")
	}

	code, err := randomCode()
	if err != nil {
		return err
	}

	now := time.Now()
	row := &models.PhoneVerification{
		ID:        uuid.NewString(),
		Phone:     normalized,
		Code:      code,
		ExpiresAt: now.Add(CodeTTL),
		CreatedAt: now,
	}

	if err := uc.verifications.Create(ctx, row); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	if err := uc.gateway.Send(ctx, normalized, body); err != nil {
		uc.logger.Error().Err(err).Msg("failed to send verification code")
		return httperr.ErrBusiness("sms_send_failed")
	}

	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
