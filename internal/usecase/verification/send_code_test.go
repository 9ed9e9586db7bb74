package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
)

type fakeGateway struct {
	sendErr error

	to   string
	body string
}

func (f *fakeGateway) Send(_ context.Context, to, body string) error {
	f.to = to
	f.body = body
	return f.sendErr
}

func TestSendCode_CreatesRowAndSends(t *testing.T) {
	verifications := &fakeVerificationRepo{}
	gateway := &fakeGateway{}
	uc := NewSendCode(verifications, gateway, zerolog.Nop())

	err := uc.Execute(context.Background(), "(714) 555-0100")
	require.NoError(t, err)

	row := verifications.created
	require.NotNil(t, row)
	assert.Equal(t, "7145550100", row.Phone)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), row.Code)
	assert.False(t, row.Verified)
	assert.WithinDuration(t, time.Now().Add(CodeTTL), row.ExpiresAt, 5*time.Second)

	assert.Equal(t, "7145550100", gateway.to)
	assert.Contains(t, gateway.body, row.Code)
}

func TestSendCode_InvalidPhone(t *testing.T) {
	uc := NewSendCode(&fakeVerificationRepo{}, &fakeGateway{}, zerolog.Nop())

	err := uc.Execute(context.Background(), "no digits here")
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestSendCode_GatewayFailure(t *testing.T) {
	uc := NewSendCode(
		&fakeVerificationRepo{},
		&fakeGateway{sendErr: errors.New("provider down")},
		zerolog.Nop(),
	)

	err := uc.Execute(context.Background(), "7145550100")
	assert.True(t, httperr.IsBusiness(err, "sms_send_failed"))
}
