package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPProvider sends messages through the SMS provider's REST API.
type HTTPProvider struct {
	url    string
	token  string
	from   string
	client *http.Client
	logger zerolog.Logger
}

func NewHTTPProvider(url, token, from string, logger zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		url:   url,
		token: token,
		from:  from,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("component", "sms_provider").Logger(),
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (p *HTTPProvider) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(sendRequest{
		From: p.from,
		To:   to,
		Body: body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		p.logger.Error().
			Int("status", resp.StatusCode).
			Str("to", to).
			Msg("sms provider rejected message")
		return fmt.Errorf("sms provider status %d", resp.StatusCode)
	}

	p.logger.Debug().Str("to", to).Msg("sms dispatched")
	return nil
}

// Compile-time check
var _ Gateway = (*HTTPProvider)(nil)
