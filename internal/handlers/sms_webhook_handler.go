package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/velourstudio/salon-scheduler/internal/sms"
	"github.com/velourstudio/salon-scheduler/internal/usecase/webhook"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// SMSWebhookHandler receives inbound message deliveries from the SMS
// gateway. Once the signature passes the handler always answers 200
// with an empty body; unprocessed messages are picked up again on the
// gateway's periodic redelivery because no ledger row was written.
type SMSWebhookHandler struct {
	processor *webhook.ProcessInbound
	validator *sms.Validator
	publicURL string
	logger    zerolog.Logger
}

func NewSMSWebhookHandler(
	processor *webhook.ProcessInbound,
	validator *sms.Validator,
	publicURL string,
	logger zerolog.Logger,
) *SMSWebhookHandler {
	return &SMSWebhookHandler{
		processor: processor,
		validator: validator,
		publicURL: publicURL,
		logger:    logger.With().Str("component", "sms_webhook").Logger(),
	}
}

const signatureHeader = "X-Gateway-Signature"

////////////////////////////////////////////////////////
// INBOUND
////////////////////////////////////////////////////////

func (h *SMSWebhookHandler) Inbound(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		// An unparseable body cannot have its signature checked.
		c.Status(http.StatusForbidden)
		return
	}

	params := make(map[string]string, len(c.Request.PostForm))
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}

	// A forged signature is rejected outright: no ledger row, no
	// processing, and a status the gateway will surface as an error.
	signature := c.GetHeader(signatureHeader)
	if !h.validator.Valid(h.publicURL, params, signature) {
		h.logger.Warn().
			Str("message_id", params["MessageSid"]).
			Msg("inbound webhook failed signature validation")
		c.Status(http.StatusForbidden)
		return
	}

	msg := sms.InboundMessage{
		MessageID: params["MessageSid"],
		From:      params["From"],
		To:        params["To"],
		Body:      params["Body"],
	}

	// A signed delivery without a message id or sender cannot be
	// processed or deduplicated. Still a 200: redelivering it will
	// never produce a different outcome.
	if msg.MessageID == "" || msg.From == "" {
		h.logger.Warn().
			Str("message_id", msg.MessageID).
			Msg("inbound webhook missing message id or sender")
		c.Status(http.StatusOK)
		return
	}

	// Processing failures are logged, not returned: the message was
	// not marked processed, so the gateway's redelivery retries it.
	if err := h.processor.Execute(c.Request.Context(), msg); err != nil {
		h.logger.Error().
			Err(err).
			Str("message_id", msg.MessageID).
			Msg("inbound webhook processing failed")
	}

	c.Status(http.StatusOK)
}
