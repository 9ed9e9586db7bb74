package webhook

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	appointmentdomain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	clientdomain "github.com/velourstudio/salon-scheduler/internal/domain/client"
	webhookdomain "github.com/velourstudio/salon-scheduler/internal/domain/webhook"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/phone"
	"github.com/velourstudio/salon-scheduler/internal/sms"
)

// ConfirmWindow bounds which upcoming appointments an inbound reply
// can confirm.
const ConfirmWindow = 7 * 24 * time.Hour

const confirmedByInbound = "client_sms"

// ======================================================
// INTENT
// ======================================================

type Intent int

const (
	IntentUnknown Intent = iota
	IntentConfirm
)

var confirmWords = map[string]struct{}{
	"yes": {}, "y": {}, "confirm": {}, "c": {}, "ok": {}, "1": {},
}

func ParseIntent(body string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(body))
	normalized = strings.TrimRight(normalized, ".!")
	if _, ok := confirmWords[normalized]; ok {
		return IntentConfirm
	}
	return IntentUnknown
}

// ======================================================
// USE CASE
// ======================================================

type ProcessInbound struct {
	appointments appointmentdomain.Repository
	clients      clientdomain.Repository
	ledger       webhookdomain.LedgerRepository
	gateway      sms.Gateway
	audit        *audit.Dispatcher
	logger       zerolog.Logger
}

func NewProcessInbound(
	appointments appointmentdomain.Repository,
	clients clientdomain.Repository,
	ledger webhookdomain.LedgerRepository,
	gateway sms.Gateway,
	auditDispatcher *audit.Dispatcher,
	logger zerolog.Logger,
) *ProcessInbound {
	return &ProcessInbound{
		appointments: appointments,
		clients:      clients,
		ledger:       ledger,
		gateway:      gateway,
		audit:        auditDispatcher,
		logger:       logger.With().Str("component", "inbound_webhook").Logger(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs one inbound message through the confirmation state
// machine. A returned error means the ledger row was NOT written, so a
// gateway redelivery will retry the full sequence; the HTTP layer
// still acknowledges with 200 to avoid retry storms.
func (uc *ProcessInbound) Execute(ctx context.Context, msg sms.InboundMessage) error {

	// --------------------------------------------------
	// 1) Idempotency gate
	// --------------------------------------------------
	seen, err := uc.ledger.Exists(ctx, msg.MessageID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	now := time.Now()

	// --------------------------------------------------
	// 2) Intent. Unknown intents change nothing but are
	//    still marked processed.
	// --------------------------------------------------
	if ParseIntent(msg.Body) != IntentConfirm {
		uc.logger.Info().
			Str("message_id", msg.MessageID).
			Str("from", msg.From).
			Str("body", msg.Body).
			Msg("unrecognized inbound message, queued for manual review")
		return uc.markProcessed(ctx, msg, now)
	}

	// --------------------------------------------------
	// 3) Sender resolution by trailing 10 digits. No
	//    match: exit quietly, never reply to the wrong
	//    party.
	// --------------------------------------------------
	client, err := uc.clients.FindByPhoneSuffix(ctx, phone.Last10(msg.From))
	if err != nil {
		return err
	}
	if client == nil {
		uc.logger.Info().
			Str("message_id", msg.MessageID).
			Str("from", msg.From).
			Msg("inbound confirm from unknown number")
		return uc.markProcessed(ctx, msg, now)
	}

	// --------------------------------------------------
	// 4) Appointment selection: earliest pending in the
	//    window, else earliest already-confirmed (treated
	//    as a duplicate confirm).
	// --------------------------------------------------
	until := now.Add(ConfirmWindow)

	pending, err := uc.appointments.EarliestForClient(
		ctx, client.ID,
		[]string{string(appointmentdomain.StatusPending)},
		now, until,
	)
	if err != nil {
		return err
	}

	if pending == nil {
		confirmed, err := uc.appointments.EarliestForClient(
			ctx, client.ID,
			[]string{string(appointmentdomain.StatusConfirmed)},
			now, until,
		)
		if err != nil {
			return err
		}

		if confirmed != nil {
			// Already confirmed: acknowledge, mutate nothing.
			uc.sendAck(ctx, msg.From, confirmed)
			return uc.markProcessed(ctx, msg, now)
		}

		return uc.markProcessed(ctx, msg, now)
	}

	// --------------------------------------------------
	// 5) Atomic pending -> confirmed transition. A failed
	//    guard means staff changed the status first; log
	//    and move on, nothing surfaces to the sender.
	// --------------------------------------------------
	won, err := uc.appointments.ConfirmIfPending(ctx, pending.ID, confirmedByInbound, now)
	if err != nil {
		return err
	}

	if !won {
		uc.logger.Info().
			Uint("appointment_id", pending.ID).
			Msg("confirm guard failed, status changed concurrently")
		return uc.markProcessed(ctx, msg, now)
	}

	// --------------------------------------------------
	// 6) Acknowledgment is fire-and-forget: a delivery
	//    failure never rolls back the transition.
	// --------------------------------------------------
	uc.sendAck(ctx, msg.From, pending)

	uc.audit.Dispatch(audit.Event{
		LocationID: pending.LocationID,
		Action:     "appointment_confirmed",
		Entity:     "appointment",
		EntityID:   &pending.ID,
	})

	// --------------------------------------------------
	// 7) Ledger write happens last; any earlier error
	//    leaves the row absent so redelivery can retry.
	// --------------------------------------------------
	return uc.markProcessed(ctx, msg, now)
}

func (uc *ProcessInbound) sendAck(ctx context.Context, to string, ap *models.Appointment) {
	body := "You're confirmed for " + ap.StartTime.Format("Mon Jan 2 at 3:04 PM") + ". See you soon!"
	if err := uc.gateway.Send(ctx, to, body); err != nil {
		uc.logger.Warn().
			Err(err).
			Uint("appointment_id", ap.ID).
			Msg("failed to send confirmation ack")
	}
}

func (uc *ProcessInbound) markProcessed(ctx context.Context, msg sms.InboundMessage, now time.Time) error {
	err := uc.ledger.Record(ctx, &models.WebhookEvent{
		ID:          msg.MessageID,
		EventType:   "inbound_sms",
		FromNumber:  msg.From,
		Body:        msg.Body,
		ProcessedAt: now,
	})
	if err == webhookdomain.ErrDuplicateEvent {
		// A concurrent delivery of the same id beat us to the ledger.
		return nil
	}
	return err
}
