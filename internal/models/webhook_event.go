package models

import "time"

// WebhookEvent is the idempotency ledger for inbound messages. The
// primary key is the gateway's message id; a row existing at all means
// the message was already handled.
type WebhookEvent struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	EventType  string `gorm:"size:30" json:"event_type"`
	FromNumber string `gorm:"size:20" json:"from_number"`
	Body       string `gorm:"size:500" json:"body"`

	ProcessedAt time.Time `json:"processed_at"`
}
