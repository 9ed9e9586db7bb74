// Package sms holds the outbound message gateway and the inbound
// webhook types shared with it.
package sms

import "context"

// InboundMessage is one webhook delivery from the gateway.
type InboundMessage struct {
	MessageID string
	From      string
	To        string
	Body      string
}

type Gateway interface {
	Send(ctx context.Context, to, body string) error
}
