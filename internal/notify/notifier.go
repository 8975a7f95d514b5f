// Package notify carries the real-time event contract between the API and
// whatever session gateway delivers events to connected users. Delivery is
// best effort: emitters report errors so callers can log them, but no caller
// treats a failed publish as a request failure.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published to per-user channels.
const (
	EventHired  = "bid:hired"
	EventNewBid = "bid:new"
)

// HiredEvent tells a freelancer their bid won a gig.
type HiredEvent struct {
	Message  string    `json:"message"`
	GigID    uuid.UUID `json:"gigId"`
	GigTitle string    `json:"gigTitle"`
	Price    float64   `json:"price"`
}

// NewBidEvent tells a gig owner a fresh bid arrived.
type NewBidEvent struct {
	Message  string    `json:"message"`
	GigID    uuid.UUID `json:"gigId"`
	GigTitle string    `json:"gigTitle"`
	Price    float64   `json:"price"`
}

// Envelope is the wire shape of every published event.
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Notifier routes an event to a user's active session, best effort.
type Notifier interface {
	NotifyHired(ctx context.Context, freelancerID uuid.UUID, event HiredEvent) error
	NotifyNewBid(ctx context.Context, ownerID uuid.UUID, event NewBidEvent) error
}

// NopNotifier discards every event. Used in tests and when no Redis is
// configured.
type NopNotifier struct{}

func (NopNotifier) NotifyHired(context.Context, uuid.UUID, HiredEvent) error { return nil }

func (NopNotifier) NotifyNewBid(context.Context, uuid.UUID, NewBidEvent) error { return nil }

var _ Notifier = NopNotifier{}
