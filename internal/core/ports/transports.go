package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// PushEvent is a real-time message for one connected user.
type PushEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Pusher delivers real-time events. Delivery is at-most-once; a user without
// a live connection simply misses the event.
type Pusher interface {
	Push(ctx context.Context, userID kernel.UUID, event PushEvent) error
}

// Email is a rendered HTML email.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends email. Callers treat failures as log-only.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// OrderEvent is the integration event emitted for every order lifecycle change.
type OrderEvent struct {
	Type        string            `json:"type"`
	OrderID     string            `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	StoreID     string            `json:"storeId"`
	Status      string            `json:"status"`
	ActorID     string            `json:"actorId"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// EventPublisher emits integration events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// Clock abstracts time for handlers and jobs.
type Clock interface {
	Now() time.Time
}
