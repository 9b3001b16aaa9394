// Package notifications implements the notification fan-out: durable records
// written inside the state-changing transaction, followed by best-effort
// real-time push, integration events and email once the transaction commits.
package notifications

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "fulfillment/notifications"

// Batch collects the side effects of one state change. It is not safe for
// concurrent use; each command handler owns its batch.
type Batch struct {
	records []*notification.Notification
	emails  []ports.Email
	events  []ports.OrderEvent
	seen    map[notificationKey]struct{}
}

type notificationKey struct {
	user kernel.UUID
	kind notification.Type
}

func NewBatch() *Batch {
	return &Batch{seen: make(map[notificationKey]struct{})}
}

// Records returns the notifications recorded so far.
func (b *Batch) Records() []*notification.Notification {
	return b.records
}

// Emails returns the queued emails.
func (b *Batch) Emails() []ports.Email {
	return b.emails
}

// Events returns the queued integration events.
func (b *Batch) Events() []ports.OrderEvent {
	return b.events
}

// FanOut fans one lifecycle event out to every interested party.
//
// Recording and delivery are split: Notify, NotifyCapable, EmailUser and
// Publish only queue work on a Batch; Persist writes the records through the
// transaction's repository; Deliver runs after commit and never fails.
type FanOut struct {
	users               ports.UserDirectory
	pusher              ports.Pusher
	mailer              ports.Mailer
	publisher           ports.EventPublisher
	clock               ports.Clock
	logger              *zap.Logger
	tracer              trace.Tracer
	emailOnStatusChange bool
}

// Option configures a FanOut.
type Option func(*FanOut)

// WithPusher enables real-time push.
func WithPusher(p ports.Pusher) Option {
	return func(f *FanOut) { f.pusher = p }
}

// WithMailer enables email.
func WithMailer(m ports.Mailer) Option {
	return func(f *FanOut) { f.mailer = m }
}

// WithPublisher enables integration events.
func WithPublisher(p ports.EventPublisher) Option {
	return func(f *FanOut) { f.publisher = p }
}

// WithStatusChangeEmails mails the store on every order status change.
func WithStatusChangeEmails(enabled bool) Option {
	return func(f *FanOut) { f.emailOnStatusChange = enabled }
}

func NewFanOut(users ports.UserDirectory, clock ports.Clock, logger *zap.Logger, opts ...Option) *FanOut {
	f := &FanOut{
		users:  users,
		clock:  clock,
		logger: logger.With(zap.String("component", "notification_fanout")),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// EmailOnStatusChange reports whether stores are mailed on status changes.
func (f *FanOut) EmailOnStatusChange() bool {
	return f.emailOnStatusChange
}

// Notify queues one notification per distinct recipient.
func (f *FanOut) Notify(
	b *Batch,
	kind notification.Type,
	payload notification.Payload,
	recipients ...kernel.UUID,
) error {
	now := f.clock.Now()
	for _, userID := range recipients {
		key := notificationKey{user: userID, kind: kind}
		if _, dup := b.seen[key]; dup {
			continue
		}
		n, err := notification.New(kernel.NewUUID(), userID, kind, payload, now)
		if err != nil {
			return err
		}
		b.seen[key] = struct{}{}
		b.records = append(b.records, n)
	}
	return nil
}

// NotifyCapable queues a notification for every active user whose role grants c.
func (f *FanOut) NotifyCapable(
	ctx context.Context,
	b *Batch,
	c kernel.Capability,
	kind notification.Type,
	payload notification.Payload,
) error {
	for _, role := range kernel.RolesWith(c) {
		users, err := f.users.ListByRole(ctx, role)
		if err != nil {
			return err
		}
		ids := make([]kernel.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		if err = f.Notify(b, kind, payload, ids...); err != nil {
			return err
		}
	}
	return nil
}

// EmailUser queues a rendered email to userID. Users without an address, or
// that cannot be resolved, are skipped with a log line.
func (f *FanOut) EmailUser(ctx context.Context, b *Batch, userID kernel.UUID, render func(name string) (subject, html string, err error)) {
	if f.mailer == nil {
		return
	}
	u, err := f.users.Get(ctx, userID)
	if err != nil {
		f.logger.Warn("skip email: recipient lookup failed", zap.Stringer("user_id", userID), zap.Error(err))
		return
	}
	if !u.HasEmail() {
		return
	}
	subject, html, err := render(u.Name)
	if err != nil {
		f.logger.Error("skip email: render failed", zap.Stringer("user_id", userID), zap.Error(err))
		return
	}
	b.emails = append(b.emails, ports.Email{To: u.Email, Subject: subject, HTML: html})
}

// Publish queues an integration event.
func (f *FanOut) Publish(b *Batch, event ports.OrderEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = f.clock.Now()
	}
	b.events = append(b.events, event)
}

// Persist writes the batch's notification records. Call it inside the
// transaction that performs the state change.
func (f *FanOut) Persist(ctx context.Context, repo ports.NotificationRepository, b *Batch) error {
	if len(b.records) == 0 {
		return nil
	}
	return repo.Add(ctx, b.records...)
}

// Deliver pushes, publishes and mails the batch. Call it after commit. Every
// failure is logged and swallowed.
func (f *FanOut) Deliver(ctx context.Context, b *Batch) {
	ctx, span := f.tracer.Start(ctx, "notifications.Deliver", trace.WithAttributes(
		attribute.Int("notifications.records", len(b.records)),
		attribute.Int("notifications.events", len(b.events)),
		attribute.Int("notifications.emails", len(b.emails)),
	))
	defer span.End()

	failures := 0
	if f.pusher != nil {
		for _, n := range b.records {
			event := ports.PushEvent{Type: n.Type().String(), Data: PushView(n)}
			if err := f.pusher.Push(ctx, n.UserID(), event); err != nil {
				failures++
				f.logger.Warn("push failed",
					zap.Stringer("user_id", n.UserID()),
					zap.String("type", n.Type().String()),
					zap.Error(err))
			}
		}
	}

	if f.publisher != nil {
		for _, e := range b.events {
			if err := f.publisher.Publish(ctx, e); err != nil {
				failures++
				f.logger.Warn("publish order event failed",
					zap.String("type", e.Type),
					zap.String("order_id", e.OrderID),
					zap.Error(err))
			}
		}
	}

	if f.mailer != nil {
		for _, m := range b.emails {
			if err := f.mailer.Send(ctx, m); err != nil {
				failures++
				f.logger.Warn("email failed", zap.String("subject", m.Subject), zap.Error(err))
			}
		}
	}

	span.SetAttributes(attribute.Int("notifications.failures", failures))
}

// Push sends a real-time event that has no durable record, such as a chat
// message. Failures are logged.
func (f *FanOut) Push(ctx context.Context, userID kernel.UUID, event ports.PushEvent) {
	if f.pusher == nil {
		return
	}
	if err := f.pusher.Push(ctx, userID, event); err != nil {
		f.logger.Warn("push failed",
			zap.Stringer("user_id", userID),
			zap.String("type", event.Type),
			zap.Error(err))
	}
}

// PushView is the wire shape of a pushed notification.
func PushView(n *notification.Notification) map[string]any {
	return map[string]any{
		"id":        n.ID().String(),
		"type":      n.Type().String(),
		"data":      n.Payload(),
		"read":      n.IsRead(),
		"createdAt": n.CreatedAt(),
	}
}
