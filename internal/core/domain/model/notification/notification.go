package notification

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned for a Notification that bypassed New.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via New")

// Type tags what happened. Clients switch on it to render the payload.
type Type string

const (
	OrderConfirmation   Type = "order_confirmation"
	NewOrder            Type = "new_order"
	OrderAssigned       Type = "order_assigned"
	OrderStatusChanged  Type = "order_status_changed"
	OrderCancelled      Type = "order_cancelled"
	ReturnRequested     Type = "return_requested"
	ReturnStatusChanged Type = "return_status_changed"
	ReturnCompleted     Type = "return_completed"
	NewMessage          Type = "new_message"
)

var knownTypes = map[Type]struct{}{
	OrderConfirmation:   {},
	NewOrder:            {},
	OrderAssigned:       {},
	OrderStatusChanged:  {},
	OrderCancelled:      {},
	ReturnRequested:     {},
	ReturnStatusChanged: {},
	ReturnCompleted:     {},
	NewMessage:          {},
}

func (t Type) Validate() error {
	if _, ok := knownTypes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", string(t)))
	}
	return nil
}

func (t Type) String() string {
	return string(t)
}

// Payload is the structured body of a notification. Values must be JSON encodable.
type Payload map[string]any

// Notification is a durable per-user record. Only the read flag ever changes.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	kind      Type
	payload   Payload
	read      bool
	createdAt time.Time

	isConstructed bool
}

func New(id, userID kernel.UUID, kind Type, payload Payload, at time.Time) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	return &Notification{
		id:            id,
		userID:        userID,
		kind:          kind,
		payload:       clonePayload(payload),
		createdAt:     at,
		isConstructed: true,
	}, nil
}

// Restore rebuilds a persisted notification.
func Restore(id, userID kernel.UUID, kind Type, payload Payload, read bool, createdAt time.Time) *Notification {
	return &Notification{
		id:            id,
		userID:        userID,
		kind:          kind,
		payload:       payload,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

func (n *Notification) Type() Type {
	return n.kind
}

// Payload returns a shallow copy of the payload.
func (n *Notification) Payload() Payload {
	return clonePayload(n.payload)
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead sets the read flag. Only the recipient may do so.
func (n *Notification) MarkRead(by kernel.UUID) error {
	if !n.userID.IsEqual(by) {
		return errs.NewForbiddenError("notification belongs to another user")
	}
	n.read = true
	return nil
}

func (n *Notification) Clone() *Notification {
	c := *n
	c.payload = clonePayload(n.payload)
	return &c
}

func clonePayload(p Payload) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
