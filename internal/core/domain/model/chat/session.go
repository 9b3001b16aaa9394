package chat

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrSessionIsNotConstructed is returned for a Session that bypassed OpenSession.
var ErrSessionIsNotConstructed = errors.New("Session must be created via OpenSession")

// SessionType tags what a session unlocks.
type SessionType string

const (
	StoreAdmin       SessionType = "store-admin"
	DeliveryDelivery SessionType = "delivery-delivery"
	Custom           SessionType = "custom"
)

func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t SessionType) Validate() error {
	switch t {
	case StoreAdmin, DeliveryDelivery, Custom:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a session type", string(t)))
	}
}

func (t SessionType) String() string {
	return string(t)
}

// Participant is a session member together with the role the directory reports.
type Participant struct {
	UserID kernel.UUID
	Role   kernel.Role
}

// Session is an admin-curated permission window between exactly two users.
type Session struct {
	id           kernel.UUID
	participants [2]kernel.UUID
	openedBy     kernel.UUID
	kind         SessionType
	orderID      *kernel.UUID
	active       bool
	closedAt     *time.Time
	createdAt    time.Time

	isConstructed bool
}

// OpenSession validates the opener and the participants' role shape.
//
// Rules:
//   - only actors allowed to manage chat sessions may open one
//   - the two participants must be distinct
//   - StoreAdmin needs one store and one admin
//   - DeliveryDelivery needs two delivery agents
//   - Custom accepts any pair
func OpenSession(
	id kernel.UUID,
	opener kernel.Actor,
	a, b Participant,
	kind SessionType,
	orderID *kernel.UUID,
	at time.Time,
) (*Session, error) {
	if !opener.Can(kernel.CapManageChatSessions) {
		return nil, errs.NewForbiddenError("only admins can open chat sessions")
	}
	if err := errors.Join(id.Validate(), a.UserID.Validate(), b.UserID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if a.UserID.IsEqual(b.UserID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("participants", errors.New("participants must be two distinct users"))
	}
	if err := validateShape(kind, a.Role, b.Role); err != nil {
		return nil, err
	}

	s := &Session{
		id:            id,
		participants:  [2]kernel.UUID{a.UserID, b.UserID},
		openedBy:      opener.UserID(),
		kind:          kind,
		active:        true,
		createdAt:     at,
		isConstructed: true,
	}
	if orderID != nil {
		oid := *orderID
		s.orderID = &oid
	}
	return s, nil
}

// RestoreSession rebuilds a persisted session.
func RestoreSession(
	id kernel.UUID,
	participants [2]kernel.UUID,
	openedBy kernel.UUID,
	kind SessionType,
	orderID *kernel.UUID,
	active bool,
	closedAt *time.Time,
	createdAt time.Time,
) *Session {
	return &Session{
		id:            id,
		participants:  participants,
		openedBy:      openedBy,
		kind:          kind,
		orderID:       orderID,
		active:        active,
		closedAt:      closedAt,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func validateShape(kind SessionType, a, b kernel.Role) error {
	var ok bool
	switch kind {
	case StoreAdmin:
		ok = (a == kernel.RoleStore && b == kernel.RoleAdmin) || (a == kernel.RoleAdmin && b == kernel.RoleStore)
	case DeliveryDelivery:
		ok = a == kernel.RoleDelivery && b == kernel.RoleDelivery
	case Custom:
		ok = true
	}
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"participants",
			fmt.Errorf("%s session cannot join %s and %s", kind, a, b),
		)
	}
	return nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) Participants() [2]kernel.UUID {
	return s.participants
}

func (s *Session) OpenedBy() kernel.UUID {
	return s.openedBy
}

func (s *Session) Type() SessionType {
	return s.kind
}

func (s *Session) OrderID() *kernel.UUID {
	return s.orderID
}

func (s *Session) IsActive() bool {
	return s.active
}

func (s *Session) ClosedAt() *time.Time {
	return s.closedAt
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Joins reports whether the session is between x and y, in either order.
func (s *Session) Joins(x, y kernel.UUID) bool {
	p := s.participants
	return (p[0].IsEqual(x) && p[1].IsEqual(y)) || (p[0].IsEqual(y) && p[1].IsEqual(x))
}

// Includes reports whether userID is one of the participants.
func (s *Session) Includes(userID kernel.UUID) bool {
	return s.participants[0].IsEqual(userID) || s.participants[1].IsEqual(userID)
}

// Unlocks reports whether the session is active, of the given type and
// between x and y.
func (s *Session) Unlocks(kind SessionType, x, y kernel.UUID) bool {
	return s.active && s.kind == kind && s.Joins(x, y)
}

// Close deactivates the session. Closing twice is a no-op.
func (s *Session) Close(actor kernel.Actor, at time.Time) error {
	if !actor.Can(kernel.CapManageChatSessions) {
		return errs.NewForbiddenError("only admins can close chat sessions")
	}
	if !s.active {
		return nil
	}
	t := at
	s.active = false
	s.closedAt = &t
	return nil
}

func (s *Session) Clone() *Session {
	c := *s
	if s.orderID != nil {
		id := *s.orderID
		c.orderID = &id
	}
	if s.closedAt != nil {
		t := *s.closedAt
		c.closedAt = &t
	}
	return &c
}
