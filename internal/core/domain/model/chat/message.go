package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxContentLength bounds a single message, in characters.
const MaxContentLength = 4000

// Message is an append-only chat entry.
type Message struct {
	id         kernel.UUID
	senderID   kernel.UUID
	receiverID kernel.UUID
	content    string
	orderID    *kernel.UUID
	sentAt     time.Time
}

func NewMessage(id, senderID, receiverID kernel.UUID, content string, orderID *kernel.UUID, at time.Time) (*Message, error) {
	if err := errors.Join(id.Validate(), senderID.Validate(), receiverID.Validate()); err != nil {
		return nil, err
	}
	if senderID.IsEqual(receiverID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("receiver", errors.New("cannot message yourself"))
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewValueIsRequiredError("content")
	}
	if n := utf8.RuneCountInString(content); n > MaxContentLength {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause("content", n, 1, MaxContentLength,
			fmt.Errorf("message is %d characters long", n))
	}

	m := &Message{id: id, senderID: senderID, receiverID: receiverID, content: content, sentAt: at}
	if orderID != nil {
		oid := *orderID
		m.orderID = &oid
	}
	return m, nil
}

// RestoreMessage rebuilds a persisted message.
func RestoreMessage(id, senderID, receiverID kernel.UUID, content string, orderID *kernel.UUID, sentAt time.Time) *Message {
	return &Message{id: id, senderID: senderID, receiverID: receiverID, content: content, orderID: orderID, sentAt: sentAt}
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) SenderID() kernel.UUID {
	return m.senderID
}

func (m *Message) ReceiverID() kernel.UUID {
	return m.receiverID
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) OrderID() *kernel.UUID {
	return m.orderID
}

func (m *Message) SentAt() time.Time {
	return m.sentAt
}
