// Package chatrepo persists chat sessions and the message log.
package chatrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SessionDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"      db:"id"`
	Participants pq.StringArray `gorm:"type:text[];not null"      db:"participants"`
	OpenedBy     uuid.UUID      `gorm:"type:uuid;not null"        db:"opened_by"`
	Type         string         `gorm:"type:varchar(32);not null" db:"type"`
	OrderID      *uuid.UUID     `gorm:"type:uuid"                 db:"order_id"`
	Active       bool           `gorm:"not null;index"            db:"active"`
	ClosedAt     *time.Time     `db:"closed_at"`
	CreatedAt    time.Time      `gorm:"autoCreateTime:false"      db:"created_at"`
}

func (SessionDTO) TableName() string {
	return "chat_sessions"
}

type MessageDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"     db:"id"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index" db:"sender_id"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index" db:"receiver_id"`
	Content    string     `gorm:"type:text;not null"       db:"content"`
	OrderID    *uuid.UUID `gorm:"type:uuid"                db:"order_id"`
	SentAt     time.Time  `gorm:"index;not null"           db:"sent_at"`
}

func (MessageDTO) TableName() string {
	return "chat_messages"
}

var errMalformedParticipants = errors.New("chat session must have exactly two participants")

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func sessionFromDomain(s *chat.Session) SessionDTO {
	p := s.Participants()
	return SessionDTO{
		ID:           s.ID().Bytes(),
		Participants: pq.StringArray{p[0].String(), p[1].String()},
		OpenedBy:     s.OpenedBy().Bytes(),
		Type:         s.Type().String(),
		OrderID:      optionalID(s.OrderID()),
		Active:       s.IsActive(),
		ClosedAt:     s.ClosedAt(),
		CreatedAt:    s.CreatedAt(),
	}
}

func SessionToDomain(dto SessionDTO) (*chat.Session, error) {
	if len(dto.Participants) != 2 {
		return nil, errMalformedParticipants
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	var participants [2]kernel.UUID
	for i, raw := range dto.Participants {
		if participants[i], err = kernel.UUIDFromString(raw); err != nil {
			return nil, err
		}
	}
	openedBy, err := kernel.UUIDFromBytes(dto.OpenedBy[:])
	if err != nil {
		return nil, err
	}
	kind, err := chat.ParseSessionType(dto.Type)
	if err != nil {
		return nil, err
	}
	orderID, err := optionalUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return chat.RestoreSession(id, participants, openedBy, kind, orderID, dto.Active, dto.ClosedAt, dto.CreatedAt), nil
}

func messageFromDomain(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID().Bytes(),
		SenderID:   m.SenderID().Bytes(),
		ReceiverID: m.ReceiverID().Bytes(),
		Content:    m.Content(),
		OrderID:    optionalID(m.OrderID()),
		SentAt:     m.SentAt(),
	}
}

func MessageToDomain(dto MessageDTO) (*chat.Message, error) {
	var ids [3]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.SenderID, dto.ReceiverID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	orderID, err := optionalUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return chat.RestoreMessage(ids[0], ids[1], ids[2], dto.Content, orderID, dto.SentAt), nil
}
