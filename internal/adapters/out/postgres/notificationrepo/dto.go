// Package notificationrepo persists per-user notification inboxes.
package notificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"                                                db:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_inbox"                    db:"user_id"`
	Type      string            `gorm:"type:varchar(64);not null"                                           db:"type"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"                                    db:"payload"`
	Read      bool              `gorm:"column:is_read;not null;default:false;index:idx_notifications_inbox" db:"is_read"`
	CreatedAt time.Time         `gorm:"autoCreateTime:false"                                                db:"created_at"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	payload := datatypes.JSONMap{}
	for k, v := range n.Payload() {
		payload[k] = v
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Type:      n.Type().String(),
		Payload:   payload,
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

func ToDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	kind := notification.Type(dto.Type)
	if err = kind.Validate(); err != nil {
		return nil, err
	}

	return notification.Restore(id, userID, kind, notification.Payload(dto.Payload), dto.Read, dto.CreatedAt), nil
}
