package notificationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.NotificationRepository = &GormNotificationRepository{}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, notifications ...*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(n))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}

func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Update("is_read", n.IsRead())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID) (int, error) {
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("user_id = ? AND is_read = ?", userID.Bytes(), false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
