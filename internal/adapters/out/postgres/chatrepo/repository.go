package chatrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var (
	_ ports.ChatSessionRepository = &GormSessionRepository{}
	_ ports.MessageRepository     = &GormMessageRepository{}
)

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Add(ctx context.Context, s *chat.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := sessionFromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("chat session "+s.ID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormSessionRepository) Update(ctx context.Context, s *chat.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ?", s.ID().Bytes()).
		Updates(map[string]any{
			"active":    s.IsActive(),
			"closed_at": s.ClosedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("chat session", s.ID().String())
	}
	return nil
}

func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*chat.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat session", id.String())
		}
		return nil, err
	}
	return SessionToDomain(dto)
}

func (r *GormSessionRepository) ListActiveBetween(ctx context.Context, a, b kernel.UUID) ([]*chat.Session, error) {
	var dtos []SessionDTO
	if err := r.db.WithContext(ctx).
		Where("active AND ? = ANY(participants) AND ? = ANY(participants)", a.String(), b.String()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	sessions := make([]*chat.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := SessionToDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Add(ctx context.Context, m *chat.Message) error {
	dto := messageFromDomain(m)
	return r.db.WithContext(ctx).Create(&dto).Error
}
