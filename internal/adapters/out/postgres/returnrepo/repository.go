package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.ReturnRepository = &GormReturnRepository{}

type GormReturnRepository struct {
	db *gorm.DB
}

func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

func (r *GormReturnRepository) Add(ctx context.Context, ret *returns.Return) error {
	if err := ret.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ret)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("return "+ret.ID().String(), err)
		}
		return err
	}
	return nil
}

// Update only touches the mutable columns, and only while the row still
// holds the status the caller moved from.
func (r *GormReturnRepository) Update(ctx context.Context, ret *returns.Return, from returns.Status) error {
	if err := ret.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ReturnDTO{}).
		Where("id = ? AND status = ?", ret.ID().Bytes(), from.String()).
		Updates(map[string]any{
			"status":     ret.Status().String(),
			"updated_at": ret.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ReturnDTO{}).Where("id = ?", ret.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("return", ret.ID().String())
	}
	return errs.NewConflictError("return " + ret.ID().String() + " is no longer " + from.String())
}

func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormReturnRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormReturnRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*returns.Return, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}

func (r *GormReturnRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return ToDomainList(dtos)
}
