package productrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.ProductRepository = &GormProductRepository{}

// statusAfterDelta mirrors product.Status.AfterStockChange in SQL. Every
// expression in an UPDATE sees the old row, so stock here is the value
// before the delta is applied.
const statusAfterDelta = `CASE
	WHEN status IN ('discontinued', 'draft') THEN status
	WHEN GREATEST(stock + ?, 0) = 0 THEN 'out_of_stock'
	WHEN status = 'out_of_stock' THEN 'active'
	ELSE status END`

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("product "+p.ID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Reserve is a conditional decrement: the row only changes while stock covers
// quantity, so two reservations racing for the last units cannot both win.
func (r *GormProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", id.Bytes(), quantity).
		Updates(map[string]any{
			"stock":  gorm.Expr("stock - ?", quantity),
			"status": gorm.Expr(statusAfterDelta, -quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	return errs.NewInsufficientStockError(id.String(), quantity, current.Stock())
}

func (r *GormProductRepository) Adjust(ctx context.Context, id kernel.UUID, delta int) error {
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"stock":  gorm.Expr("GREATEST(stock + ?, 0)", delta),
			"status": gorm.Expr(statusAfterDelta, delta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	return nil
}
