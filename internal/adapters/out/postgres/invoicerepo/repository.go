package invoicerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.InvoiceRepository = &GormInvoiceRepository{}

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add relies on the unique indexes on order_id and number. The losing writer
// of a race gets a ConflictError and its transaction must roll back.
func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("invoice for order "+inv.OrderID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ?", inv.ID().Bytes()).
		Updates(map[string]any{
			"status":     inv.Status().String(),
			"paid_at":    inv.PaidAt(),
			"sent_at":    inv.SentAt(),
			"updated_at": inv.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", inv.ID().String())
	}
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "invoice", id, "id = ?", id.Bytes())
}

func (r *GormInvoiceRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "invoice for order", orderID, "order_id = ?", orderID.Bytes())
}

func (r *GormInvoiceRepository) first(ctx context.Context, what string, id kernel.UUID, cond string, arg any) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}
