package userrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ ports.UserDirectory   = &GormDirectory{}
	_ ports.TaxRateResolver = &GormDirectory{}
)

// GormDirectory works on the pool, outside any unit of work.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) Get(ctx context.Context, id kernel.UUID) (user.User, error) {
	if err := id.Validate(); err != nil {
		return user.User{}, err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return user.User{}, err
	}
	return toDomain(dto)
}

func (d *GormDirectory) ListByRole(ctx context.Context, role kernel.Role) ([]user.User, error) {
	var dtos []UserDTO
	if err := d.db.WithContext(ctx).
		Where("role = ? AND active", role.String()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (d *GormDirectory) Rate(ctx context.Context, taxID kernel.UUID) (decimal.Decimal, error) {
	var dto TaxDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", taxID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, errs.NewObjectNotFoundError("tax", taxID.String())
		}
		return decimal.Zero, err
	}
	return dto.Rate, nil
}

// Put inserts or replaces a replicated account.
func (d *GormDirectory) Put(ctx context.Context, u user.User) error {
	dto := fromDomain(u)
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// PutTax inserts or replaces a tax rate.
func (d *GormDirectory) PutTax(ctx context.Context, id kernel.UUID, rate decimal.Decimal) error {
	dto := TaxDTO{ID: id.Bytes(), Rate: rate}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
