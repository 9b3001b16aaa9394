// Package counterrepo backs the yearly order and invoice sequences.
package counterrepo

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.CounterRepository = &GormCounterRepository{}

type CounterDTO struct {
	Name  string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"not null"`
}

func (CounterDTO) TableName() string {
	return "counters"
}

type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next is one upsert: the row lock taken by ON CONFLICT serializes callers,
// and a rolled back transaction gives its value back.
func (r *GormCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errs.NewValueIsRequiredError("counter name")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`, name).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
