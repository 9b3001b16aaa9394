// Package productrepo persists the inventory ledger: catalog entries with their
// stock counts.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the products row. Stock and status are only ever written by
// single UPDATE statements so concurrent reservations serialize on the row.
type ProductDTO struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name   string          `gorm:"not null"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock  int             `gorm:"not null;check:stock >= 0"`
	Status string          `gorm:"type:varchar(32);not null"`
	TaxID  *uuid.UUID      `gorm:"type:uuid"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	var taxID *uuid.UUID
	if id := p.TaxID(); id != nil {
		raw := id.Bytes()
		taxID = &raw
	}

	return ProductDTO{
		ID:     p.ID().Bytes(),
		Name:   p.Name(),
		Price:  p.Price().Amount(),
		Stock:  p.Stock(),
		Status: p.Status().String(),
		TaxID:  taxID,
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var taxID *kernel.UUID
	if dto.TaxID != nil {
		tID, taxErr := kernel.UUIDFromBytes((*dto.TaxID)[:])
		if taxErr != nil {
			return nil, taxErr
		}
		taxID = &tID
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	status, err := product.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, price, dto.Stock, status, taxID), nil
}
