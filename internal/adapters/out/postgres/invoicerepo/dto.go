// Package invoicerepo persists invoices. The unique index on order_id is what
// keeps invoicing at one invoice per order under concurrent generators.
package invoicerepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InvoiceDTO struct {
	ID        uuid.UUID                       `gorm:"type:uuid;primaryKey"                  db:"id"`
	Number    string                          `gorm:"type:varchar(32);uniqueIndex;not null" db:"number"`
	OrderID   uuid.UUID                       `gorm:"type:uuid;uniqueIndex;not null"        db:"order_id"`
	Lines     datatypes.JSONType[[]LineDTO]   `gorm:"type:jsonb;not null"                   db:"lines"`
	Subtotal  decimal.Decimal                 `gorm:"type:numeric(12,2);not null"           db:"subtotal"`
	TotalTax  decimal.Decimal                 `gorm:"type:numeric(12,2);not null"           db:"total_tax"`
	Total     decimal.Decimal                 `gorm:"type:numeric(12,2);not null"           db:"total"`
	Customer  datatypes.JSONType[CustomerDTO] `gorm:"type:jsonb;not null"                   db:"customer"`
	Status    string                          `gorm:"type:varchar(32);not null"             db:"status"`
	IssuedAt  time.Time                       `gorm:"index;not null"                        db:"issued_at"`
	PaidAt    *time.Time                      `db:"paid_at"`
	SentAt    *time.Time                      `db:"sent_at"`
	UpdatedAt time.Time                       `gorm:"autoUpdateTime:false"                  db:"updated_at"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

type LineDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

type CustomerDTO struct {
	ID      uuid.UUID            `json:"id"`
	Name    string               `json:"name"`
	Email   string               `json:"email,omitempty"`
	Address orderrepo.AddressDTO `json:"address"`
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	lines := make([]LineDTO, 0, len(inv.Lines()))
	for _, l := range inv.Lines() {
		lines = append(lines, LineDTO{
			ProductID: l.ProductID.Bytes(),
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Amount(),
			TaxRate:   l.TaxRate,
			Tax:       l.Tax.Amount(),
			Total:     l.Total.Amount(),
		})
	}

	c := inv.Customer()
	return InvoiceDTO{
		ID:       inv.ID().Bytes(),
		Number:   inv.Number(),
		OrderID:  inv.OrderID().Bytes(),
		Lines:    datatypes.NewJSONType(lines),
		Subtotal: inv.Subtotal().Amount(),
		TotalTax: inv.TotalTax().Amount(),
		Total:    inv.Total().Amount(),
		Customer: datatypes.NewJSONType(CustomerDTO{
			ID:      c.ID.Bytes(),
			Name:    c.Name,
			Email:   c.Email,
			Address: orderrepo.AddressFromDomain(c.Address),
		}),
		Status:    inv.Status().String(),
		IssuedAt:  inv.IssuedAt(),
		PaidAt:    inv.PaidAt(),
		SentAt:    inv.SentAt(),
		UpdatedAt: inv.UpdatedAt(),
	}
}

func money(amounts ...decimal.Decimal) ([]kernel.Money, error) {
	result := make([]kernel.Money, 0, len(amounts))
	for _, a := range amounts {
		m, err := kernel.NewMoney(a)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func ToDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]invoice.Line, 0, len(dto.Lines.Data()))
	for _, raw := range dto.Lines.Data() {
		productID, idErr := kernel.UUIDFromBytes(raw.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		amounts, moneyErr := money(raw.UnitPrice, raw.Tax, raw.Total)
		if moneyErr != nil {
			return nil, moneyErr
		}
		lines = append(lines, invoice.Line{
			ProductID: productID,
			Name:      raw.Name,
			Quantity:  raw.Quantity,
			UnitPrice: amounts[0],
			TaxRate:   raw.TaxRate,
			Tax:       amounts[1],
			Total:     amounts[2],
		})
	}

	totals, err := money(dto.Subtotal, dto.TotalTax, dto.Total)
	if err != nil {
		return nil, err
	}

	rawCustomer := dto.Customer.Data()
	customerID, err := kernel.UUIDFromBytes(rawCustomer.ID[:])
	if err != nil {
		return nil, err
	}
	address, err := rawCustomer.Address.ToDomain()
	if err != nil {
		return nil, err
	}

	status, err := invoice.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(
		id, dto.Number, orderID, lines, totals[0], totals[1], totals[2],
		invoice.Customer{ID: customerID, Name: rawCustomer.Name, Email: rawCustomer.Email, Address: address},
		status, dto.IssuedAt, dto.PaidAt, dto.SentAt, dto.UpdatedAt,
	), nil
}
