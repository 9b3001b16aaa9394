// Package orderrepo maps order aggregates onto the orders table. Line items,
// the status history and the delivery address are snapshots owned by the
// order and live in jsonb columns next to it.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders row. The db tags serve the sqlx read side.
type OrderDTO struct {
	ID                 uuid.UUID                             `gorm:"type:uuid;primaryKey"                  db:"id"`
	Number             string                                `gorm:"type:varchar(32);uniqueIndex;not null" db:"number"`
	StoreID            uuid.UUID                             `gorm:"type:uuid;index;not null"              db:"store_id"`
	Items              datatypes.JSONType[[]LineItemDTO]     `gorm:"type:jsonb;not null"                   db:"items"`
	Total              decimal.Decimal                       `gorm:"type:numeric(12,2);not null"           db:"total"`
	Status             string                                `gorm:"type:varchar(32);index;not null"       db:"status"`
	AssignedTo         *uuid.UUID                            `gorm:"type:uuid;index"                       db:"assigned_to"`
	History            datatypes.JSONType[[]HistoryEntryDTO] `gorm:"type:jsonb;not null"                   db:"history"`
	Address            datatypes.JSONType[AddressDTO]        `gorm:"type:jsonb;not null"                   db:"address"`
	PaymentMethod      string                                `gorm:"type:varchar(32);not null"             db:"payment_method"`
	CancellationReason string                                `gorm:"type:text"                             db:"cancellation_reason"`
	CreatedAt          time.Time                             `gorm:"index;autoCreateTime:false"            db:"created_at"`
	UpdatedAt          time.Time                             `gorm:"autoUpdateTime:false"                  db:"updated_at"`
	DeletedAt          *time.Time                            `gorm:"index"                                 db:"deleted_at"`
	Version            int                                   `gorm:"not null;default:0"                    db:"version"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LineItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	ChangedBy uuid.UUID `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

// AddressDTO is shared with the invoice customer snapshot.
type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

func AddressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{Street: a.Street(), City: a.City(), State: a.State(), ZipCode: a.ZipCode()}
}

// ToDomain returns the zero Address for an empty snapshot.
func (a AddressDTO) ToDomain() (kernel.Address, error) {
	if a.Street == "" {
		return kernel.Address{}, nil
	}
	return kernel.NewAddress(a.Street, a.City, a.State, a.ZipCode)
}

func fromDomain(o *order.Order) OrderDTO {
	var assignedTo *uuid.UUID
	if id := o.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	items := make([]LineItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	entries := o.History().Entries()
	history := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntryDTO{
			Status:    e.Status.String(),
			ChangedBy: e.ChangedBy.Bytes(),
			ChangedAt: e.ChangedAt,
		})
	}

	return OrderDTO{
		ID:                 o.ID().Bytes(),
		Number:             o.Number(),
		StoreID:            o.StoreID().Bytes(),
		Items:              datatypes.NewJSONType(items),
		Total:              o.Total().Amount(),
		Status:             o.Status().String(),
		AssignedTo:         assignedTo,
		History:            datatypes.NewJSONType(history),
		Address:            datatypes.NewJSONType(AddressFromDomain(o.Address())),
		PaymentMethod:      string(o.PaymentMethod()),
		CancellationReason: o.CancellationReason(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		DeletedAt:          o.DeletedAt(),
		Version:            o.Version(),
	}
}

// ToDomain rebuilds the aggregate. It is exported for the read side.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		aID, assignErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if assignErr != nil {
			return nil, assignErr
		}
		assignedTo = &aID
	}

	items := make([]order.LineItem, 0, len(dto.Items.Data()))
	for _, raw := range dto.Items.Data() {
		productID, idErr := kernel.UUIDFromBytes(raw.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(raw.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(productID, raw.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	entries := make([]order.HistoryEntry, 0, len(dto.History.Data()))
	for _, raw := range dto.History.Data() {
		status, statusErr := order.ParseStatus(raw.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		by, byErr := kernel.UUIDFromBytes(raw.ChangedBy[:])
		if byErr != nil {
			return nil, byErr
		}
		entries = append(entries, order.HistoryEntry{Status: status, ChangedBy: by, ChangedAt: raw.ChangedAt})
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	address, err := dto.Address.Data().ToDomain()
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Number, storeID, items, total, status, assignedTo,
		order.NewStatusHistory(entries...), address, order.PaymentMethod(dto.PaymentMethod),
		dto.CancellationReason, dto.CreatedAt, dto.UpdatedAt, dto.DeletedAt, dto.Version,
	), nil
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
