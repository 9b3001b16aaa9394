// Package returnrepo persists return requests, the sub-ledger that restocks
// delivered goods.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReturnDTO struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey"            db:"id"`
	OrderID     uuid.UUID                     `gorm:"type:uuid;index;not null"        db:"order_id"`
	StoreID     uuid.UUID                     `gorm:"type:uuid;index;not null"        db:"store_id"`
	RequestedBy uuid.UUID                     `gorm:"type:uuid;not null"              db:"requested_by"`
	Items       datatypes.JSONType[[]ItemDTO] `gorm:"type:jsonb;not null"             db:"items"`
	Status      string                        `gorm:"type:varchar(32);index;not null" db:"status"`
	CreatedAt   time.Time                     `gorm:"autoCreateTime:false"            db:"created_at"`
	UpdatedAt   time.Time                     `gorm:"autoUpdateTime:false"            db:"updated_at"`
}

func (ReturnDTO) TableName() string {
	return "returns"
}

type ItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func fromDomain(r *returns.Return) ReturnDTO {
	items := make([]ItemDTO, 0, len(r.Items()))
	for _, item := range r.Items() {
		items = append(items, ItemDTO{ProductID: item.ProductID.Bytes(), Quantity: item.Quantity})
	}

	return ReturnDTO{
		ID:          r.ID().Bytes(),
		OrderID:     r.OrderID().Bytes(),
		StoreID:     r.StoreID().Bytes(),
		RequestedBy: r.RequestedBy().Bytes(),
		Items:       datatypes.NewJSONType(items),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func ToDomain(dto ReturnDTO) (*returns.Return, error) {
	var ids [4]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.StoreID, dto.RequestedBy} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	items := make([]returns.Item, 0, len(dto.Items.Data()))
	for _, raw := range dto.Items.Data() {
		productID, err := kernel.UUIDFromBytes(raw.ProductID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, returns.Item{ProductID: productID, Quantity: raw.Quantity})
	}

	status, err := returns.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return returns.RestoreReturn(ids[0], ids[1], ids[2], ids[3], items, status, dto.CreatedAt, dto.UpdatedAt), nil
}

func ToDomainList(dtos []ReturnDTO) ([]*returns.Return, error) {
	result := make([]*returns.Return, 0, len(dtos))
	for _, dto := range dtos {
		r, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}
