// Package userrepo reads the local replica of identity-service accounts and
// tax rates. The core only reads them; Put exists for replication and seeding.
package userrepo

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type UserDTO struct {
	ID      uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	Name    string                                   `gorm:"not null"`
	Email   string                                   `gorm:"type:varchar(320)"`
	Phone   string                                   `gorm:"type:varchar(32)"`
	Role    string                                   `gorm:"type:varchar(16);not null;index"`
	Address datatypes.JSONType[orderrepo.AddressDTO] `gorm:"type:jsonb;not null"`
	Active  bool                                     `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

type TaxDTO struct {
	ID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Rate decimal.Decimal `gorm:"type:numeric(6,3);not null"`
}

func (TaxDTO) TableName() string {
	return "taxes"
}

func fromDomain(u user.User) UserDTO {
	return UserDTO{
		ID:      u.ID.Bytes(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Role:    u.Role.String(),
		Address: datatypes.NewJSONType(orderrepo.AddressFromDomain(u.Address)),
		Active:  u.Active,
	}
}

func toDomain(dto UserDTO) (user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return user.User{}, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return user.User{}, err
	}
	address, err := dto.Address.Data().ToDomain()
	if err != nil {
		return user.User{}, err
	}

	return user.User{
		ID:      id,
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Role:    role,
		Address: address,
		Active:  dto.Active,
	}, nil
}
