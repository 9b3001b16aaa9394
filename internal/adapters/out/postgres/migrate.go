package postgres

import (
	"fulfillment/internal/adapters/out/postgres/chatrepo"
	"fulfillment/internal/adapters/out/postgres/counterrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends every table the adapters use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&returnrepo.ReturnDTO{},
		&invoicerepo.InvoiceDTO{},
		&notificationrepo.NotificationDTO{},
		&chatrepo.SessionDTO{},
		&chatrepo.MessageDTO{},
		&counterrepo.CounterDTO{},
		&userrepo.UserDTO{},
		&userrepo.TaxDTO{},
	)
}
