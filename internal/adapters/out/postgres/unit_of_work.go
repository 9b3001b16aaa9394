// Package postgres implements the fulfillment storage ports on PostgreSQL.
//
// Writes go through gorm repositories bound to a GormUnitOfWork, one per
// command:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ProductRepository().Reserve(ctx, productID, 2); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Reads go through SqlxReader on a separate sqlx pool and never see
// uncommitted work.
//
// Concurrency relies on the database: stock is reserved by conditional
// UPDATEs, orders carry a version column, counters are upserts and invoices
// have unique indexes on order_id and number. The gorm connection must be
// opened with TranslateError so duplicate keys surface as ConflictErrors.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/chatrepo"
	"fulfillment/internal/adapters/out/postgres/counterrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback after Commit, or without Begin, does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReturnRepository() ports.ReturnRepository {
	return returnrepo.NewGormReturnRepository(uow.conn())
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ChatSessionRepository() ports.ChatSessionRepository {
	return chatrepo.NewGormSessionRepository(uow.conn())
}

func (uow *GormUnitOfWork) MessageRepository() ports.MessageRepository {
	return chatrepo.NewGormMessageRepository(uow.conn())
}

func (uow *GormUnitOfWork) CounterRepository() ports.CounterRepository {
	return counterrepo.NewGormCounterRepository(uow.conn())
}
