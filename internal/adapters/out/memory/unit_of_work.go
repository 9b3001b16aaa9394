package memory

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
)

var ErrTransactionNotStarted = errors.New("transaction not started")

var _ ports.UnitOfWork = &UnitOfWork{}

// UnitOfWork holds the store lock from Begin until Commit or Rollback.
type UnitOfWork struct {
	store    *Store
	snapshot *state
	active   bool
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.active {
		return errors.New("transaction already started")
	}
	u.store.mu.Lock()
	u.snapshot = u.store.state.clone()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrTransactionNotStarted
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}
	u.store.state = u.snapshot
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.snapshot = nil
	u.active = false
	u.store.mu.Unlock()
}

func (u *UnitOfWork) ProductRepository() ports.ProductRepository {
	return productRepository{uow: u}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{uow: u}
}

func (u *UnitOfWork) ReturnRepository() ports.ReturnRepository {
	return returnRepository{uow: u}
}

func (u *UnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoiceRepository{uow: u}
}

func (u *UnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationRepository{uow: u}
}

func (u *UnitOfWork) ChatSessionRepository() ports.ChatSessionRepository {
	return chatSessionRepository{uow: u}
}

func (u *UnitOfWork) MessageRepository() ports.MessageRepository {
	return messageRepository{uow: u}
}

func (u *UnitOfWork) CounterRepository() ports.CounterRepository {
	return counterRepository{uow: u}
}

// data returns the live state, or an error outside a transaction.
func (u *UnitOfWork) data() (*state, error) {
	if !u.active {
		return nil, ErrTransactionNotStarted
	}
	return u.store.state, nil
}

// UnitOfWorkFactory creates units of work over one store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}
