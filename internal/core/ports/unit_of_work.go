package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories returned
// by it are bound to the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is a no-op after Commit, so handlers may always defer it.
	Rollback(ctx context.Context) error

	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
	ReturnRepository() ReturnRepository
	InvoiceRepository() InvoiceRepository
	NotificationRepository() NotificationRepository
	ChatSessionRepository() ChatSessionRepository
	MessageRepository() MessageRepository
	CounterRepository() CounterRepository
}
