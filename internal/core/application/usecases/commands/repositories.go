// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit notification delivery.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	ChatRepoFactory interface {
		ChatSessionRepository() ports.ChatSessionRepository
		MessageRepository() ports.MessageRepository
	}

	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	// OrderingUoW covers the order lifecycle: placement reserves stock and
	// draws a number, cancellation restocks, every change records notifications.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   productRepo := uow.ProductRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderingUoW interface {
		TxManager
		ProductRepoFactory
		OrderRepoFactory
		CounterRepoFactory
		NotificationRepoFactory
	}

	OrderingUoWFactory interface {
		Create() OrderingUoW
	}

	// ReturnUoW locks the parent order while the return sub-ledger is read
	// and written, and restocks completed returns.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
		ProductRepoFactory
		NotificationRepoFactory
	}

	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// InvoiceUoW reads the delivered order and catalog and writes the invoice.
	InvoiceUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		InvoiceRepoFactory
		CounterRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// NotificationUoW manages transactions for inbox operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// ChatUoW covers sessions and messages. Orders are read to evaluate the
	// store and delivery rule.
	ChatUoW interface {
		TxManager
		OrderRepoFactory
		ChatRepoFactory
	}

	ChatUoWFactory interface {
		Create() ChatUoW
	}
)
