package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
)

// Page bounds list queries. Zero Limit means the reader's default.
type Page struct {
	Limit  int
	Offset int
}

// OrderFilter narrows ListOrders. Nil fields do not filter.
type OrderFilter struct {
	StoreID    *kernel.UUID
	AssignedTo *kernel.UUID
	Status     *order.Status
	Page       Page
}

// OrderReader serves order queries outside any transaction. Soft-deleted
// orders are never returned.
type OrderReader interface {
	FindOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)
	FindOrderByNumber(ctx context.Context, number string) (*order.Order, error)

	// ListOrders returns matching orders, newest first.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

type ReturnReader interface {
	ListReturnsByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error)
}

type InvoiceReader interface {
	FindInvoice(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	FindInvoiceByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)

	// ListInvoices returns invoices, newest first.
	ListInvoices(ctx context.Context, page Page) ([]*invoice.Invoice, error)
}

type NotificationReader interface {
	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID kernel.UUID, unreadOnly bool, page Page) ([]*notification.Notification, error)
}

type ChatReader interface {
	// ListMessagesBetween returns the conversation between a and b, oldest first.
	ListMessagesBetween(ctx context.Context, a, b kernel.UUID, page Page) ([]*chat.Message, error)

	// ListSessions returns sessions including userID, or all sessions when userID is nil.
	ListSessions(ctx context.Context, userID *kernel.UUID, activeOnly bool) ([]*chat.Session, error)
}
