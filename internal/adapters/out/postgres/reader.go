package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fulfillment/internal/adapters/out/postgres/chatrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/jmoiron/sqlx"
)

const defaultPageLimit = 50

var (
	_ ports.OrderReader        = &SqlxReader{}
	_ ports.ReturnReader       = &SqlxReader{}
	_ ports.InvoiceReader      = &SqlxReader{}
	_ ports.NotificationReader = &SqlxReader{}
	_ ports.ChatReader         = &SqlxReader{}
)

// SqlxReader serves the query side with plain SQL over the tables the gorm
// repositories write. It never joins a unit of work.
type SqlxReader struct {
	db *sqlx.DB
}

func NewSqlxReader(db *sqlx.DB) *SqlxReader {
	return &SqlxReader{db: db}
}

func (r *SqlxReader) FindOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.findOrder(ctx, "order", id.String(), `SELECT * FROM orders WHERE id = $1 AND deleted_at IS NULL`, id.String())
}

func (r *SqlxReader) FindOrderByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.findOrder(ctx, "order", number, `SELECT * FROM orders WHERE number = $1 AND deleted_at IS NULL`, number)
}

func (r *SqlxReader) findOrder(ctx context.Context, what string, key string, query string, arg any) (*order.Order, error) {
	var dto orderrepo.OrderDTO
	if err := r.db.GetContext(ctx, &dto, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError(what, key)
		}
		return nil, err
	}
	return orderrepo.ToDomain(dto)
}

func (r *SqlxReader) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	conditions := []string{"deleted_at IS NULL"}
	var args []any

	if filter.StoreID != nil {
		conditions = append(conditions, "store_id = ?")
		args = append(args, filter.StoreID.String())
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, filter.AssignedTo.String())
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status.String())
	}

	query := "SELECT * FROM orders WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	limit, offset := bounds(filter.Page)
	args = append(args, limit, offset)

	var dtos []orderrepo.OrderDTO
	if err := r.db.SelectContext(ctx, &dtos, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	result := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := orderrepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *SqlxReader) ListReturnsByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	var dtos []returnrepo.ReturnDTO
	if err := r.db.SelectContext(ctx, &dtos,
		`SELECT * FROM returns WHERE order_id = $1 ORDER BY created_at`, orderID.String()); err != nil {
		return nil, err
	}
	return returnrepo.ToDomainList(dtos)
}

func (r *SqlxReader) FindInvoice(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return r.findInvoice(ctx, "invoice", id, `SELECT * FROM invoices WHERE id = $1`)
}

func (r *SqlxReader) FindInvoiceByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	return r.findInvoice(ctx, "invoice for order", orderID, `SELECT * FROM invoices WHERE order_id = $1`)
}

func (r *SqlxReader) findInvoice(ctx context.Context, what string, id kernel.UUID, query string) (*invoice.Invoice, error) {
	var dto invoicerepo.InvoiceDTO
	if err := r.db.GetContext(ctx, &dto, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError(what, id.String())
		}
		return nil, err
	}
	return invoicerepo.ToDomain(dto)
}

func (r *SqlxReader) ListInvoices(ctx context.Context, page ports.Page) ([]*invoice.Invoice, error) {
	limit, offset := bounds(page)
	var dtos []invoicerepo.InvoiceDTO
	if err := r.db.SelectContext(ctx, &dtos,
		`SELECT * FROM invoices ORDER BY issued_at DESC LIMIT $1 OFFSET $2`, limit, offset); err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := invoicerepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, nil
}

func (r *SqlxReader) ListNotifications(
	ctx context.Context,
	userID kernel.UUID,
	unreadOnly bool,
	page ports.Page,
) ([]*notification.Notification, error) {
	query := `SELECT * FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	limit, offset := bounds(page)

	var dtos []notificationrepo.NotificationDTO
	if err := r.db.SelectContext(ctx, &dtos, r.db.Rebind(query), userID.String(), limit, offset); err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := notificationrepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *SqlxReader) ListMessagesBetween(ctx context.Context, a, b kernel.UUID, page ports.Page) ([]*chat.Message, error) {
	limit, offset := bounds(page)
	var dtos []chatrepo.MessageDTO
	if err := r.db.SelectContext(ctx, &dtos, `
		SELECT * FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at
		LIMIT $3 OFFSET $4`, a.String(), b.String(), limit, offset); err != nil {
		return nil, err
	}

	result := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := chatrepo.MessageToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *SqlxReader) ListSessions(ctx context.Context, userID *kernel.UUID, activeOnly bool) ([]*chat.Session, error) {
	conditions := []string{"TRUE"}
	var args []any
	if userID != nil {
		conditions = append(conditions, "? = ANY(participants)")
		args = append(args, userID.String())
	}
	if activeOnly {
		conditions = append(conditions, "active")
	}
	query := "SELECT * FROM chat_sessions WHERE " + strings.Join(conditions, " AND ") + " ORDER BY created_at DESC"

	var dtos []chatrepo.SessionDTO
	if err := r.db.SelectContext(ctx, &dtos, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	result := make([]*chat.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := chatrepo.SessionToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func bounds(page ports.Page) (int, int) {
	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return limit, max(page.Offset, 0)
}
