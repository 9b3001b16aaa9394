package memory

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultPageLimit = 50

var (
	_ ports.OrderReader        = &Reader{}
	_ ports.ReturnReader       = &Reader{}
	_ ports.InvoiceReader      = &Reader{}
	_ ports.NotificationReader = &Reader{}
	_ ports.ChatReader         = &Reader{}
)

// Reader serves every read model from committed state.
type Reader struct {
	store *Store
}

func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) view(fn func(data *state)) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fn(r.store.state)
}

func (r *Reader) FindOrder(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var found *order.Order
	r.view(func(data *state) {
		if o, ok := data.orders[id]; ok && !o.IsDeleted() {
			found = o.Clone()
		}
	})
	if found == nil {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return found, nil
}

func (r *Reader) FindOrderByNumber(_ context.Context, number string) (*order.Order, error) {
	var found *order.Order
	r.view(func(data *state) {
		for _, o := range data.orders {
			if o.Number() == number && !o.IsDeleted() {
				found = o.Clone()
				return
			}
		}
	})
	if found == nil {
		return nil, errs.NewObjectNotFoundError("order", number)
	}
	return found, nil
}

func (r *Reader) ListOrders(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var result []*order.Order
	r.view(func(data *state) {
		for _, o := range data.orders {
			if o.IsDeleted() {
				continue
			}
			if filter.StoreID != nil && !o.IsOwnedBy(*filter.StoreID) {
				continue
			}
			if filter.AssignedTo != nil && !o.IsAssignedTo(*filter.AssignedTo) {
				continue
			}
			if filter.Status != nil && o.Status() != *filter.Status {
				continue
			}
			result = append(result, o.Clone())
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].CreatedAt().After(result[j].CreatedAt())
		}
		return result[i].Number() > result[j].Number()
	})
	return paginate(result, filter.Page), nil
}

func (r *Reader) ListReturnsByOrder(_ context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	var result []*returns.Return
	r.view(func(data *state) {
		result = returnsOf(data, orderID)
	})
	return result, nil
}

func (r *Reader) FindInvoice(_ context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	var found *invoice.Invoice
	r.view(func(data *state) {
		if inv, ok := data.invoices[id]; ok {
			found = inv.Clone()
		}
	})
	if found == nil {
		return nil, errs.NewObjectNotFoundError("invoice", id)
	}
	return found, nil
}

func (r *Reader) FindInvoiceByOrder(_ context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	var (
		found *invoice.Invoice
		err   error
	)
	r.view(func(data *state) {
		found, err = invoiceOf(data, orderID)
	})
	return found, err
}

func (r *Reader) ListInvoices(_ context.Context, page ports.Page) ([]*invoice.Invoice, error) {
	var result []*invoice.Invoice
	r.view(func(data *state) {
		for _, inv := range data.invoices {
			result = append(result, inv.Clone())
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].IssuedAt().Equal(result[j].IssuedAt()) {
			return result[i].IssuedAt().After(result[j].IssuedAt())
		}
		return result[i].Number() > result[j].Number()
	})
	return paginate(result, page), nil
}

func (r *Reader) ListNotifications(
	_ context.Context,
	userID kernel.UUID,
	unreadOnly bool,
	page ports.Page,
) ([]*notification.Notification, error) {
	var result []*notification.Notification
	r.view(func(data *state) {
		for _, n := range data.notifications {
			if !n.UserID().IsEqual(userID) || (unreadOnly && n.IsRead()) {
				continue
			}
			result = append(result, n.Clone())
		}
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return paginate(result, page), nil
}

func (r *Reader) ListMessagesBetween(_ context.Context, a, b kernel.UUID, page ports.Page) ([]*chat.Message, error) {
	var result []*chat.Message
	r.view(func(data *state) {
		for _, m := range data.messages {
			if (m.SenderID().IsEqual(a) && m.ReceiverID().IsEqual(b)) ||
				(m.SenderID().IsEqual(b) && m.ReceiverID().IsEqual(a)) {
				result = append(result, m)
			}
		}
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SentAt().Before(result[j].SentAt())
	})
	return paginate(result, page), nil
}

func (r *Reader) ListSessions(_ context.Context, userID *kernel.UUID, activeOnly bool) ([]*chat.Session, error) {
	var result []*chat.Session
	r.view(func(data *state) {
		for _, s := range data.sessions {
			if activeOnly && !s.IsActive() {
				continue
			}
			if userID != nil && !s.Includes(*userID) {
				continue
			}
			result = append(result, s.Clone())
		}
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

func paginate[T any](items []T, page ports.Page) []T {
	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[max(page.Offset, 0):]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
