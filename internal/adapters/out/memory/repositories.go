package memory

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
)

type productRepository struct{ uow *UnitOfWork }

func (r productRepository) Add(_ context.Context, p *product.Product) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, exists := data.products[p.ID()]; exists {
		return errs.NewConflictError("product " + p.ID().String())
	}
	data.products[p.ID()] = p.Clone()
	return nil
}

func (r productRepository) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	p, ok := data.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return p.Clone(), nil
}

func (r productRepository) GetMany(_ context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	found := make([]*product.Product, 0, len(ids))
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := data.products[id]; ok {
			found = append(found, p.Clone())
		}
	}
	return found, nil
}

func (r productRepository) Reserve(_ context.Context, id kernel.UUID, quantity int) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	p, ok := data.products[id]
	if !ok {
		return errs.NewObjectNotFoundError("product", id)
	}
	return p.Reserve(quantity)
}

func (r productRepository) Adjust(_ context.Context, id kernel.UUID, delta int) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	p, ok := data.products[id]
	if !ok {
		return errs.NewObjectNotFoundError("product", id)
	}
	p.Adjust(delta)
	return nil
}

type orderRepository struct{ uow *UnitOfWork }

func (r orderRepository) Add(_ context.Context, o *order.Order) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	for _, existing := range data.orders {
		if existing.ID().IsEqual(o.ID()) || existing.Number() == o.Number() {
			return errs.NewConflictError("order " + o.Number())
		}
	}
	data.orders[o.ID()] = o.Clone()
	return nil
}

func (r orderRepository) Update(_ context.Context, o *order.Order) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	stored, ok := data.orders[o.ID()]
	if !ok || stored.IsDeleted() {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if stored.Version() != o.Version() {
		return errs.NewConflictError("order " + o.Number() + " was modified concurrently")
	}
	o.IncrementVersion()
	data.orders[o.ID()] = o.Clone()
	return nil
}

func (r orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	o, ok := data.orders[id]
	if !ok || o.IsDeleted() {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o.Clone(), nil
}

// GetForUpdate needs no extra locking: the unit of work already holds the store.
func (r orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepository) ListDeliveredWithoutInvoice(_ context.Context, limit int) ([]*order.Order, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	invoiced := make(map[kernel.UUID]struct{}, len(data.invoices))
	for _, inv := range data.invoices {
		invoiced[inv.OrderID()] = struct{}{}
	}

	var result []*order.Order
	for _, o := range data.orders {
		if o.IsDeleted() || (o.Status() != order.Delivered && o.Status() != order.Returned) {
			continue
		}
		if _, ok := invoiced[o.ID()]; ok {
			continue
		}
		result = append(result, o.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt().Before(result[j].UpdatedAt())
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type returnRepository struct{ uow *UnitOfWork }

func (r returnRepository) Add(_ context.Context, ret *returns.Return) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, exists := data.returns[ret.ID()]; exists {
		return errs.NewConflictError("return " + ret.ID().String())
	}
	data.returns[ret.ID()] = ret.Clone()
	return nil
}

func (r returnRepository) Update(_ context.Context, ret *returns.Return, from returns.Status) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	stored, ok := data.returns[ret.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("return", ret.ID())
	}
	if stored.Status() != from {
		return errs.NewConflictError("return " + ret.ID().String() + " was modified concurrently")
	}
	data.returns[ret.ID()] = ret.Clone()
	return nil
}

func (r returnRepository) Get(_ context.Context, id kernel.UUID) (*returns.Return, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	ret, ok := data.returns[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("return", id)
	}
	return ret.Clone(), nil
}

// GetForUpdate needs no extra locking: the unit of work already holds the store.
func (r returnRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	return r.Get(ctx, id)
}

func (r returnRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	return returnsOf(data, orderID), nil
}

func returnsOf(data *state, orderID kernel.UUID) []*returns.Return {
	var result []*returns.Return
	for _, ret := range data.returns {
		if ret.OrderID().IsEqual(orderID) {
			result = append(result, ret.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result
}

type invoiceRepository struct{ uow *UnitOfWork }

func (r invoiceRepository) Add(_ context.Context, inv *invoice.Invoice) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	for _, existing := range data.invoices {
		if existing.OrderID().IsEqual(inv.OrderID()) {
			return errs.NewConflictError("invoice for order " + inv.OrderID().String())
		}
		if existing.Number() == inv.Number() {
			return errs.NewConflictError("invoice " + inv.Number())
		}
	}
	data.invoices[inv.ID()] = inv.Clone()
	return nil
}

func (r invoiceRepository) Update(_ context.Context, inv *invoice.Invoice) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, ok := data.invoices[inv.ID()]; !ok {
		return errs.NewObjectNotFoundError("invoice", inv.ID())
	}
	data.invoices[inv.ID()] = inv.Clone()
	return nil
}

func (r invoiceRepository) Get(_ context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	inv, ok := data.invoices[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("invoice", id)
	}
	return inv.Clone(), nil
}

func (r invoiceRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	return invoiceOf(data, orderID)
}

func invoiceOf(data *state, orderID kernel.UUID) (*invoice.Invoice, error) {
	for _, inv := range data.invoices {
		if inv.OrderID().IsEqual(orderID) {
			return inv.Clone(), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("invoice for order", orderID)
}

type notificationRepository struct{ uow *UnitOfWork }

func (r notificationRepository) Add(_ context.Context, ns ...*notification.Notification) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	for _, n := range ns {
		data.notifications[n.ID()] = n.Clone()
	}
	return nil
}

func (r notificationRepository) Get(_ context.Context, id kernel.UUID) (*notification.Notification, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	n, ok := data.notifications[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("notification", id)
	}
	return n.Clone(), nil
}

func (r notificationRepository) Update(_ context.Context, n *notification.Notification) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, ok := data.notifications[n.ID()]; !ok {
		return errs.NewObjectNotFoundError("notification", n.ID())
	}
	data.notifications[n.ID()] = n.Clone()
	return nil
}

func (r notificationRepository) MarkAllRead(_ context.Context, userID kernel.UUID) (int, error) {
	data, err := r.uow.data()
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, n := range data.notifications {
		if !n.UserID().IsEqual(userID) || n.IsRead() {
			continue
		}
		if err = n.MarkRead(userID); err != nil {
			return 0, err
		}
		changed++
	}
	return changed, nil
}

type chatSessionRepository struct{ uow *UnitOfWork }

func (r chatSessionRepository) Add(_ context.Context, s *chat.Session) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, exists := data.sessions[s.ID()]; exists {
		return errs.NewConflictError("chat session " + s.ID().String())
	}
	data.sessions[s.ID()] = s.Clone()
	return nil
}

func (r chatSessionRepository) Update(_ context.Context, s *chat.Session) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	if _, ok := data.sessions[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("chat session", s.ID())
	}
	data.sessions[s.ID()] = s.Clone()
	return nil
}

func (r chatSessionRepository) Get(_ context.Context, id kernel.UUID) (*chat.Session, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	s, ok := data.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("chat session", id)
	}
	return s.Clone(), nil
}

func (r chatSessionRepository) ListActiveBetween(_ context.Context, a, b kernel.UUID) ([]*chat.Session, error) {
	data, err := r.uow.data()
	if err != nil {
		return nil, err
	}
	var result []*chat.Session
	for _, s := range data.sessions {
		if s.IsActive() && s.Joins(a, b) {
			result = append(result, s.Clone())
		}
	}
	return result, nil
}

type messageRepository struct{ uow *UnitOfWork }

func (r messageRepository) Add(_ context.Context, m *chat.Message) error {
	data, err := r.uow.data()
	if err != nil {
		return err
	}
	data.messages = append(data.messages, m)
	return nil
}

type counterRepository struct{ uow *UnitOfWork }

func (r counterRepository) Next(_ context.Context, name string) (int64, error) {
	data, err := r.uow.data()
	if err != nil {
		return 0, err
	}
	data.counters[name]++
	return data.counters[name], nil
}
