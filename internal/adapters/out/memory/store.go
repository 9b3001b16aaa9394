// Package memory is an in-process implementation of every storage port. It is
// used by the memory storage driver and by application tests.
//
// Transactions are serialized: Begin takes the store lock and snapshots the
// state, Rollback restores the snapshot, Commit keeps the changes. Aggregates
// are cloned on the way in and out, so callers never share pointers with the store.
package memory

import (
	"sync"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/returns"
)

type state struct {
	products      map[kernel.UUID]*product.Product
	orders        map[kernel.UUID]*order.Order
	returns       map[kernel.UUID]*returns.Return
	invoices      map[kernel.UUID]*invoice.Invoice
	notifications map[kernel.UUID]*notification.Notification
	sessions      map[kernel.UUID]*chat.Session
	messages      []*chat.Message
	counters      map[string]int64
}

func newState() *state {
	return &state{
		products:      make(map[kernel.UUID]*product.Product),
		orders:        make(map[kernel.UUID]*order.Order),
		returns:       make(map[kernel.UUID]*returns.Return),
		invoices:      make(map[kernel.UUID]*invoice.Invoice),
		notifications: make(map[kernel.UUID]*notification.Notification),
		sessions:      make(map[kernel.UUID]*chat.Session),
		counters:      make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		c.products[id] = p.Clone()
	}
	for id, o := range s.orders {
		c.orders[id] = o.Clone()
	}
	for id, r := range s.returns {
		c.returns[id] = r.Clone()
	}
	for id, inv := range s.invoices {
		c.invoices[id] = inv.Clone()
	}
	for id, n := range s.notifications {
		c.notifications[id] = n.Clone()
	}
	for id, session := range s.sessions {
		c.sessions[id] = session.Clone()
	}
	c.messages = append(c.messages, s.messages...)
	for name, value := range s.counters {
		c.counters[name] = value
	}
	return c
}

// Store holds the data shared by every unit of work and reader.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}
