package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is placed without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the fulfillment lifecycle.
//
// Order follows these invariants:
//   - total equals the sum of frozen unit price × quantity and never changes
//   - line items never change after creation
//   - status only moves along the transition table, except for delivery
//     assignment which forces WaitingForDelivery from any non-final status
//   - every status change appends exactly one history entry
//   - orders are never hard-deleted; SoftDelete hides them from reads
//
// version is the optimistic concurrency token loaded from storage. Repositories
// reject updates whose version no longer matches.
type Order struct {
	id                 kernel.UUID
	number             string
	storeID            kernel.UUID
	items              []LineItem
	total              kernel.Money
	status             Status
	assignedTo         *kernel.UUID
	history            StatusHistory
	address            kernel.Address
	paymentMethod      PaymentMethod
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time
	deletedAt          *time.Time
	version            int

	isConstructed bool
}

// NewOrder places a new order in Pending status. The total is computed once
// from the items' frozen prices, and the store is recorded as the author of
// the first history entry.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), order.FormatNumber(2025, 1), storeID,
//	    []order.LineItem{item}, address, time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	storeID kernel.UUID,
	items []LineItem,
	address kernel.Address,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentMethod: CashOnDelivery,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setStoreID(storeID),
		o.setItems(items),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	o.history.append(Pending, storeID, at)
	return o, nil
}

// RestoreOrder rebuilds an order from storage without re-running placement rules.
func RestoreOrder(
	id kernel.UUID,
	number string,
	storeID kernel.UUID,
	items []LineItem,
	total kernel.Money,
	status Status,
	assignedTo *kernel.UUID,
	history StatusHistory,
	address kernel.Address,
	paymentMethod PaymentMethod,
	cancellationReason string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
	version int,
) *Order {
	restored := make([]LineItem, len(items))
	copy(restored, items)
	return &Order{
		id:                 id,
		number:             number,
		storeID:            storeID,
		items:              restored,
		total:              total,
		status:             status,
		assignedTo:         assignedTo,
		history:            history,
		address:            address,
		paymentMethod:      paymentMethod,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		deletedAt:          deletedAt,
		version:            version,
		isConstructed:      true,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the human-readable, year-scoped order number.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedTo returns the delivery agent, or nil when unassigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

func (o *Order) History() StatusHistory {
	return o.history
}

func (o *Order) Address() kernel.Address {
	return o.address
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeletedAt is set once the order has been soft-deleted.
func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil
}

func (o *Order) Version() int {
	return o.version
}

// IsOwnedBy reports whether storeID placed the order.
func (o *Order) IsOwnedBy(storeID kernel.UUID) bool {
	return o.storeID.IsEqual(storeID)
}

// IsAssignedTo reports whether agentID is the assigned delivery agent.
func (o *Order) IsAssignedTo(agentID kernel.UUID) bool {
	return o.assignedTo != nil && o.assignedTo.IsEqual(agentID)
}

// QuantityOf sums the ordered quantity of a product across lines.
func (o *Order) QuantityOf(productID kernel.UUID) int {
	total := 0
	for _, item := range o.items {
		if item.productID.IsEqual(productID) {
			total += item.quantity
		}
	}
	return total
}

// AssignDelivery sets the delivery agent and forces WaitingForDelivery. It is
// allowed from Pending, WaitingForDelivery and Delivering; delivered, returned
// and cancelled orders reject it.
func (o *Order) AssignDelivery(agentID, by kernel.UUID, at time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if !o.status.AllowsAssignment() {
		return errs.NewInvalidTransitionError("order", o.status, WaitingForDelivery)
	}

	id := agentID
	o.assignedTo = &id
	o.setStatus(WaitingForDelivery, by, at)
	return nil
}

// ConfirmPickup moves WaitingForDelivery to Delivering on behalf of the
// assigned agent only.
func (o *Order) ConfirmPickup(agentID kernel.UUID, at time.Time) error {
	if !o.IsAssignedTo(agentID) {
		return errs.NewForbiddenError("order is not assigned to this delivery agent")
	}
	if o.status != WaitingForDelivery {
		return errs.NewInvalidTransitionError("order", o.status, Delivering)
	}

	o.setStatus(Delivering, agentID, at)
	return nil
}

// ChangeStatus applies a move from the transition table.
func (o *Order) ChangeStatus(target Status, by kernel.UUID, at time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.setStatus(next, by, at)
	return nil
}

// Cancel moves the order to Cancelled with an optional reason.
func (o *Order) Cancel(reason string, by kernel.UUID, at time.Time) error {
	if err := o.ChangeStatus(Cancelled, by, at); err != nil {
		return err
	}
	o.cancellationReason = strings.TrimSpace(reason)
	return nil
}

// SoftDelete hides the order from reads. Deleting twice keeps the first timestamp.
func (o *Order) SoftDelete(at time.Time) {
	if o.deletedAt != nil {
		return
	}
	t := at
	o.deletedAt = &t
	o.updatedAt = at
}

// IncrementVersion is called by repositories once an update is stored.
func (o *Order) IncrementVersion() {
	o.version++
}

// Clone returns a deep copy for stores that hand out snapshots.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	c.history = NewStatusHistory(o.history.entries...)
	if o.assignedTo != nil {
		id := *o.assignedTo
		c.assignedTo = &id
	}
	if o.deletedAt != nil {
		t := *o.deletedAt
		c.deletedAt = &t
	}
	return &c
}

func (o *Order) setStatus(status Status, by kernel.UUID, at time.Time) {
	o.status = status
	o.updatedAt = at
	o.history.append(status, by, at)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	total := kernel.ZeroMoney()
	o.items = make([]LineItem, 0, len(items))
	for _, item := range items {
		if err := errors.Join(item.productID.Validate(), validateQuantity(item.quantity)); err != nil {
			return err
		}
		o.items = append(o.items, item)
		total = total.Add(item.Total())
	}
	o.total = total
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if address.IsEmpty() {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}
