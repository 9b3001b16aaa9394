package returns

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrReturnIsNotConstructed is returned for a Return that bypassed Request.
var ErrReturnIsNotConstructed = errors.New("Return must be created via Request")

// Item is one product and the quantity to send back.
type Item struct {
	ProductID kernel.UUID
	Quantity  int
}

// Return is a partial reversal of a delivered order. storeID is the store that
// owns the parent order; requestedBy may be that store or an admin.
type Return struct {
	id          kernel.UUID
	orderID     kernel.UUID
	storeID     kernel.UUID
	requestedBy kernel.UUID
	items       []Item
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// Request validates a new return against its parent order and every earlier
// return of that order.
//
// Rules:
//   - the order must be Delivered
//   - every product must appear in the order and quantities must be at least one
//   - per product, the quantity claimed by earlier non-rejected, non-cancelled
//     returns plus this request must not exceed the ordered quantity
//
// Items naming the same product twice are merged.
func Request(
	id kernel.UUID,
	o *order.Order,
	requestedBy kernel.UUID,
	items []Item,
	previous []*Return,
	at time.Time,
) (*Return, error) {
	if err := errors.Join(id.Validate(), requestedBy.Validate(), o.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Delivered {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("only delivered orders can be returned, order is %s", o.Status()),
		)
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	merged, err := mergeItems(items)
	if err != nil {
		return nil, err
	}

	claimed := Claimed(previous)
	for _, item := range merged {
		ordered := o.QuantityOf(item.ProductID)
		if ordered == 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("product %s is not in the order", item.ProductID),
			)
		}
		maxAllowed := ordered - claimed[item.ProductID]
		if maxAllowed < 0 {
			maxAllowed = 0
		}
		if item.Quantity > maxAllowed {
			return nil, errs.NewInsufficientReturnQuantityError(item.ProductID.String(), item.Quantity, maxAllowed)
		}
	}

	return &Return{
		id:            id,
		orderID:       o.ID(),
		storeID:       o.StoreID(),
		requestedBy:   requestedBy,
		items:         merged,
		status:        Requested,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreReturn rebuilds a persisted return.
func RestoreReturn(
	id, orderID, storeID, requestedBy kernel.UUID,
	items []Item,
	status Status,
	createdAt, updatedAt time.Time,
) *Return {
	restored := make([]Item, len(items))
	copy(restored, items)
	return &Return{
		id:            id,
		orderID:       orderID,
		storeID:       storeID,
		requestedBy:   requestedBy,
		items:         restored,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

// Claimed sums, per product, the quantities held by returns that still count.
func Claimed(returns []*Return) map[kernel.UUID]int {
	claimed := make(map[kernel.UUID]int)
	for _, r := range returns {
		if r == nil || !r.status.CountsTowardsQuantity() {
			continue
		}
		for _, item := range r.items {
			claimed[item.ProductID] += item.Quantity
		}
	}
	return claimed
}

func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

func (r *Return) ID() kernel.UUID {
	return r.id
}

func (r *Return) OrderID() kernel.UUID {
	return r.orderID
}

// StoreID is the store owning the parent order.
func (r *Return) StoreID() kernel.UUID {
	return r.storeID
}

func (r *Return) RequestedBy() kernel.UUID {
	return r.requestedBy
}

// Items returns a copy of the requested items.
func (r *Return) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Return) Status() Status {
	return r.status
}

func (r *Return) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Return) UpdatedAt() time.Time {
	return r.updatedAt
}

// ChangeStatus moves the return on behalf of actor.
//
// Permissions:
//   - Approved, Rejected, Received, Completed: moderators only
//   - InTransit: moderators or the owning store
//   - Cancelled: moderators, or the owning store while still Requested
func (r *Return) ChangeStatus(actor kernel.Actor, target Status, at time.Time) error {
	if err := r.authorize(actor, target); err != nil {
		return err
	}

	next, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = at
	return nil
}

func (r *Return) authorize(actor kernel.Actor, target Status) error {
	if actor.Can(kernel.CapModerateReturns) {
		return nil
	}

	isStore := actor.Can(kernel.CapRequestReturns) && actor.Is(r.storeID)
	switch target {
	case InTransit:
		if isStore {
			return nil
		}
	case Cancelled:
		if isStore && r.status == Requested {
			return nil
		}
	default:
	}
	return errs.NewForbiddenError(fmt.Sprintf("not allowed to move return to %s", target))
}

// Clone returns a deep copy.
func (r *Return) Clone() *Return {
	c := *r
	c.items = r.Items()
	return &c
}

func mergeItems(items []Item) ([]Item, error) {
	merged := make([]Item, 0, len(items))
	index := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return nil, err
		}
		if item.Quantity < 1 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
