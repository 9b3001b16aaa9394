package commands

import (
	"context"
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrAddressRequired is returned when neither the request nor the store
// profile provides a delivery address.
var ErrAddressRequired = errors.New("address is required: none given and the store has no profile address")

// AddressRequiredError matches both ErrAddressRequired and errs.ErrValueIsRequired.
type AddressRequiredError struct {
	StoreID kernel.UUID
}

func (e *AddressRequiredError) Error() string {
	return ErrAddressRequired.Error()
}

func (e *AddressRequiredError) Is(target error) bool {
	return target == ErrAddressRequired || target == errs.ErrValueIsRequired
}

// PlaceOrderCommandHandler places an order for the calling store.
//
// In one transaction it freezes current catalog prices into the line items,
// reserves stock for every line, draws the yearly order number and records the
// order_confirmation and new_order notifications. Any failed reservation rolls
// back every earlier one. Push, email and the order.placed event follow commit.
type PlaceOrderCommandHandler struct {
	uowFactory OrderingUoWFactory
	users      ports.UserDirectory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderingUoWFactory,
	users ports.UserDirectory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.CapPlaceOrder) {
		return nil, errs.NewForbiddenError("only stores can place orders")
	}

	address, err := h.resolveAddress(ctx, actor.UserID(), cmd.Address())
	if err != nil {
		return nil, err
	}

	lines := mergeLines(cmd.Lines())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	catalog, err := loadProducts(ctx, productRepo, lines)
	if err != nil {
		return nil, err
	}

	for _, line := range reservationOrder(lines) {
		if err = productRepo.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		p := catalog[line.ProductID]
		var item order.LineItem
		if item, err = order.NewLineItem(line.ProductID, line.Quantity, p.Price()); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := h.clock.Now()
	seq, err := uow.CounterRepository().Next(ctx, order.CounterName(now.Year()))
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), order.FormatNumber(now.Year(), seq), actor.UserID(), items, address, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	payload := orderPayload(o)
	payload["total"] = o.Total().String()
	if err = h.fanout.Notify(batch, notification.OrderConfirmation, payload, o.StoreID()); err != nil {
		return nil, err
	}
	if err = h.fanout.NotifyCapable(ctx, batch, kernel.CapReceiveNewOrderAlerts, notification.NewOrder, payload); err != nil {
		return nil, err
	}
	h.fanout.Publish(batch, orderEvent(EventOrderPlaced, o, actor.UserID()))
	h.fanout.EmailUser(ctx, batch, o.StoreID(), notifications.OrderConfirmationEmail(o))

	if err = h.fanout.Persist(ctx, uow.NotificationRepository(), batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanout.Deliver(ctx, batch)
	return o, nil
}

func (h PlaceOrderCommandHandler) resolveAddress(
	ctx context.Context,
	storeID kernel.UUID,
	explicit *kernel.Address,
) (kernel.Address, error) {
	if explicit != nil && !explicit.IsEmpty() {
		return *explicit, nil
	}

	store, err := h.users.Get(ctx, storeID)
	if err != nil {
		return kernel.Address{}, err
	}
	if store.Address.IsEmpty() {
		return kernel.Address{}, &AddressRequiredError{StoreID: storeID}
	}
	return store.Address, nil
}

// mergeLines folds lines naming the same product into one, keeping first-seen order.
func mergeLines(lines []OrderLine) []OrderLine {
	merged := make([]OrderLine, 0, len(lines))
	index := make(map[kernel.UUID]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// reservationOrder sorts by product id so concurrent placements lock product
// rows in the same order.
func reservationOrder(lines []OrderLine) []OrderLine {
	sorted := slices.Clone(lines)
	slices.SortFunc(sorted, func(a, b OrderLine) int {
		return strings.Compare(a.ProductID.String(), b.ProductID.String())
	})
	return sorted
}

func loadProducts(
	ctx context.Context,
	repo ports.ProductRepository,
	lines []OrderLine,
) (map[kernel.UUID]*product.Product, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	found, err := repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		catalog[p.ID()] = p
	}
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
	}
	return catalog, nil
}
