package commands_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand(t *testing.T) {
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStore)
	require.NoError(t, err)

	t.Run("requires items", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(actor, nil, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(actor, []commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 0}}, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects zero product ids", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(actor, []commands.OrderLine{{Quantity: 1}}, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a zero actor", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.Actor{}, []commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 1}}, nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.PlaceOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("freezes prices, reserves stock and numbers the order", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Sparkling water", "10.00", 5, 20)

		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 2})

		assert.Equal(t, "ORD-2025-001", o.Number())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "20.00", o.Total().String())
		assert.Equal(t, "12 Market Street", o.Address().Street())
		assert.Equal(t, 3, e.product(productID).Stock())

		second := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})
		assert.Equal(t, "ORD-2025-002", second.Number())
	})

	t.Run("notifies the store and every admin", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Sparkling water", "10.00", 5, 0)

		e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		assert.Equal(t, 1, countOfType(e.inbox(e.store1.UserID()), notification.OrderConfirmation))
		assert.Equal(t, 1, countOfType(e.inbox(e.admin.UserID()), notification.NewOrder))
		assert.Empty(t, e.inbox(e.support.UserID()))
		assert.Equal(t, []string{commands.EventOrderPlaced}, e.publisher.types())
		assert.Len(t, e.pusher.to(e.admin.UserID()), 1)
	})

	t.Run("line items carry the catalog price at placement", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Juice", "4.50", 10, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 2})

		reloaded := e.order(o.ID())
		require.Len(t, reloaded.Items(), 1)
		assert.Equal(t, "4.50", reloaded.Items()[0].UnitPrice().String())
		assert.Equal(t, "9.00", reloaded.Total().String())
	})

	t.Run("a failing line rolls back every reservation", func(t *testing.T) {
		e := newEnv(t)
		plenty := e.addProduct("Rice", "3.00", 10, 0)
		scarce := e.addProduct("Saffron", "12.00", 1, 0)

		cmd, err := commands.NewPlaceOrderCommand(e.store1, []commands.OrderLine{
			{ProductID: plenty, Quantity: 4},
			{ProductID: scarce, Quantity: 2},
		}, nil)
		require.NoError(t, err)

		_, err = e.placeOrder.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)

		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 1, stockErr.Available)

		assert.Equal(t, 10, e.product(plenty).Stock())
		assert.Equal(t, 1, e.product(scarce).Stock())
		assert.Empty(t, e.inbox(e.admin.UserID()))
	})

	t.Run("merges duplicate lines before reserving", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 3, 0)

		cmd, err := commands.NewPlaceOrderCommand(e.store1, []commands.OrderLine{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 2},
		}, nil)
		require.NoError(t, err)

		_, err = e.placeOrder.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 3, e.product(productID).Stock())
	})

	t.Run("depleting stock marks the product out of stock", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 2, 0)

		e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 2})

		p := e.product(productID)
		assert.Equal(t, 0, p.Stock())
		assert.Equal(t, product.OutOfStock, p.Status())
	})

	t.Run("falls back to the explicit address before the profile", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		address, err := kernel.NewAddress("99 Dock Road", "Harbor", "", "")
		require.NoError(t, err)

		cmd, err := commands.NewPlaceOrderCommand(e.store2, []commands.OrderLine{{ProductID: productID, Quantity: 1}}, &address)
		require.NoError(t, err)
		o, err := e.placeOrder.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "99 Dock Road", o.Address().Street())
	})

	t.Run("fails without any address", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)

		cmd, err := commands.NewPlaceOrderCommand(e.store2, []commands.OrderLine{{ProductID: productID, Quantity: 1}}, nil)
		require.NoError(t, err)
		_, err = e.placeOrder.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, commands.ErrAddressRequired)
		var addrErr *commands.AddressRequiredError
		require.ErrorAs(t, err, &addrErr)
		assert.Equal(t, e.store2.UserID(), addrErr.StoreID)
		assert.Equal(t, 5, e.product(productID).Stock())
	})

	t.Run("unknown products are not found", func(t *testing.T) {
		e := newEnv(t)
		cmd, err := commands.NewPlaceOrderCommand(e.store1, []commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 1}}, nil)
		require.NoError(t, err)
		_, err = e.placeOrder.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("only stores place orders", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		cmd, err := commands.NewPlaceOrderCommand(e.agentA, []commands.OrderLine{{ProductID: productID, Quantity: 1}}, nil)
		require.NoError(t, err)
		_, err = e.placeOrder.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestPlaceOrder_ConcurrentPlacementsNeverOversell(t *testing.T) {
	e := newEnv(t)
	productID := e.addProduct("Limited edition", "15.00", 5, 0)

	const attempts = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewPlaceOrderCommand(e.store1, []commands.OrderLine{{ProductID: productID, Quantity: 1}}, nil)
			if err != nil {
				return
			}
			if _, err = e.placeOrder.Handle(context.Background(), cmd); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	assert.Equal(t, 0, e.product(productID).Stock())
}

// reservationLog records the product ids passed to Reserve.
type reservationLog struct {
	mu  sync.Mutex
	ids []kernel.UUID
}

type loggingProductRepository struct {
	ports.ProductRepository
	log *reservationLog
}

func (r loggingProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	r.log.mu.Lock()
	r.log.ids = append(r.log.ids, id)
	r.log.mu.Unlock()
	return r.ProductRepository.Reserve(ctx, id, quantity)
}

type loggingUoW struct {
	ports.UnitOfWork
	log *reservationLog
}

func (u loggingUoW) ProductRepository() ports.ProductRepository {
	return loggingProductRepository{ProductRepository: u.UnitOfWork.ProductRepository(), log: u.log}
}

type loggingOrderingFactory struct {
	f   *memory.UnitOfWorkFactory
	log *reservationLog
}

func (x loggingOrderingFactory) Create() commands.OrderingUoW {
	return loggingUoW{UnitOfWork: x.f.Create(), log: x.log}
}

func TestPlaceOrder_ReservesInProductIDOrder(t *testing.T) {
	e := newEnv(t)
	ids := []kernel.UUID{
		e.addProduct("Apples", "1.00", 10, 0),
		e.addProduct("Bread", "2.00", 10, 0),
		e.addProduct("Cheese", "3.00", 10, 0),
	}
	log := &reservationLog{}
	handler := commands.NewPlaceOrderCommandHandler(loggingOrderingFactory{f: e.uows, log: log}, e.dir, e.fanout, e.clock)

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int { return strings.Compare(a.String(), b.String()) })
	requested := []kernel.UUID{sorted[2], sorted[0], sorted[1]}

	lines := make([]commands.OrderLine, 0, len(requested))
	for _, id := range requested {
		lines = append(lines, commands.OrderLine{ProductID: id, Quantity: 1})
	}
	cmd, err := commands.NewPlaceOrderCommand(e.store1, lines, nil)
	require.NoError(t, err)

	o, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, sorted, log.ids)
	require.Len(t, o.Items(), 3)
	for i, line := range o.Items() {
		assert.Equal(t, requested[i], line.ProductID())
	}
}

func TestAssignDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("forces waiting_for_delivery and notifies the agent", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		assigned, err := e.assign.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.WaitingForDelivery, assigned.Status())
		assert.True(t, assigned.IsAssignedTo(e.agentA.UserID()))
		assert.Equal(t, 1, countOfType(e.inbox(e.agentA.UserID()), notification.OrderAssigned))
	})

	t.Run("reassigns an order on the road", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, cmd)
		require.NoError(t, err)
		pickup, err := commands.NewConfirmPickupCommand(e.agentA, o.ID())
		require.NoError(t, err)
		_, err = e.pickup.Handle(ctx, pickup)
		require.NoError(t, err)

		reassign, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentB.UserID())
		require.NoError(t, err)
		reassigned, err := e.assign.Handle(ctx, reassign)
		require.NoError(t, err)
		assert.Equal(t, order.WaitingForDelivery, reassigned.Status())
		assert.True(t, reassigned.IsAssignedTo(e.agentB.UserID()))
	})

	t.Run("rejects finished orders", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.deliver(commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentB.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("rejects users that are not delivery agents", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.support.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("only dispatchers assign", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewAssignDeliveryCommand(e.store1, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestConfirmPickup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	productID := e.addProduct("Bread", "2.00", 5, 0)
	o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

	early, err := commands.NewConfirmPickupCommand(e.agentA, o.ID())
	require.NoError(t, err)
	_, err = e.pickup.Handle(ctx, early)
	assert.ErrorIs(t, err, errs.ErrForbidden, "unassigned order")

	assign, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
	require.NoError(t, err)
	_, err = e.assign.Handle(ctx, assign)
	require.NoError(t, err)

	other, err := commands.NewConfirmPickupCommand(e.agentB, o.ID())
	require.NoError(t, err)
	_, err = e.pickup.Handle(ctx, other)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	byAdmin, err := commands.NewConfirmPickupCommand(e.admin, o.ID())
	require.NoError(t, err)
	_, err = e.pickup.Handle(ctx, byAdmin)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	own, err := commands.NewConfirmPickupCommand(e.agentA, o.ID())
	require.NoError(t, err)
	picked, err := e.pickup.Handle(ctx, own)
	require.NoError(t, err)
	assert.Equal(t, order.Delivering, picked.Status())

	_, err = e.pickup.Handle(ctx, own)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	assert.Equal(t, 1, countOfType(e.inbox(e.store1.UserID()), notification.OrderStatusChanged))
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered issues exactly one invoice", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Sparkling water", "10.00", 5, 20)
		o := e.deliver(commands.OrderLine{ProductID: productID, Quantity: 2})
		assert.Equal(t, order.Delivered, o.Status())

		inv, err := e.reader.FindInvoiceByOrder(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-00001", inv.Number())
		assert.Equal(t, "20.00", inv.Total().String())
		assert.Equal(t, "3.33", inv.TotalTax().String())
		assert.Equal(t, "16.67", inv.Subtotal().String())
		assert.Equal(t, "Corner Shop", inv.Customer().Name)

		again, err := commands.NewUpdateOrderStatusCommand(e.agentA, o.ID(), order.Delivered)
		require.NoError(t, err)
		_, err = e.updateStatus.Handle(ctx, again)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		gen, err := commands.NewGenerateInvoiceCommand(o.ID())
		require.NoError(t, err)
		existing, created, err := e.generate.Handle(ctx, gen)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, inv.ID(), existing.ID())

		invoices, err := e.reader.ListInvoices(ctx, ports.Page{})
		require.NoError(t, err)
		assert.Len(t, invoices, 1)
	})

	t.Run("invoice failures never fail the status update", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		assign, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, assign)
		require.NoError(t, err)

		broken := commands.NewGenerateInvoiceCommandHandler(
			invoiceFactory{e.uows}, unreachableDirectory{e.dir}, e.dir, e.clock, e.logger)
		updateStatus := commands.NewUpdateOrderStatusCommandHandler(
			orderingFactory{e.uows}, broken, e.fanout, e.clock, e.logger)

		for _, target := range []order.Status{order.Delivering, order.Delivered} {
			cmd, err := commands.NewUpdateOrderStatusCommand(e.agentA, o.ID(), target)
			require.NoError(t, err)
			updated, err := updateStatus.Handle(ctx, cmd)
			require.NoError(t, err)
			assert.Equal(t, target, updated.Status())
		}

		assert.Equal(t, 1, e.logs.FilterMessage("invoice generation failed, left to reconciliation").Len())
		_, err = e.reader.FindInvoiceByOrder(ctx, o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		gen, err := commands.NewGenerateInvoiceCommand(o.ID())
		require.NoError(t, err)
		_, created, err := e.generate.Handle(ctx, gen)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("agents may only move their own orders", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})
		assign, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, assign)
		require.NoError(t, err)

		cmd, err := commands.NewUpdateOrderStatusCommand(e.agentB, o.ID(), order.Delivering)
		require.NoError(t, err)
		_, err = e.updateStatus.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		byStore, err := commands.NewUpdateOrderStatusCommand(e.store1, o.ID(), order.Delivering)
		require.NoError(t, err)
		_, err = e.updateStatus.Handle(ctx, byStore)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("transitions outside the table leave the order untouched", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewUpdateOrderStatusCommand(e.admin, o.ID(), order.Delivered)
		require.NoError(t, err)
		_, err = e.updateStatus.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.EqualError(t, err, "cannot change order status from pending to delivered")

		reloaded := e.order(o.ID())
		assert.Equal(t, order.Pending, reloaded.Status())
		assert.Equal(t, 1, reloaded.History().Len())
	})

	t.Run("moving into cancelled restocks", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 3})

		cmd, err := commands.NewUpdateOrderStatusCommand(e.admin, o.ID(), order.Cancelled)
		require.NoError(t, err)
		cancelled, err := e.updateStatus.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Equal(t, 5, e.product(productID).Stock())
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("records the reason, restocks and notifies every party", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 2, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 2})
		assert.Equal(t, product.OutOfStock, e.product(productID).Status())

		assign, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
		require.NoError(t, err)
		_, err = e.assign.Handle(ctx, assign)
		require.NoError(t, err)

		cmd, err := commands.NewCancelOrderCommand(e.store1, o.ID(), "  customer changed their mind ")
		require.NoError(t, err)
		cancelled, err := e.cancel.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Equal(t, "customer changed their mind", cancelled.CancellationReason())

		p := e.product(productID)
		assert.Equal(t, 2, p.Stock())
		assert.Equal(t, product.Active, p.Status())

		for _, party := range []kernel.UUID{e.store1.UserID(), e.agentA.UserID(), e.admin.UserID()} {
			assert.Equal(t, 1, countOfType(e.inbox(party), notification.OrderCancelled))
		}
		assert.Contains(t, e.publisher.types(), commands.EventOrderCancelled)
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.deliver(commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewCancelOrderCommand(e.admin, o.ID(), "")
		require.NoError(t, err)
		_, err = e.cancel.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, 4, e.product(productID).Stock())
	})

	t.Run("other stores cannot cancel", func(t *testing.T) {
		e := newEnv(t)
		productID := e.addProduct("Bread", "2.00", 5, 0)
		o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

		cmd, err := commands.NewCancelOrderCommand(e.store2, o.ID(), "")
		require.NoError(t, err)
		_, err = e.cancel.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		bySupport, err := commands.NewCancelOrderCommand(e.support, o.ID(), "")
		require.NoError(t, err)
		_, err = e.cancel.Handle(ctx, bySupport)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("reason length is bounded", func(t *testing.T) {
		long := make([]rune, 501)
		for i := range long {
			long[i] = 'x'
		}
		_, err := commands.NewCancelOrderCommand(kernelActor(t, kernel.RoleAdmin), kernel.NewUUID(), string(long))
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestFinalizeReturn(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	productID := e.addProduct("Bread", "2.00", 5, 0)
	o := e.deliver(commands.OrderLine{ProductID: productID, Quantity: 1})

	byOther, err := commands.NewFinalizeReturnCommand(e.store2, o.ID())
	require.NoError(t, err)
	_, err = e.finalize.Handle(ctx, byOther)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	cmd, err := commands.NewFinalizeReturnCommand(e.store1, o.ID())
	require.NoError(t, err)
	returned, err := e.finalize.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Returned, returned.Status())

	last, ok := returned.History().Last()
	require.True(t, ok)
	assert.Equal(t, order.Returned, last.Status)
	assert.Equal(t, e.store1.UserID(), last.ChangedBy)

	_, err = e.finalize.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestSoftDeleteOrder(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	productID := e.addProduct("Bread", "2.00", 5, 0)
	o := e.place(e.store1, commands.OrderLine{ProductID: productID, Quantity: 1})

	byStore, err := commands.NewSoftDeleteOrderCommand(e.store1, o.ID())
	require.NoError(t, err)
	assert.ErrorIs(t, e.softDelete.Handle(ctx, byStore), errs.ErrForbidden)

	cmd, err := commands.NewSoftDeleteOrderCommand(e.admin, o.ID())
	require.NoError(t, err)
	require.NoError(t, e.softDelete.Handle(ctx, cmd))

	_, err = e.reader.FindOrder(ctx, o.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.ErrorIs(t, e.softDelete.Handle(ctx, cmd), errs.ErrObjectNotFound)
	assert.Contains(t, e.publisher.types(), commands.EventOrderDeleted)
}

func kernelActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}
