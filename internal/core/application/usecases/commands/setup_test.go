package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var startOfTest = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type orderingFactory struct{ f *memory.UnitOfWorkFactory }

func (x orderingFactory) Create() commands.OrderingUoW { return x.f.Create() }

type returnFactory struct{ f *memory.UnitOfWorkFactory }

func (x returnFactory) Create() commands.ReturnUoW { return x.f.Create() }

type invoiceFactory struct{ f *memory.UnitOfWorkFactory }

func (x invoiceFactory) Create() commands.InvoiceUoW { return x.f.Create() }

type notificationFactory struct{ f *memory.UnitOfWorkFactory }

func (x notificationFactory) Create() commands.NotificationUoW { return x.f.Create() }

type chatFactory struct{ f *memory.UnitOfWorkFactory }

func (x chatFactory) Create() commands.ChatUoW { return x.f.Create() }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type recordingPusher struct {
	mu     sync.Mutex
	pushed map[kernel.UUID][]ports.PushEvent
}

func (p *recordingPusher) Push(_ context.Context, userID kernel.UUID, event ports.PushEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = make(map[kernel.UUID][]ports.PushEvent)
	}
	p.pushed[userID] = append(p.pushed[userID], event)
	return nil
}

func (p *recordingPusher) to(userID kernel.UUID) []ports.PushEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pushed[userID]
}

// unreachableDirectory fails every user lookup.
type unreachableDirectory struct {
	*memory.Directory
}

func (unreachableDirectory) Get(context.Context, kernel.UUID) (user.User, error) {
	return user.User{}, errors.New("directory unavailable")
}

// env wires every handler against the in-memory adapter.
type env struct {
	t         *testing.T
	store     *memory.Store
	reader    *memory.Reader
	dir       *memory.Directory
	clock     *clock.Fixed
	publisher *recordingPublisher
	pusher    *recordingPusher
	logs      *observer.ObservedLogs
	logger    *zap.Logger
	uows      *memory.UnitOfWorkFactory
	fanout    *notifications.FanOut

	admin   kernel.Actor
	store1  kernel.Actor
	store2  kernel.Actor
	agentA  kernel.Actor
	agentB  kernel.Actor
	support kernel.Actor

	placeOrder    commands.PlaceOrderCommandHandler
	assign        commands.AssignDeliveryCommandHandler
	pickup        commands.ConfirmPickupCommandHandler
	updateStatus  commands.UpdateOrderStatusCommandHandler
	cancel        commands.CancelOrderCommandHandler
	finalize      commands.FinalizeReturnCommandHandler
	softDelete    commands.SoftDeleteOrderCommandHandler
	requestReturn commands.RequestReturnCommandHandler
	updateReturn  commands.UpdateReturnStatusCommandHandler
	generate      commands.GenerateInvoiceCommandHandler
	updateInvoice commands.UpdateInvoiceCommandHandler
	openSession   commands.OpenChatSessionCommandHandler
	closeSession  commands.CloseChatSessionCommandHandler
	sendMessage   commands.SendMessageCommandHandler
	markRead      commands.MarkNotificationReadCommandHandler
	markAllRead   commands.MarkAllNotificationsReadCommandHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	e := &env{
		t:         t,
		store:     memory.NewStore(),
		dir:       memory.NewDirectory(),
		clock:     clock.NewFixed(startOfTest),
		publisher: &recordingPublisher{},
		pusher:    &recordingPusher{},
		logs:      logs,
		logger:    logger,
	}
	e.reader = memory.NewReader(e.store)

	e.admin = e.addUser("Ada Admin", kernel.RoleAdmin, "")
	e.store1 = e.addUser("Corner Shop", kernel.RoleStore, "12 Market Street")
	e.store2 = e.addUser("No Address Shop", kernel.RoleStore, "")
	e.agentA = e.addUser("Agent A", kernel.RoleDelivery, "")
	e.agentB = e.addUser("Agent B", kernel.RoleDelivery, "")
	e.support = e.addUser("Sam Support", kernel.RoleSupport, "")

	e.uows = memory.NewUnitOfWorkFactory(e.store)
	e.fanout = notifications.NewFanOut(e.dir, e.clock, logger,
		notifications.WithPublisher(e.publisher),
		notifications.WithPusher(e.pusher),
	)

	e.generate = commands.NewGenerateInvoiceCommandHandler(invoiceFactory{e.uows}, e.dir, e.dir, e.clock, logger)
	e.placeOrder = commands.NewPlaceOrderCommandHandler(orderingFactory{e.uows}, e.dir, e.fanout, e.clock)
	e.assign = commands.NewAssignDeliveryCommandHandler(orderingFactory{e.uows}, e.dir, e.fanout, e.clock)
	e.pickup = commands.NewConfirmPickupCommandHandler(orderingFactory{e.uows}, e.fanout, e.clock)
	e.updateStatus = commands.NewUpdateOrderStatusCommandHandler(orderingFactory{e.uows}, e.generate, e.fanout, e.clock, logger)
	e.cancel = commands.NewCancelOrderCommandHandler(orderingFactory{e.uows}, e.fanout, e.clock)
	e.finalize = commands.NewFinalizeReturnCommandHandler(orderingFactory{e.uows}, e.fanout, e.clock)
	e.softDelete = commands.NewSoftDeleteOrderCommandHandler(orderingFactory{e.uows}, e.fanout, e.clock)
	e.requestReturn = commands.NewRequestReturnCommandHandler(returnFactory{e.uows}, e.fanout, e.clock)
	e.updateReturn = commands.NewUpdateReturnStatusCommandHandler(returnFactory{e.uows}, e.fanout, e.clock)
	e.updateInvoice = commands.NewUpdateInvoiceCommandHandler(invoiceFactory{e.uows}, e.clock)
	e.openSession = commands.NewOpenChatSessionCommandHandler(chatFactory{e.uows}, e.dir, e.clock)
	e.closeSession = commands.NewCloseChatSessionCommandHandler(chatFactory{e.uows}, e.clock)
	e.sendMessage = commands.NewSendMessageCommandHandler(chatFactory{e.uows}, e.dir, e.fanout, e.clock)
	e.markRead = commands.NewMarkNotificationReadCommandHandler(notificationFactory{e.uows})
	e.markAllRead = commands.NewMarkAllNotificationsReadCommandHandler(notificationFactory{e.uows})
	return e
}

func (e *env) addUser(name string, role kernel.Role, street string) kernel.Actor {
	e.t.Helper()
	u := user.User{
		ID:     kernel.NewUUID(),
		Name:   name,
		Email:  "",
		Role:   role,
		Active: true,
	}
	if street != "" {
		address, err := kernel.NewAddress(street, "Springfield", "IL", "62701")
		require.NoError(e.t, err)
		u.Address = address
		u.Email = "orders@cornershop.example"
	}
	e.dir.PutUser(u)

	actor, err := kernel.NewActor(u.ID, role)
	require.NoError(e.t, err)
	return actor
}

// addProduct seeds a catalog product; a positive taxRate attaches a tax.
func (e *env) addProduct(name, price string, stock int, taxRate int64) kernel.UUID {
	e.t.Helper()
	amount, err := kernel.MoneyFromString(price)
	require.NoError(e.t, err)

	var taxID *kernel.UUID
	if taxRate > 0 {
		id := kernel.NewUUID()
		e.dir.PutTax(id, decimal.NewFromInt(taxRate))
		taxID = &id
	}

	p, err := product.NewProduct(kernel.NewUUID(), name, amount, stock, product.Active, taxID)
	require.NoError(e.t, err)

	uow := memory.NewUnitOfWork(e.store)
	require.NoError(e.t, uow.Begin(context.Background()))
	require.NoError(e.t, uow.ProductRepository().Add(context.Background(), p))
	require.NoError(e.t, uow.Commit(context.Background()))
	return p.ID()
}

func (e *env) product(id kernel.UUID) *product.Product {
	e.t.Helper()
	uow := memory.NewUnitOfWork(e.store)
	require.NoError(e.t, uow.Begin(context.Background()))
	defer func() { _ = uow.Rollback(context.Background()) }()
	p, err := uow.ProductRepository().Get(context.Background(), id)
	require.NoError(e.t, err)
	return p
}

func (e *env) order(id kernel.UUID) *order.Order {
	e.t.Helper()
	o, err := e.reader.FindOrder(context.Background(), id)
	require.NoError(e.t, err)
	return o
}

func (e *env) inbox(userID kernel.UUID) []*notification.Notification {
	e.t.Helper()
	ns, err := e.reader.ListNotifications(context.Background(), userID, false, ports.Page{})
	require.NoError(e.t, err)
	return ns
}

func (e *env) place(actor kernel.Actor, lines ...commands.OrderLine) *order.Order {
	e.t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(actor, lines, nil)
	require.NoError(e.t, err)
	o, err := e.placeOrder.Handle(context.Background(), cmd)
	require.NoError(e.t, err)
	return o
}

// deliver places an order for store1 and drives it to delivered through agentA.
func (e *env) deliver(lines ...commands.OrderLine) *order.Order {
	e.t.Helper()
	ctx := context.Background()
	o := e.place(e.store1, lines...)

	assignCmd, err := commands.NewAssignDeliveryCommand(e.admin, o.ID(), e.agentA.UserID())
	require.NoError(e.t, err)
	_, err = e.assign.Handle(ctx, assignCmd)
	require.NoError(e.t, err)

	pickupCmd, err := commands.NewConfirmPickupCommand(e.agentA, o.ID())
	require.NoError(e.t, err)
	_, err = e.pickup.Handle(ctx, pickupCmd)
	require.NoError(e.t, err)

	statusCmd, err := commands.NewUpdateOrderStatusCommand(e.agentA, o.ID(), order.Delivered)
	require.NoError(e.t, err)
	delivered, err := e.updateStatus.Handle(ctx, statusCmd)
	require.NoError(e.t, err)
	return delivered
}

func countOfType(ns []*notification.Notification, kind notification.Type) int {
	n := 0
	for _, item := range ns {
		if item.Type() == kind {
			n++
		}
	}
	return n
}
