package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/realtime"
	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// factory adapts the shared unit of work factory to the narrower handler views.
type factory[T any] func() T

func (f factory[T]) Create() T { return f() }

type caller struct {
	id   kernel.UUID
	role string
}

type apiEnv struct {
	t      *testing.T
	store  *memory.Store
	dir    *memory.Directory
	redis  goredis.UniversalClient
	router *echo.Echo

	admin  caller
	store1 caller
	store2 caller
	agent  caller
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := &apiEnv{
		t:     t,
		store: memory.NewStore(),
		dir:   memory.NewDirectory(),
		redis: client,
	}
	e.admin = e.addUser("Ada Admin", kernel.RoleAdmin)
	e.store1 = e.addUser("Corner Shop", kernel.RoleStore)
	e.store2 = e.addUser("Other Shop", kernel.RoleStore)
	e.agent = e.addUser("Agent A", kernel.RoleDelivery)

	uows := memory.NewUnitOfWorkFactory(e.store)
	reader := memory.NewReader(e.store)
	clk := clock.NewFixed(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
	ordering := factory[commands.OrderingUoW](func() commands.OrderingUoW { return uows.Create() })
	returnUoWs := factory[commands.ReturnUoW](func() commands.ReturnUoW { return uows.Create() })
	invoices := factory[commands.InvoiceUoW](func() commands.InvoiceUoW { return uows.Create() })
	inbox := factory[commands.NotificationUoW](func() commands.NotificationUoW { return uows.Create() })
	chats := factory[commands.ChatUoW](func() commands.ChatUoW { return uows.Create() })

	fanout := notifications.NewFanOut(e.dir, clk, logger,
		notifications.WithPusher(realtime.NewRedisPusher(client)))
	generate := commands.NewGenerateInvoiceCommandHandler(invoices, e.dir, e.dir, clk, logger)

	server := httpin.NewServer(httpin.Handlers{
		PlaceOrder:      commands.NewPlaceOrderCommandHandler(ordering, e.dir, fanout, clk),
		AssignDelivery:  commands.NewAssignDeliveryCommandHandler(ordering, e.dir, fanout, clk),
		ConfirmPickup:   commands.NewConfirmPickupCommandHandler(ordering, fanout, clk),
		UpdateStatus:    commands.NewUpdateOrderStatusCommandHandler(ordering, generate, fanout, clk, logger),
		CancelOrder:     commands.NewCancelOrderCommandHandler(ordering, fanout, clk),
		FinalizeReturn:  commands.NewFinalizeReturnCommandHandler(ordering, fanout, clk),
		SoftDeleteOrder: commands.NewSoftDeleteOrderCommandHandler(ordering, fanout, clk),
		RequestReturn:   commands.NewRequestReturnCommandHandler(returnUoWs, fanout, clk),
		UpdateReturn:    commands.NewUpdateReturnStatusCommandHandler(returnUoWs, fanout, clk),
		UpdateInvoice:   commands.NewUpdateInvoiceCommandHandler(invoices, clk),
		OpenSession:     commands.NewOpenChatSessionCommandHandler(chats, e.dir, clk),
		CloseSession:    commands.NewCloseChatSessionCommandHandler(chats, clk),
		SendMessage:     commands.NewSendMessageCommandHandler(chats, e.dir, fanout, clk),
		MarkRead:        commands.NewMarkNotificationReadCommandHandler(inbox),
		MarkAllRead:     commands.NewMarkAllNotificationsReadCommandHandler(inbox),

		GetOrder:          queries.NewGetOrderQueryHandler(reader),
		ListOrders:        queries.NewListOrdersQueryHandler(reader),
		ListReturns:       queries.NewListReturnsQueryHandler(reader, reader),
		GetInvoice:        queries.NewGetInvoiceQueryHandler(reader, reader),
		ListInvoices:      queries.NewListInvoicesQueryHandler(reader),
		ListNotifications: queries.NewListNotificationsQueryHandler(reader),
		ChatHistory:       queries.NewChatHistoryQueryHandler(reader),
		ListSessions:      queries.NewListChatSessionsQueryHandler(reader),
	}, realtime.NewSubscriber(client, logger), logger)

	doc, err := httpin.LoadOpenAPI(ctx)
	require.NoError(t, err)
	e.router, err = httpin.NewRouter(server, doc)
	require.NoError(t, err)
	return e
}

func (e *apiEnv) addUser(name string, role kernel.Role) caller {
	e.t.Helper()
	u := user.User{ID: kernel.NewUUID(), Name: name, Role: role, Active: true}
	if role == kernel.RoleStore {
		address, err := kernel.NewAddress("12 Market Street", "Springfield", "IL", "62701")
		require.NoError(e.t, err)
		u.Address = address
	}
	e.dir.PutUser(u)
	return caller{id: u.ID, role: role.String()}
}

func (e *apiEnv) addProduct(price string, stock int) kernel.UUID {
	e.t.Helper()
	ctx := context.Background()
	amount, err := kernel.MoneyFromString(price)
	require.NoError(e.t, err)
	p, err := product.NewProduct(kernel.NewUUID(), "Tea", amount, stock, product.Active, nil)
	require.NoError(e.t, err)

	uow := memory.NewUnitOfWork(e.store)
	require.NoError(e.t, uow.Begin(ctx))
	require.NoError(e.t, uow.ProductRepository().Add(ctx, p))
	require.NoError(e.t, uow.Commit(ctx))
	return p.ID()
}

func (e *apiEnv) do(who *caller, method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		payload = string(raw)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(httpin.HeaderUserID, who.id.String())
		req.Header.Set(httpin.HeaderUserRole, who.role)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (e *apiEnv) placeOrder(productID kernel.UUID, quantity int) httpin.Order {
	e.t.Helper()
	rec := e.do(&e.store1, http.MethodPost, "/api/v1/orders", httpin.PlaceOrderRequest{
		Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: quantity}},
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.Order](e.t, rec)
}

func TestAuthentication(t *testing.T) {
	e := newAPIEnv(t)

	tests := []struct {
		name string
		who  *caller
	}{
		{name: "no headers", who: nil},
		{name: "malformed user id", who: &caller{role: "admin"}},
		{name: "unknown role", who: &caller{id: kernel.NewUUID(), role: "courier"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.who != nil && tt.who.id.IsZero() {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
				req.Header.Set(httpin.HeaderUserID, "not-a-uuid")
				req.Header.Set(httpin.HeaderUserRole, tt.who.role)
				rec = httptest.NewRecorder()
				e.router.ServeHTTP(rec, req)
			} else {
				rec = e.do(tt.who, http.MethodGet, "/api/v1/orders", nil)
			}

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[httpin.Error](t, rec)
			assert.NotEmpty(t, body.Message)
			assert.NotEmpty(t, body.Errors)
		})
	}
}

func TestPublicEndpoints(t *testing.T) {
	e := newAPIEnv(t)

	rec := e.do(nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(nil, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[map[string]any](t, rec)
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestPlaceOrder(t *testing.T) {
	e := newAPIEnv(t)
	productID := e.addProduct("2.25", 3)

	t.Run("created for the calling store", func(t *testing.T) {
		o := e.placeOrder(productID, 2)
		assert.Equal(t, "pending", o.Status)
		assert.Equal(t, "4.50", o.Total)
		assert.Equal(t, e.store1.id.String(), o.StoreID)
		assert.True(t, strings.HasPrefix(o.Number, "ORD-2025-"))
		require.NotNil(t, o.Address, "falls back to the store address")
		assert.Equal(t, "12 Market Street", o.Address.Street)
	})

	t.Run("delivery agents cannot place orders", func(t *testing.T) {
		rec := e.do(&e.agent, http.MethodPost, "/api/v1/orders", httpin.PlaceOrderRequest{
			Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: 1}},
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("schema violations are rejected before the core", func(t *testing.T) {
		rec := e.do(&e.store1, http.MethodPost, "/api/v1/orders", httpin.PlaceOrderRequest{
			Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: 0}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, decode[httpin.Error](t, rec).Errors)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		rec := e.do(&e.store1, http.MethodPost, "/api/v1/orders", httpin.PlaceOrderRequest{
			Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: 5}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpin.Error](t, rec).Message, "insufficient stock")
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := e.do(&e.store1, http.MethodPost, "/api/v1/orders", httpin.PlaceOrderRequest{
			Items: []httpin.ItemQuantity{{ProductID: kernel.NewUUID().Bytes(), Quantity: 1}},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderVisibility(t *testing.T) {
	e := newAPIEnv(t)
	o := e.placeOrder(e.addProduct("1.00", 5), 1)
	path := "/api/v1/orders/" + o.ID

	assert.Equal(t, http.StatusOK, e.do(&e.store1, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(&e.admin, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(&e.store2, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(&e.agent, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		e.do(&e.admin, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(&e.admin, http.MethodGet, "/api/v1/orders/42", nil).Code)

	rec := e.do(&e.store1, http.MethodGet, "/api/v1/order-numbers/"+o.Number, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, o.ID, decode[httpin.Order](t, rec).ID)

	assert.Len(t, decode[[]httpin.Order](t, e.do(&e.store1, http.MethodGet, "/api/v1/orders", nil)), 1)
	assert.Empty(t, decode[[]httpin.Order](t, e.do(&e.store2, http.MethodGet, "/api/v1/orders", nil)))
	assert.Len(t, decode[[]httpin.Order](t,
		e.do(&e.admin, http.MethodGet, "/api/v1/orders?status=pending&limit=10", nil)), 1)
	assert.Empty(t, decode[[]httpin.Order](t,
		e.do(&e.admin, http.MethodGet, "/api/v1/orders?status=delivered", nil)))
	assert.Equal(t, http.StatusBadRequest,
		e.do(&e.admin, http.MethodGet, "/api/v1/orders?status=lost", nil).Code)
}

func TestOrderLifecycle(t *testing.T) {
	e := newAPIEnv(t)
	productID := e.addProduct("3.00", 5)
	o := e.placeOrder(productID, 2)
	base := "/api/v1/orders/" + o.ID

	rec := e.do(&e.admin, http.MethodPut, base+"/assign", httpin.AssignDeliveryRequest{AgentID: e.agent.id.Bytes()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assigned := decode[httpin.Order](t, rec)
	assert.Equal(t, "waiting_for_delivery", assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, e.agent.id.String(), *assigned.AssignedTo)

	rec = e.do(&e.store1, http.MethodPost, base+"/pickup", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(&e.agent, http.MethodPost, base+"/pickup", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "delivering", decode[httpin.Order](t, rec).Status)

	rec = e.do(&e.agent, http.MethodPut, base+"/status", httpin.UpdateStatusRequest{Status: "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "delivering cannot go back to pending")

	rec = e.do(&e.agent, http.MethodPut, base+"/status", httpin.UpdateStatusRequest{Status: "delivered"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	delivered := decode[httpin.Order](t, rec)
	assert.Equal(t, "delivered", delivered.Status)
	assert.Len(t, delivered.History, 4)

	rec = e.do(&e.store1, http.MethodGet, base+"/invoice", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	inv := decode[httpin.Invoice](t, rec)
	assert.Equal(t, o.ID, inv.OrderID)
	assert.Equal(t, "6.00", inv.Total)

	rec = e.do(&e.store1, http.MethodPatch, "/api/v1/invoices/"+inv.ID, httpin.UpdateInvoiceRequest{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	paid := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	rec = e.do(&e.admin, http.MethodPatch, "/api/v1/invoices/"+inv.ID, httpin.UpdateInvoiceRequest{PaidAt: &paid})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, decode[httpin.Invoice](t, rec).PaidAt)

	invoices := decode[[]httpin.Invoice](t, e.do(&e.admin, http.MethodGet, "/api/v1/invoices", nil))
	assert.Len(t, invoices, 1)
	assert.Equal(t, http.StatusForbidden, e.do(&e.store1, http.MethodGet, "/api/v1/invoices", nil).Code)

	rec = e.do(&e.store1, http.MethodPost, base+"/returns", httpin.RequestReturnRequest{
		Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: 3}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "only two were delivered")

	rec = e.do(&e.store1, http.MethodPost, base+"/returns", httpin.RequestReturnRequest{
		Items: []httpin.ItemQuantity{{ProductID: productID.Bytes(), Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ret := decode[httpin.Return](t, rec)
	assert.Equal(t, "requested", ret.Status)

	rec = e.do(&e.admin, http.MethodPut, "/api/v1/returns/"+ret.ID+"/status", httpin.UpdateStatusRequest{Status: "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "approved", decode[httpin.Return](t, rec).Status)

	list := decode[[]httpin.Return](t, e.do(&e.store1, http.MethodGet, base+"/returns", nil))
	assert.Len(t, list, 1)

	rec = e.do(&e.store1, http.MethodPost, base+"/finalize-return", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "returned", decode[httpin.Order](t, rec).Status)
}

func TestCancelAndDelete(t *testing.T) {
	e := newAPIEnv(t)
	o := e.placeOrder(e.addProduct("1.00", 5), 1)
	base := "/api/v1/orders/" + o.ID

	rec := e.do(&e.store2, http.MethodPost, base+"/cancel", httpin.CancelOrderRequest{Reason: "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(&e.store1, http.MethodPost, base+"/cancel", httpin.CancelOrderRequest{Reason: "changed my mind"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[httpin.Order](t, rec)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "changed my mind", cancelled.CancellationReason)

	rec = e.do(&e.store1, http.MethodPost, base+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "already cancelled")

	assert.Equal(t, http.StatusForbidden, e.do(&e.store1, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNoContent, e.do(&e.admin, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(&e.admin, http.MethodGet, base, nil).Code)
}

func TestNotifications(t *testing.T) {
	e := newAPIEnv(t)
	productID := e.addProduct("1.00", 5)
	e.placeOrder(productID, 1)
	e.placeOrder(productID, 1)

	inbox := decode[[]httpin.Notification](t, e.do(&e.admin, http.MethodGet, "/api/v1/notifications", nil))
	require.Len(t, inbox, 2)
	assert.Equal(t, "new_order", inbox[0].Type)

	rec := e.do(&e.store1, http.MethodPut, "/api/v1/notifications/"+inbox[0].ID+"/read", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(&e.admin, http.MethodPut, "/api/v1/notifications/"+inbox[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[httpin.Notification](t, rec).Read)

	unread := decode[[]httpin.Notification](t,
		e.do(&e.admin, http.MethodGet, "/api/v1/notifications?unreadOnly=true", nil))
	assert.Len(t, unread, 1)

	rec = e.do(&e.admin, http.MethodPut, "/api/v1/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[httpin.MarkAllReadResponse](t, rec).Updated)
}

func TestChat(t *testing.T) {
	e := newAPIEnv(t)

	rec := e.do(&e.store1, http.MethodPost, "/api/v1/messages", httpin.SendMessageRequest{
		ReceiverID: e.admin.id.Bytes(), Content: "hello",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "stores need a session with admins")

	rec = e.do(&e.store1, http.MethodPost, "/api/v1/chat/sessions", httpin.OpenChatSessionRequest{
		Participants: []openapi_types.UUID{e.store1.id.Bytes(), e.admin.id.Bytes()}, Type: "store-admin",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(&e.admin, http.MethodPost, "/api/v1/chat/sessions", httpin.OpenChatSessionRequest{
		Participants: []openapi_types.UUID{e.store1.id.Bytes(), e.admin.id.Bytes()}, Type: "store-admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decode[httpin.ChatSession](t, rec)
	assert.True(t, session.Active)

	rec = e.do(&e.store1, http.MethodPost, "/api/v1/messages", httpin.SendMessageRequest{
		ReceiverID: e.admin.id.Bytes(), Content: "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "hello", decode[httpin.Message](t, rec).Content)

	history := decode[[]httpin.Message](t,
		e.do(&e.admin, http.MethodGet, "/api/v1/messages/"+e.store1.id.String(), nil))
	require.Len(t, history, 1)
	assert.Equal(t, e.store1.id.String(), history[0].SenderID)

	sessions := decode[[]httpin.ChatSession](t,
		e.do(&e.store1, http.MethodGet, "/api/v1/chat/sessions?activeOnly=true", nil))
	assert.Len(t, sessions, 1)

	rec = e.do(&e.admin, http.MethodPost, "/api/v1/chat/sessions/"+session.ID+"/close", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[httpin.ChatSession](t, rec).Active)
}

func TestStreamEvents(t *testing.T) {
	e := newAPIEnv(t)
	srv := httptest.NewServer(e.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set(httpin.HeaderUserID, e.admin.id.String())
	req.Header.Set(httpin.HeaderUserRole, e.admin.role)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	pusher := realtime.NewRedisPusher(e.redis)
	require.NoError(t, pusher.Push(ctx, e.admin.id, ports.PushEvent{
		Type: "new_order",
		Data: map[string]any{"orderNumber": "ORD-2025-001"},
	}))

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	assert.Equal(t, "event: new_order", lines[0])
	assert.JSONEq(t, `{"orderNumber":"ORD-2025-001"}`, strings.TrimPrefix(lines[1], "data: "))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), http.StatusBadRequest},
		{errs.NewInsufficientStockError("p", 3, 1), http.StatusBadRequest},
		{errs.NewInsufficientReturnQuantityError("p", 3, 1), http.StatusBadRequest},
		{errs.NewUnauthenticatedError("no headers"), http.StatusUnauthorized},
		{errs.NewForbiddenError("no"), http.StatusForbidden},
		{errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{errs.NewConflictError("order"), http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, httpin.StatusFor(tt.err), tt.err.Error())
	}
}
