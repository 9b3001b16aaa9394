package http

import (
	"time"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request bodies.
type (
	Address struct {
		Street  string `json:"street"`
		City    string `json:"city,omitempty"`
		State   string `json:"state,omitempty"`
		ZipCode string `json:"zipCode,omitempty"`
	}

	ItemQuantity struct {
		ProductID openapi_types.UUID `json:"productId"`
		Quantity  int                `json:"quantity"`
	}

	PlaceOrderRequest struct {
		Items   []ItemQuantity `json:"items"`
		Address *Address       `json:"address,omitempty"`
	}

	AssignDeliveryRequest struct {
		AgentID openapi_types.UUID `json:"agentId"`
	}

	UpdateStatusRequest struct {
		Status string `json:"status"`
	}

	CancelOrderRequest struct {
		Reason string `json:"reason,omitempty"`
	}

	RequestReturnRequest struct {
		Items []ItemQuantity `json:"items"`
	}

	UpdateInvoiceRequest struct {
		Status *string    `json:"status,omitempty"`
		PaidAt *time.Time `json:"paidAt,omitempty"`
		SentAt *time.Time `json:"sentAt,omitempty"`
	}

	OpenChatSessionRequest struct {
		Participants []openapi_types.UUID `json:"participants"`
		Type         string               `json:"type"`
		OrderID      *openapi_types.UUID  `json:"orderId,omitempty"`
	}

	SendMessageRequest struct {
		ReceiverID openapi_types.UUID  `json:"receiverId"`
		Content    string              `json:"content"`
		OrderID    *openapi_types.UUID `json:"orderId,omitempty"`
	}
)

// Response bodies.
type (
	LineItem struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unitPrice"`
		Total     string `json:"total"`
	}

	HistoryEntry struct {
		Status    string    `json:"status"`
		ChangedBy string    `json:"changedBy"`
		ChangedAt time.Time `json:"changedAt"`
	}

	Order struct {
		ID                 string         `json:"id"`
		Number             string         `json:"number"`
		StoreID            string         `json:"storeId"`
		Items              []LineItem     `json:"items"`
		Total              string         `json:"total"`
		Status             string         `json:"status"`
		AssignedTo         *string        `json:"assignedTo,omitempty"`
		History            []HistoryEntry `json:"history"`
		Address            *Address       `json:"address,omitempty"`
		PaymentMethod      string         `json:"paymentMethod"`
		CancellationReason string         `json:"cancellationReason,omitempty"`
		CreatedAt          time.Time      `json:"createdAt"`
		UpdatedAt          time.Time      `json:"updatedAt"`
	}

	ReturnItem struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}

	Return struct {
		ID          string       `json:"id"`
		OrderID     string       `json:"orderId"`
		StoreID     string       `json:"storeId"`
		RequestedBy string       `json:"requestedBy"`
		Items       []ReturnItem `json:"items"`
		Status      string       `json:"status"`
		CreatedAt   time.Time    `json:"createdAt"`
		UpdatedAt   time.Time    `json:"updatedAt"`
	}

	InvoiceLine struct {
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unitPrice"`
		TaxRate   string `json:"taxRate"`
		Tax       string `json:"tax"`
		Total     string `json:"total"`
	}

	Customer struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Email   string   `json:"email,omitempty"`
		Address *Address `json:"address,omitempty"`
	}

	Invoice struct {
		ID        string        `json:"id"`
		Number    string        `json:"number"`
		OrderID   string        `json:"orderId"`
		Lines     []InvoiceLine `json:"lines"`
		Subtotal  string        `json:"subtotal"`
		TotalTax  string        `json:"totalTax"`
		Total     string        `json:"total"`
		Customer  Customer      `json:"customer"`
		Status    string        `json:"status"`
		IssuedAt  time.Time     `json:"issuedAt"`
		PaidAt    *time.Time    `json:"paidAt,omitempty"`
		SentAt    *time.Time    `json:"sentAt,omitempty"`
		UpdatedAt time.Time     `json:"updatedAt"`
	}

	Notification struct {
		ID        string         `json:"id"`
		Type      string         `json:"type"`
		Data      map[string]any `json:"data"`
		Read      bool           `json:"read"`
		CreatedAt time.Time      `json:"createdAt"`
	}

	MarkAllReadResponse struct {
		Updated int `json:"updated"`
	}

	ChatSession struct {
		ID           string     `json:"id"`
		Participants []string   `json:"participants"`
		OpenedBy     string     `json:"openedBy"`
		Type         string     `json:"type"`
		OrderID      *string    `json:"orderId,omitempty"`
		Active       bool       `json:"active"`
		ClosedAt     *time.Time `json:"closedAt,omitempty"`
		CreatedAt    time.Time  `json:"createdAt"`
	}

	Message struct {
		ID         string    `json:"id"`
		SenderID   string    `json:"senderId"`
		ReceiverID string    `json:"receiverId"`
		Content    string    `json:"content"`
		OrderID    *string   `json:"orderId,omitempty"`
		Timestamp  time.Time `json:"timestamp"`
	}
)

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func addressFromDomain(a kernel.Address) *Address {
	if a.IsEmpty() {
		return nil
	}
	return &Address{Street: a.Street(), City: a.City(), State: a.State(), ZipCode: a.ZipCode()}
}

func (a *Address) toDomain() (*kernel.Address, error) {
	if a == nil {
		return nil, nil
	}
	address, err := kernel.NewAddress(a.Street, a.City, a.State, a.ZipCode)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func orderFromDomain(o *order.Order) Order {
	items := make([]LineItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Total:     item.Total().String(),
		})
	}
	entries := o.History().Entries()
	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntry{
			Status:    e.Status.String(),
			ChangedBy: e.ChangedBy.String(),
			ChangedAt: e.ChangedAt,
		})
	}
	return Order{
		ID:                 o.ID().String(),
		Number:             o.Number(),
		StoreID:            o.StoreID().String(),
		Items:              items,
		Total:              o.Total().String(),
		Status:             o.Status().String(),
		AssignedTo:         optionalID(o.AssignedTo()),
		History:            history,
		Address:            addressFromDomain(o.Address()),
		PaymentMethod:      string(o.PaymentMethod()),
		CancellationReason: o.CancellationReason(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func returnFromDomain(r *returns.Return) Return {
	items := make([]ReturnItem, 0, len(r.Items()))
	for _, item := range r.Items() {
		items = append(items, ReturnItem{ProductID: item.ProductID.String(), Quantity: item.Quantity})
	}
	return Return{
		ID:          r.ID().String(),
		OrderID:     r.OrderID().String(),
		StoreID:     r.StoreID().String(),
		RequestedBy: r.RequestedBy().String(),
		Items:       items,
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func invoiceFromDomain(i *invoice.Invoice) Invoice {
	lines := make([]InvoiceLine, 0, len(i.Lines()))
	for _, l := range i.Lines() {
		lines = append(lines, InvoiceLine{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			TaxRate:   l.TaxRate.String(),
			Tax:       l.Tax.String(),
			Total:     l.Total.String(),
		})
	}
	customer := i.Customer()
	return Invoice{
		ID:       i.ID().String(),
		Number:   i.Number(),
		OrderID:  i.OrderID().String(),
		Lines:    lines,
		Subtotal: i.Subtotal().String(),
		TotalTax: i.TotalTax().String(),
		Total:    i.Total().String(),
		Customer: Customer{
			ID:      customer.ID.String(),
			Name:    customer.Name,
			Email:   customer.Email,
			Address: addressFromDomain(customer.Address),
		},
		Status:    i.Status().String(),
		IssuedAt:  i.IssuedAt(),
		PaidAt:    i.PaidAt(),
		SentAt:    i.SentAt(),
		UpdatedAt: i.UpdatedAt(),
	}
}

func notificationFromDomain(n *notification.Notification) Notification {
	return Notification{
		ID:        n.ID().String(),
		Type:      n.Type().String(),
		Data:      n.Payload(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

func sessionFromDomain(s *chat.Session) ChatSession {
	participants := s.Participants()
	return ChatSession{
		ID:           s.ID().String(),
		Participants: []string{participants[0].String(), participants[1].String()},
		OpenedBy:     s.OpenedBy().String(),
		Type:         s.Type().String(),
		OrderID:      optionalID(s.OrderID()),
		Active:       s.IsActive(),
		ClosedAt:     s.ClosedAt(),
		CreatedAt:    s.CreatedAt(),
	}
}

func messageFromDomain(m *chat.Message) Message {
	return Message{
		ID:         m.ID().String(),
		SenderID:   m.SenderID().String(),
		ReceiverID: m.ReceiverID().String(),
		Content:    m.Content(),
		OrderID:    optionalID(m.OrderID()),
		Timestamp:  m.SentAt(),
	}
}

// mapSlice converts a list of domain values into response bodies.
func mapSlice[T any, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
