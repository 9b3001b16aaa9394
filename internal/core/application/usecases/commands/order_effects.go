package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Integration event types published for order lifecycle changes.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderAssigned      = "order.assigned"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
	EventOrderDeleted       = "order.deleted"
	EventReturnRequested    = "return.requested"
	EventReturnChanged      = "return.status_changed"
)

func orderPayload(o *order.Order) notification.Payload {
	return notification.Payload{
		"orderId":     o.ID().String(),
		"orderNumber": o.Number(),
		"status":      o.Status().String(),
	}
}

func orderEvent(kind string, o *order.Order, actorID kernel.UUID) ports.OrderEvent {
	return ports.OrderEvent{
		Type:        kind,
		OrderID:     o.ID().String(),
		OrderNumber: o.Number(),
		StoreID:     o.StoreID().String(),
		Status:      o.Status().String(),
		ActorID:     actorID.String(),
		OccurredAt:  o.UpdatedAt(),
	}
}

// orderParties returns the owning store and the assigned agent, if any.
func orderParties(o *order.Order) []kernel.UUID {
	parties := []kernel.UUID{o.StoreID()}
	if agent := o.AssignedTo(); agent != nil {
		parties = append(parties, *agent)
	}
	return parties
}

// announceStatusChange notifies the store, the assigned agent and every
// dispatcher, and queues the integration event and the optional store email.
func announceStatusChange(
	ctx context.Context,
	fanout *notifications.FanOut,
	b *notifications.Batch,
	o *order.Order,
	actorID kernel.UUID,
) error {
	payload := orderPayload(o)
	if err := fanout.Notify(b, notification.OrderStatusChanged, payload, orderParties(o)...); err != nil {
		return err
	}
	if err := fanout.NotifyCapable(ctx, b, kernel.CapDispatchOrders, notification.OrderStatusChanged, payload); err != nil {
		return err
	}

	fanout.Publish(b, orderEvent(EventOrderStatusChanged, o, actorID))
	if fanout.EmailOnStatusChange() {
		fanout.EmailUser(ctx, b, o.StoreID(), notifications.StatusChangedEmail(o))
	}
	return nil
}

// announceCancellation is the cancellation variant of announceStatusChange.
func announceCancellation(
	ctx context.Context,
	fanout *notifications.FanOut,
	b *notifications.Batch,
	o *order.Order,
	actorID kernel.UUID,
) error {
	payload := orderPayload(o)
	if reason := o.CancellationReason(); reason != "" {
		payload["reason"] = reason
	}
	if err := fanout.Notify(b, notification.OrderCancelled, payload, orderParties(o)...); err != nil {
		return err
	}
	if err := fanout.NotifyCapable(ctx, b, kernel.CapDispatchOrders, notification.OrderCancelled, payload); err != nil {
		return err
	}

	event := orderEvent(EventOrderCancelled, o, actorID)
	if reason := o.CancellationReason(); reason != "" {
		event.Attributes = map[string]string{"reason": reason}
	}
	fanout.Publish(b, event)
	return nil
}

// restock puts every line of a cancelled order back into inventory.
func restock(ctx context.Context, repo ports.ProductRepository, items []order.LineItem) error {
	for _, item := range items {
		if err := repo.Adjust(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
