package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GateFacts is the state the chat gate reads. Order is the order referenced by
// the message, if any; Sessions are the sessions joining sender and receiver.
type GateFacts struct {
	Order    *order.Order
	Sessions []*chat.Session
}

type gateRule func(sender, receiver chat.Participant, facts GateFacts) error

type rolePair [2]kernel.Role

// ChatGate decides, per message, whether sender may write to receiver.
//
// Rules, in priority order:
//  1. a sender allowed to message anyone always passes
//  2. delivery agents may write to admins; stores need an active store-admin session
//  3. store and support may always talk
//  4. store and delivery need an order owned by the store and assigned to the agent
//  5. two delivery agents need an active delivery-delivery session
//  6. everything else is rejected
//
// Example:
//
//	gate := services.NewChatGate()
//	err := gate.Authorize(sender, receiver, services.GateFacts{Sessions: sessions})
//	if errors.Is(err, errs.ErrForbidden) {
//	    // refuse the message
//	}
type ChatGate struct {
	rules map[rolePair]gateRule
}

func NewChatGate() ChatGate {
	storeAdmin := requireSession(chat.StoreAdmin)
	return ChatGate{
		rules: map[rolePair]gateRule{
			{kernel.RoleDelivery, kernel.RoleAdmin}:    allow,
			{kernel.RoleStore, kernel.RoleAdmin}:       storeAdmin,
			{kernel.RoleStore, kernel.RoleSupport}:     allow,
			{kernel.RoleSupport, kernel.RoleStore}:     allow,
			{kernel.RoleStore, kernel.RoleDelivery}:    requireSharedOrder,
			{kernel.RoleDelivery, kernel.RoleStore}:    requireSharedOrder,
			{kernel.RoleDelivery, kernel.RoleDelivery}: requireSession(chat.DeliveryDelivery),
		},
	}
}

// Authorize returns nil when the message may be sent and a ForbiddenError otherwise.
func (g ChatGate) Authorize(sender, receiver chat.Participant, facts GateFacts) error {
	if sender.Role.Can(kernel.CapMessageAnyone) {
		return nil
	}

	rule, ok := g.rules[rolePair{sender.Role, receiver.Role}]
	if !ok {
		return errs.NewForbiddenError(fmt.Sprintf("%s cannot message %s", sender.Role, receiver.Role))
	}
	return rule(sender, receiver, facts)
}

func allow(chat.Participant, chat.Participant, GateFacts) error {
	return nil
}

func requireSession(kind chat.SessionType) gateRule {
	return func(sender, receiver chat.Participant, facts GateFacts) error {
		for _, s := range facts.Sessions {
			if s != nil && s.Unlocks(kind, sender.UserID, receiver.UserID) {
				return nil
			}
		}
		return errs.NewForbiddenError(fmt.Sprintf("an active %s session is required", kind))
	}
}

func requireSharedOrder(sender, receiver chat.Participant, facts GateFacts) error {
	store, agent := sender, receiver
	if sender.Role == kernel.RoleDelivery {
		store, agent = receiver, sender
	}

	o := facts.Order
	if o == nil {
		return errs.NewForbiddenError("store and delivery chat requires an order")
	}
	if !o.IsOwnedBy(store.UserID) || !o.IsAssignedTo(agent.UserID) {
		return errs.NewForbiddenError("order does not link this store and delivery agent")
	}
	return nil
}
