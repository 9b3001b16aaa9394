package kernel

// Capability names one permission checked by the authorization middleware and
// by domain services. Roles map to capabilities through capabilityTable only;
// code should never branch on a Role directly.
type Capability int

const (
	CapPlaceOrder Capability = iota + 1
	CapViewAllOrders
	CapDispatchOrders
	CapDeliverOrders
	CapCancelOrders
	CapRequestReturns
	CapModerateReturns
	CapViewInvoices
	CapManageInvoices
	CapManageChatSessions
	CapMessageAnyone
	CapReceiveNewOrderAlerts
)

var capabilityNames = map[Capability]string{
	CapPlaceOrder:            "place_order",
	CapViewAllOrders:         "view_all_orders",
	CapDispatchOrders:        "dispatch_orders",
	CapDeliverOrders:         "deliver_orders",
	CapCancelOrders:          "cancel_orders",
	CapRequestReturns:        "request_returns",
	CapModerateReturns:       "moderate_returns",
	CapViewInvoices:          "view_invoices",
	CapManageInvoices:        "manage_invoices",
	CapManageChatSessions:    "manage_chat_sessions",
	CapMessageAnyone:         "message_anyone",
	CapReceiveNewOrderAlerts: "receive_new_order_alerts",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

type capabilitySet map[Capability]struct{}

func capabilities(cs ...Capability) capabilitySet {
	set := make(capabilitySet, len(cs))
	for _, c := range cs {
		set[c] = struct{}{}
	}
	return set
}

// support mirrors the admin read paths but never mutates orders.
var capabilityTable = map[Role]capabilitySet{
	RoleAdmin: capabilities(
		CapViewAllOrders,
		CapDispatchOrders,
		CapCancelOrders,
		CapRequestReturns,
		CapModerateReturns,
		CapViewInvoices,
		CapManageInvoices,
		CapManageChatSessions,
		CapMessageAnyone,
		CapReceiveNewOrderAlerts,
	),
	RoleStore: capabilities(
		CapPlaceOrder,
		CapCancelOrders,
		CapRequestReturns,
	),
	RoleDelivery: capabilities(
		CapDeliverOrders,
		CapCancelOrders,
	),
	RoleSupport: capabilities(
		CapViewAllOrders,
		CapViewInvoices,
	),
}

// RolesWith lists the roles granted c, in Role order.
func RolesWith(c Capability) []Role {
	roles := make([]Role, 0, len(capabilityTable))
	for _, r := range []Role{RoleAdmin, RoleStore, RoleDelivery, RoleSupport} {
		if r.Can(c) {
			roles = append(roles, r)
		}
	}
	return roles
}
