// Package order provides the Order aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Order: identity, frozen line items, total, assignment, address snapshot
//     and the append-only status history
//   - Status: the fixed transition table
//   - access rules deciding who may read, move, cancel or return an order
//
// Key business rules:
//   - Orders start Pending; Delivered only permits Returned; Cancelled and
//     Returned are terminal
//   - delivery assignment is an admin override forcing WaitingForDelivery
//   - only the assigned agent may confirm pickup
//   - the total is computed once at placement and never recomputed
package order
