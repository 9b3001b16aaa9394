// Package returns models the return sub-ledger: partial reversals of a
// delivered order with their own status machine and a per-product quantity
// ceiling shared across all live returns of the order.
package returns
