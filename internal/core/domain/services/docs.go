// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - ChatGate: the per-message authorization decision, table-driven by role pair
//   - InvoiceIssuer: derives a tax-inclusive invoice from a delivered order and
//     the catalog view of its products
//
// Both are pure: callers load the facts and persist the results.
package services
