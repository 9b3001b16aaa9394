// Package product models the catalog entry mutated by the inventory ledger.
//
// Catalog CRUD lives outside this service; here a Product only knows how to
// reserve and adjust stock while keeping its availability status consistent.
package product
