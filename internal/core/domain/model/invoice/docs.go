// Package invoice models the tax-inclusive invoice issued once per delivered
// order, with its customer snapshot and year-scoped number.
package invoice
