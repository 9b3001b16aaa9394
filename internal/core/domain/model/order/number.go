package order

import "fmt"

// CounterName is the per-year sequence backing order numbers.
func CounterName(year int) string {
	return fmt.Sprintf("order:%d", year)
}

// FormatNumber renders the human order number, e.g. ORD-2025-007.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("ORD-%d-%03d", year, seq)
}

// PaymentMethod is how the store settles the order. Only cash on delivery exists.
type PaymentMethod string

const CashOnDelivery PaymentMethod = "cash_on_delivery"
