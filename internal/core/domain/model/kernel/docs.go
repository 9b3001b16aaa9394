// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifiers for every aggregate
//   - Money: non-negative decimal amounts with explicit rounding
//   - Address: postal address snapshots
//   - Role, Capability and Actor: the closed role set and the capability table
//     consulted by authorization and by the chat gate
//
// Values are immutable and validated on construction; zero values fail Validate.
package kernel
