// Package kernel provides the shared domain primitives of the order service.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: a non-negative, exact decimal amount with two fractional digits
//   - Quantity: a positive item count
//   - DeliveryAddress: where an order is shipped to, with a default country
//   - Customer: an immutable snapshot of the buyer taken when the order is placed
//
// All value objects are immutable. Those that have no meaningful zero value embed a
// guard.ConstructorGuard and fail Validate unless built through their constructor.
package kernel
