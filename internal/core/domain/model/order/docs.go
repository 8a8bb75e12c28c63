// Package order implements the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root (customer snapshot, delivery address, items, money, timestamps)
//   - Item: one purchased line owned exclusively by its order
//   - Status / PaymentStatus: the two transition graphs, held as static tables
//   - the coupling table that adjusts the payment status when the status changes
//   - the editability guard that freezes fields once fulfilment begins
//
// Key business rules:
//   - Status flows pending -> processing -> delivered -> refunded, with cancellation
//     possible from pending and processing; nothing leaves cancelled or refunded
//   - Payment flows pending -> paid -> refunded, and pending -> failed -> pending|paid
//   - An order is delivered only once it is paid
//   - Cancelling a paid order refunds it; refunding an order refunds its payment
//   - paidAt, deliveredAt, cancelledAt and refundedAt are written once and never overwritten
//   - Items change only while pending; the delivery address is frozen from processing on;
//     nothing changes once the order is delivered, cancelled or refunded
//   - Re-applying the current status or payment status is an invalid transition, not a no-op
//
// Every mutating method validates completely before writing, so a returned error
// always leaves the order exactly as it was. Rule failures are *errs.RuleViolationError
// values that unwrap to one of the sentinels declared in errors.go.
package order
