package order

// paymentCoupling forces a payment status when the order status changes.
// Keyed by the new status, then by the current payment status.
var paymentCoupling = map[Status]map[PaymentStatus]PaymentStatus{
	StatusCancelled: {
		PaymentPaid:     PaymentRefunded,
		PaymentPending:  PaymentPending,
		PaymentFailed:   PaymentFailed,
		PaymentRefunded: PaymentRefunded,
	},
	StatusRefunded: {
		PaymentPaid:     PaymentRefunded,
		PaymentPending:  PaymentRefunded,
		PaymentFailed:   PaymentRefunded,
		PaymentRefunded: PaymentRefunded,
	},
	StatusDelivered: {
		PaymentPaid:     PaymentPaid,
		PaymentPending:  PaymentPending,
		PaymentFailed:   PaymentFailed,
		PaymentRefunded: PaymentRefunded,
	},
}

// CoupledPaymentStatus returns the payment status an order ends up with when its status
// becomes newStatus while its payment status is current. Statuses without an entry
// leave the payment status unchanged.
func CoupledPaymentStatus(newStatus Status, current PaymentStatus) PaymentStatus {
	if next, ok := paymentCoupling[newStatus][current]; ok {
		return next
	}
	return current
}
