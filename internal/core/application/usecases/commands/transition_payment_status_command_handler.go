package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TransitionPaymentStatusCommandHandler applies payment transitions. The order
// status is never changed by it.
type TransitionPaymentStatusCommandHandler struct {
	mutation orderMutation
	logger   *zap.Logger
	metrics  *metrics.OrderMetrics
}

func NewTransitionPaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	logger *zap.Logger,
	orderMetrics *metrics.OrderMetrics,
) TransitionPaymentStatusCommandHandler {
	logger = componentLogger(logger, "transition_payment_status_handler")
	return TransitionPaymentStatusCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, locker: locker, logger: logger},
		logger:   logger,
		metrics:  orderMetrics,
	}
}

func (h *TransitionPaymentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionPaymentStatusCommand,
) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, commandTransitionPaymentStatus,
		trace.WithAttributes(
			attribute.String("order.id", cmd.OrderID().String()),
			attribute.String("order.payment_status.to", cmd.PaymentStatus().String()),
		),
	)
	defer func() {
		finishSpan(span, err)
		h.metrics.ObserveCommand(commandTransitionPaymentStatus, start, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	var from order.PaymentStatus
	err = h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		from = o.PaymentStatus()
		return o.TransitionPaymentStatus(cmd.PaymentStatus(), time.Now().UTC())
	})
	if err != nil {
		logFailure(h.logger, "payment status not changed", err,
			zap.String("order_id", cmd.OrderID().String()),
			zap.Stringer("to", cmd.PaymentStatus()),
		)
		return err
	}

	h.metrics.ObserveTransition(metrics.KindPayment, from.String(), cmd.PaymentStatus().String())
	h.logger.Info("payment status changed",
		zap.String("order_id", cmd.OrderID().String()),
		zap.Stringer("from", from),
		zap.Stringer("to", cmd.PaymentStatus()),
	)
	return nil
}
