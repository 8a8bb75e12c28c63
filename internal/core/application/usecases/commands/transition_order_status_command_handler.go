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

// TransitionOrderStatusCommandHandler applies status transitions. The payment status
// follows through the coupling table, and both changes are stored atomically.
type TransitionOrderStatusCommandHandler struct {
	mutation orderMutation
	logger   *zap.Logger
	metrics  *metrics.OrderMetrics
}

func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	logger *zap.Logger,
	orderMetrics *metrics.OrderMetrics,
) TransitionOrderStatusCommandHandler {
	logger = componentLogger(logger, "transition_order_status_handler")
	return TransitionOrderStatusCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, locker: locker, logger: logger},
		logger:   logger,
		metrics:  orderMetrics,
	}
}

func (h *TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, commandTransitionOrderStatus,
		trace.WithAttributes(
			attribute.String("order.id", cmd.OrderID().String()),
			attribute.String("order.status.to", cmd.Status().String()),
		),
	)
	defer func() {
		finishSpan(span, err)
		h.metrics.ObserveCommand(commandTransitionOrderStatus, start, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	var (
		from          order.Status
		paymentBefore order.PaymentStatus
		paymentAfter  order.PaymentStatus
	)
	err = h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		from = o.Status()
		paymentBefore = o.PaymentStatus()
		if err := o.TransitionStatus(cmd.Status(), cmd.Notes(), time.Now().UTC()); err != nil {
			return err
		}
		paymentAfter = o.PaymentStatus()
		return nil
	})
	if err != nil {
		logFailure(h.logger, "order status not changed", err,
			zap.String("order_id", cmd.OrderID().String()),
			zap.Stringer("to", cmd.Status()),
		)
		return err
	}

	h.metrics.ObserveTransition(metrics.KindStatus, from.String(), cmd.Status().String())
	fields := []zap.Field{
		zap.String("order_id", cmd.OrderID().String()),
		zap.Stringer("from", from),
		zap.Stringer("to", cmd.Status()),
	}
	if paymentAfter != paymentBefore {
		h.metrics.ObserveTransition(metrics.KindPayment, paymentBefore.String(), paymentAfter.String())
		fields = append(fields,
			zap.Stringer("payment_from", paymentBefore),
			zap.Stringer("payment_to", paymentAfter),
		)
	}
	h.logger.Info("order status changed", fields...)
	return nil
}
