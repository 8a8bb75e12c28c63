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

// ReplaceOrderItemsCommandHandler replaces the items of an editable order and
// recomputes its subtotal.
type ReplaceOrderItemsCommandHandler struct {
	mutation orderMutation
	logger   *zap.Logger
	metrics  *metrics.OrderMetrics
}

func NewReplaceOrderItemsCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	logger *zap.Logger,
	orderMetrics *metrics.OrderMetrics,
) ReplaceOrderItemsCommandHandler {
	logger = componentLogger(logger, "replace_order_items_handler")
	return ReplaceOrderItemsCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, locker: locker, logger: logger},
		logger:   logger,
		metrics:  orderMetrics,
	}
}

func (h *ReplaceOrderItemsCommandHandler) Handle(ctx context.Context, cmd ReplaceOrderItemsCommand) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, commandReplaceOrderItems,
		trace.WithAttributes(attribute.String("order.id", cmd.OrderID().String())),
	)
	defer func() {
		finishSpan(span, err)
		h.metrics.ObserveCommand(commandReplaceOrderItems, start, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	var subtotal string
	err = h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		if err := o.ReplaceItems(cmd.Items(), time.Now().UTC()); err != nil {
			return err
		}
		subtotal = o.Subtotal().String()
		return nil
	})
	if err != nil {
		logFailure(h.logger, "order items not replaced", err, zap.String("order_id", cmd.OrderID().String()))
		return err
	}

	h.logger.Info("order items replaced",
		zap.String("order_id", cmd.OrderID().String()),
		zap.Int("items", len(cmd.Items())),
		zap.String("subtotal", subtotal),
	)
	return nil
}
