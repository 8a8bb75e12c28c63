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

// UpdateOrderFieldsCommandHandler edits the delivery details and notes of an order.
type UpdateOrderFieldsCommandHandler struct {
	mutation orderMutation
	logger   *zap.Logger
	metrics  *metrics.OrderMetrics
}

func NewUpdateOrderFieldsCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	logger *zap.Logger,
	orderMetrics *metrics.OrderMetrics,
) UpdateOrderFieldsCommandHandler {
	logger = componentLogger(logger, "update_order_fields_handler")
	return UpdateOrderFieldsCommandHandler{
		mutation: orderMutation{uowFactory: uowFactory, locker: locker, logger: logger},
		logger:   logger,
		metrics:  orderMetrics,
	}
}

func (h *UpdateOrderFieldsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderFieldsCommand) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, commandUpdateOrderFields,
		trace.WithAttributes(attribute.String("order.id", cmd.OrderID().String())),
	)
	defer func() {
		finishSpan(span, err)
		h.metrics.ObserveCommand(commandUpdateOrderFields, start, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	patch := cmd.Patch()
	err = h.mutation.apply(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdateFields(patch, time.Now().UTC())
	})
	if err != nil {
		logFailure(h.logger, "order fields not updated", err, zap.String("order_id", cmd.OrderID().String()))
		return err
	}

	h.logger.Info("order fields updated",
		zap.String("order_id", cmd.OrderID().String()),
		zap.Strings("fields", fieldNames(patch)),
	)
	return nil
}

func fieldNames(patch order.Patch) []string {
	sorted := patch.Fields().Sorted()
	names := make([]string, 0, len(sorted))
	for _, f := range sorted {
		names = append(names, string(f))
	}
	return names
}
