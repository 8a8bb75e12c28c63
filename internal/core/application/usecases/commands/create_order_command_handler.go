package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CreateOrderCommandHandler places new orders in pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, logger, orderMetrics)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *zap.Logger
	metrics    *metrics.OrderMetrics
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A new order has no concurrent writers, so no locker is needed.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	logger *zap.Logger,
	orderMetrics *metrics.OrderMetrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     componentLogger(logger, "create_order_handler"),
		metrics:    orderMetrics,
	}
}

// Handle builds the aggregate in memory and persists it in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, commandCreateOrder)
	defer func() {
		finishSpan(span, err)
		h.metrics.ObserveCommand(commandCreateOrder, start, err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OrderNumber(),
		cmd.Customer(),
		cmd.Address(),
		cmd.Items(),
		cmd.DeliveringCost(),
		time.Now().UTC(),
	)
	if err != nil {
		logFailure(h.logger, "order rejected", err, zap.String("order_id", cmd.OrderID().String()))
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		logFailure(h.logger, "failed to store order", err, zap.String("order_id", aggregate.ID().String()))
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		logFailure(h.logger, "failed to commit order", err, zap.String("order_id", aggregate.ID().String()))
		return err
	}

	h.logger.Info("order created",
		zap.String("order_id", aggregate.ID().String()),
		zap.String("order_number", aggregate.Number()),
		zap.Int("items", len(aggregate.Items())),
		zap.String("total_amount", aggregate.TotalAmount().String()),
	)
	return nil
}
