package commands

import (
	"errors"

	"orders/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Command names used in spans, logs and metrics.
const (
	commandCreateOrder             = "create_order"
	commandReplaceOrderItems       = "replace_order_items"
	commandUpdateOrderFields       = "update_order_fields"
	commandTransitionOrderStatus   = "transition_order_status"
	commandTransitionPaymentStatus = "transition_payment_status"
)

var tracer = otel.Tracer("orders/commands")

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// componentLogger scopes logger to one handler; nil yields a no-op logger.
func componentLogger(logger *zap.Logger, component string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", component))
}

// logFailure logs caller mistakes at Debug and infrastructure failures at Error.
func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errs.IsRuleViolation(err) || errors.Is(err, errs.ErrObjectNotFound) {
		logger.Debug(msg, fields...)
		return
	}
	logger.Error(msg, fields...)
}
