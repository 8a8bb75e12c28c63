package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler lists open orders, oldest first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns an empty slice when no order is open.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			payment_status,
			subtotal,
			delivering_cost,
			created_at
		FROM orders
		WHERE status IN (?, ?)
		ORDER BY created_at, order_number
	`, order.StatusPending.String(), order.StatusProcessing.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	active := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id                       uuid.UUID
			number, status, payment  string
			subtotal, deliveringCost decimal.Decimal
			createdAt                time.Time
		)
		if err = rows.Scan(&id, &number, &status, &payment, &subtotal, &deliveringCost, &createdAt); err != nil {
			return nil, err
		}

		resp, mapErr := toActiveOrder(id, number, status, payment, subtotal, deliveringCost)
		if mapErr != nil {
			return nil, mapErr
		}
		resp.CreatedAt = createdAt
		active = append(active, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}

func toActiveOrder(
	id uuid.UUID,
	number, status, payment string,
	subtotal, deliveringCost decimal.Decimal,
) (GetActiveOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	orderStatus, err := order.ParseStatus(status)
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(payment)
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	total, err := kernel.NewMoney(subtotal.Add(deliveringCost))
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	return GetActiveOrdersQueryResponse{
		ID:            orderID,
		Number:        number,
		Status:        orderStatus,
		PaymentStatus: paymentStatus,
		TotalAmount:   total,
	}, nil
}
