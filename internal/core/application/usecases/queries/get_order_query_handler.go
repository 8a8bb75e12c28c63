package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order snapshot from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	snapshot, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID                uuid.UUID
	OrderNumber       string
	CustomerID        int64
	CustomerEmail     string
	CustomerName      string
	DeliveringAddress string
	DeliveringCity    string
	DeliveringCountry string
	Status            string
	PaymentStatus     string
	DeliveringCost    decimal.Decimal
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PaidAt            *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	RefundedAt        *time.Time
	Version           int
}

type itemRow struct {
	ID          uuid.UUID
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

const selectOrder = `
	SELECT
		id,
		order_number,
		customer_id,
		customer_email,
		customer_name,
		delivering_address,
		delivering_city,
		delivering_country,
		status,
		payment_status,
		delivering_cost,
		notes,
		created_at,
		updated_at,
		paid_at,
		delivered_at,
		cancelled_at,
		refunded_at,
		version
	FROM orders
`

// Handle returns the order or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var rows []orderRow
	var err error
	var lookup any
	if query.Number() != "" {
		lookup = query.Number()
		err = db.Raw(selectOrder+" WHERE order_number = ?", query.Number()).Scan(&rows).Error
	} else {
		lookup = query.OrderID()
		err = db.Raw(selectOrder+" WHERE id = ?", query.OrderID().Bytes()).Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("order", lookup)
	}
	row := rows[0]

	var items []itemRow
	err = db.Raw(`
		SELECT
			id,
			product_id,
			product_name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, row.ID).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return toResponse(row, items)
}

func toResponse(row orderRow, items []itemRow) (*GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(row.PaymentStatus)
	if err != nil {
		return nil, err
	}
	deliveringCost, err := kernel.NewMoney(row.DeliveringCost)
	if err != nil {
		return nil, err
	}

	resp := &GetOrderQueryResponse{
		ID:              id,
		Number:          row.OrderNumber,
		CustomerID:      row.CustomerID,
		CustomerEmail:   row.CustomerEmail,
		CustomerName:    row.CustomerName,
		DeliveryAddress: row.DeliveringAddress,
		DeliveryCity:    row.DeliveringCity,
		DeliveryCountry: row.DeliveringCountry,
		Status:          status,
		PaymentStatus:   paymentStatus,
		Items:           make([]GetOrderItemResponse, 0, len(items)),
		Subtotal:        kernel.ZeroMoney(),
		DeliveringCost:  deliveringCost,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		PaidAt:          row.PaidAt,
		DeliveredAt:     row.DeliveredAt,
		CancelledAt:     row.CancelledAt,
		RefundedAt:      row.RefundedAt,
		Version:         row.Version,
	}

	for _, item := range items {
		line, lineErr := toItemResponse(item)
		if lineErr != nil {
			return nil, lineErr
		}
		resp.Items = append(resp.Items, line)
		resp.Subtotal = resp.Subtotal.Add(line.LineTotal)
	}
	resp.TotalAmount = resp.Subtotal.Add(resp.DeliveringCost)

	return resp, nil
}

func toItemResponse(row itemRow) (GetOrderItemResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderItemResponse{}, err
	}
	quantity, err := kernel.NewQuantity(row.Quantity)
	if err != nil {
		return GetOrderItemResponse{}, err
	}
	unitPrice, err := kernel.NewMoney(row.UnitPrice)
	if err != nil {
		return GetOrderItemResponse{}, err
	}

	return GetOrderItemResponse{
		ID:          id,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    quantity.Int(),
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(quantity),
	}, nil
}
