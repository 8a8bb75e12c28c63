// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items live in their own table and are removed with the order.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     int64           `gorm:"not null;index"`
	CustomerEmail  string          `gorm:"type:varchar(254);not null"`
	CustomerName   string          `gorm:"type:varchar(255);not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	PaymentStatus  string          `gorm:"type:varchar(20);not null;index"`
	Delivering     DeliveringDTO   `gorm:"embedded;embeddedPrefix:delivering_"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveringCost decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Notes          string          `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime:false"`
	PaidAt         *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
	Version        int            `gorm:"not null;default:0"`
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveringDTO is the embedded delivery address of an order.
type DeliveringDTO struct {
	Address string `gorm:"type:text;not null"`
	City    string `gorm:"type:varchar(100);not null"`
	Country string `gorm:"type:varchar(100);not null"`
}

// OrderItemDTO represents one order line. Position keeps insertion order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for idx, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     orderID,
			Position:    idx,
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Int(),
			UnitPrice:   item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		OrderNumber:   aggregate.Number(),
		CustomerID:    aggregate.Customer().ID(),
		CustomerEmail: aggregate.Customer().Email(),
		CustomerName:  aggregate.Customer().Name(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Delivering: DeliveringDTO{
			Address: aggregate.Address().Address(),
			City:    aggregate.Address().City(),
			Country: aggregate.Address().Country(),
		},
		Subtotal:       aggregate.Subtotal().Decimal(),
		DeliveringCost: aggregate.DeliveringCost().Decimal(),
		Notes:          aggregate.Notes(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		PaidAt:         aggregate.PaidAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
		CancelledAt:    aggregate.CancelledAt(),
		RefundedAt:     aggregate.RefundedAt(),
		Version:        aggregate.Version(),
		Items:          items,
	}
}

// updateColumns lists the order columns written by Update. Version is bumped separately.
func (dto OrderDTO) updateColumns() map[string]any {
	return map[string]any{
		"order_number":       dto.OrderNumber,
		"customer_id":        dto.CustomerID,
		"customer_email":     dto.CustomerEmail,
		"customer_name":      dto.CustomerName,
		"status":             dto.Status,
		"payment_status":     dto.PaymentStatus,
		"delivering_address": dto.Delivering.Address,
		"delivering_city":    dto.Delivering.City,
		"delivering_country": dto.Delivering.Country,
		"subtotal":           dto.Subtotal,
		"delivering_cost":    dto.DeliveringCost,
		"notes":              dto.Notes,
		"updated_at":         dto.UpdatedAt,
		"paid_at":            dto.PaidAt,
		"delivered_at":       dto.DeliveredAt,
		"cancelled_at":       dto.CancelledAt,
		"refunded_at":        dto.RefundedAt,
		"version":            dto.Version + 1,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items are expected in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := kernel.NewCustomer(dto.CustomerID, dto.CustomerEmail, dto.CustomerName)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewDeliveryAddress(dto.Delivering.Address, dto.Delivering.City, dto.Delivering.Country)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreItem(
			itemID,
			itemDTO.ProductID,
			itemDTO.ProductName,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:             id,
		Number:         dto.OrderNumber,
		Customer:       customer,
		Address:        address,
		Status:         status,
		PaymentStatus:  paymentStatus,
		Items:          items,
		DeliveringCost: dto.DeliveringCost,
		Notes:          dto.Notes,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		PaidAt:         dto.PaidAt,
		DeliveredAt:    dto.DeliveredAt,
		CancelledAt:    dto.CancelledAt,
		RefundedAt:     dto.RefundedAt,
		Version:        dto.Version,
	})
}
