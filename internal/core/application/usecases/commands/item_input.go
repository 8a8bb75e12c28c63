package commands

import (
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ItemInput is one order line as supplied by a caller.
type ItemInput struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// buildItems turns inputs into order items with fresh identifiers.
// The first invalid line stops the build with order.ErrInvalidItem.
func buildItems(inputs []ItemInput) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	for _, in := range inputs {
		item, err := order.NewItem(kernel.NewUUID(), in.ProductID, in.ProductName, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
