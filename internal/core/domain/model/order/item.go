package order

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxProductNameLength bounds the product name captured on an item.
const MaxProductNameLength = 255

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one purchased line of an order. It has no life of its own:
// it is created, replaced and deleted together with its order.
//
// The product name and unit price are captured when the line is created, so later
// catalogue changes do not alter placed orders.
type Item struct {
	id          kernel.UUID
	productID   int64
	productName string
	quantity    kernel.Quantity
	unitPrice   kernel.Money
	guard       guard.ConstructorGuard
}

// NewItem validates a line and builds it.
//
// Any rule failure is reported as ErrInvalidItem with the individual causes attached:
//   - id must be a valid UUID
//   - productID must be positive
//   - productName is required
//   - quantity must be at least 1
//   - unitPrice must not be negative
//
// Example:
//
//	item, err := order.NewItem(kernel.NewUUID(), 42, "Keyboard", 2, decimal.RequireFromString("10.00"))
//	if errors.Is(err, order.ErrInvalidItem) {
//	    // reject the request
//	}
func NewItem(id kernel.UUID, productID int64, productName string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, errs.NewRuleViolationErrorWithCause(
			ErrInvalidItem,
			fmt.Sprintf("product %d", productID),
			err,
		)
	}

	return item, nil
}

// RestoreItem rebuilds a persisted line. It applies the same rules as NewItem.
func RestoreItem(id kernel.UUID, productID int64, productName string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	return NewItem(id, productID, productName, quantity, unitPrice)
}

// Validate fails for an Item that bypassed the constructors.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the catalogue identifier of the product.
func (i *Item) ProductID() int64 {
	return i.productID
}

// ProductName returns the product name captured at order time.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the number of units.
func (i *Item) Quantity() kernel.Quantity {
	return i.quantity
}

// UnitPrice returns the price of one unit captured at order time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns quantity × unitPrice.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", productID))
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if len(productName) > MaxProductNameLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"productName",
			fmt.Errorf("length %d exceeds %d", len(productName), MaxProductNameLength),
		)
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		return err
	}
	i.quantity = q
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	price, err := kernel.NewMoney(unitPrice)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", err)
	}
	i.unitPrice = price
	return nil
}

// RecalculateSubtotal returns the sum of line totals. An empty list sums to 0.00.
func RecalculateSubtotal(items []*Item) kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}
