package kernel

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
)

// ErrCustomerIsNotConstructed is returned when using a zero-value Customer.
var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("customer must be created via NewCustomer")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Customer is a snapshot of the buyer taken when the order is placed.
// It is not a live reference to a customer record; later profile changes do not
// reach existing orders.
type Customer struct { //nolint:recvcheck //using for validation
	id    int64
	email string
	name  string
	guard guard.ConstructorGuard
}

// NewCustomer validates and builds a customer snapshot.
//
// Rules:
//   - id must be positive
//   - email must be a syntactically valid address
//   - name is required (surrounding whitespace is trimmed)
func NewCustomer(id int64, email, name string) (Customer, error) {
	c := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setEmail(email),
		c.setName(name),
	); err != nil {
		return Customer{}, err
	}

	return c, nil
}

// Validate fails for a zero-value Customer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer identifier in the customer system.
func (c Customer) ID() int64 {
	return c.id
}

// Email returns the contact email captured with the order.
func (c Customer) Email() string {
	return c.email
}

// Name returns the customer name captured with the order.
func (c Customer) Name() string {
	return c.name
}

func (c *Customer) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customerId", fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	c.email = email
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if err := validate.Var(name, "max=255"); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerName", err)
	}
	c.name = name
	return nil
}
