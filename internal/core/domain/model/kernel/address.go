package kernel

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// DefaultCountry is used when an order is placed without a delivery country.
const DefaultCountry = "Russia"

// ErrDeliveryAddressIsNotConstructed is returned when using a zero-value DeliveryAddress.
var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress")

// DeliveryAddress is the destination an order ships to.
// It is an immutable value object; changing one part yields a new address via
// the With* methods so the rest of the address is validated again.
//
// Example:
//
//	addr, err := kernel.NewDeliveryAddress("Tverskaya 1", "Moscow", "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(addr.Country()) // Russia
type DeliveryAddress struct { //nolint:recvcheck //using for validation
	address string
	city    string
	country string
	guard   guard.ConstructorGuard
}

// NewDeliveryAddress validates and builds a delivery address.
//
// Rules:
//   - address and city are required (surrounding whitespace is trimmed)
//   - an empty country falls back to DefaultCountry
func NewDeliveryAddress(address, city, country string) (DeliveryAddress, error) {
	addr := DeliveryAddress{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setAddress(address),
		addr.setCity(city),
		addr.setCountry(country),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return addr, nil
}

// Validate fails for a zero-value DeliveryAddress.
func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

// Address returns the street line.
func (a DeliveryAddress) Address() string {
	return a.address
}

// City returns the destination city.
func (a DeliveryAddress) City() string {
	return a.city
}

// Country returns the destination country.
func (a DeliveryAddress) Country() string {
	return a.country
}

// WithAddress returns a copy with a different street line.
func (a DeliveryAddress) WithAddress(address string) (DeliveryAddress, error) {
	return NewDeliveryAddress(address, a.city, a.country)
}

// WithCity returns a copy with a different city.
func (a DeliveryAddress) WithCity(city string) (DeliveryAddress, error) {
	return NewDeliveryAddress(a.address, city, a.country)
}

// WithCountry returns a copy with a different country. An empty country resets to DefaultCountry.
func (a DeliveryAddress) WithCountry(country string) (DeliveryAddress, error) {
	return NewDeliveryAddress(a.address, a.city, country)
}

// IsEqual compares all parts of two addresses.
func (a DeliveryAddress) IsEqual(other DeliveryAddress) bool {
	return a.address == other.address && a.city == other.city && a.country == other.country
}

func (a *DeliveryAddress) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	a.address = address
	return nil
}

func (a *DeliveryAddress) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *DeliveryAddress) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		country = DefaultCountry
	}
	a.country = country
	return nil
}
