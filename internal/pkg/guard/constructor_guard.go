// Package guard provides ConstructorGuard, a marker that distinguishes values built by
// their constructor from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not constructed
// and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, entities and commands. The zero value
// reports "not constructed"; NewConstructorGuard reports "constructed".
//
// Example:
//
//	var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney")
//
//	type Money struct {
//	    amount decimal.Decimal
//	    guard  guard.ConstructorGuard
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
