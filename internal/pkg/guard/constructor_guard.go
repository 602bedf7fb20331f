// Package guard holds ConstructorGuard, the marker value objects and command
// structs embed to prove they were built by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes constructed values from zero values.
//
// Embed it as a private field and set it from the constructor only:
//
//	type MediaRef struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewMediaRef(v string) (MediaRef, error) {
//	    // validate v ...
//	    return MediaRef{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m MediaRef) Validate() error {
//	    return m.guard.Validate(ErrMediaRefIsNotConstructed)
//	}
//
// The zero value is "not constructed", so a struct literal or a missing field
// in a persistence mapping fails validation instead of leaking an empty value
// into the domain.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise,
// falling back to ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
