package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation
// error is supplied. It guarantees validation always fails with a meaningful
// message for objects that bypassed their constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a
// struct makes the zero value detectable: only constructors call
// NewConstructorGuard, so a zero-value struct fails Validate.
//
// Example usage:
//
//	type Rider struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewRider(name string) (Rider, error) {
//	    if name == "" {
//	        return Rider{}, errors.New("name is required")
//	    }
//	    return Rider{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Rider) Validate() error {
//	    return r.guard.Validate(ErrRiderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it from
// the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was built via its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
