package delivery

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for location operations.
var (
	// ErrLocationNameIsRequired is returned when creating a location without a name.
	ErrLocationNameIsRequired = errs.NewValueIsRequiredError("location name")
	// ErrLocationIsNotConstructed is returned when using an improperly initialized Location.
	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation or RestoreLocation")
)

// Location is a named delivery zone in the catalog with its current fee.
// Orders reference locations by ID; historical pricing on orders is carried
// by snapshots, so a location's fee can change freely without rewriting
// past orders.
type Location struct {
	id       kernel.UUID
	name     string
	fee      decimal.Decimal
	isActive bool

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewLocation creates a new active delivery location.
func NewLocation(id kernel.UUID, name string, fee decimal.Decimal, now time.Time) (*Location, error) {
	location := &Location{
		guard:     guard.NewConstructorGuard(),
		isActive:  true,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}

	if err := errors.Join(
		location.setID(id),
		location.setName(name),
		location.setFee(fee),
	); err != nil {
		return nil, err
	}

	return location, nil
}

// RestoreLocation reconstructs a Location from persistent storage.
func RestoreLocation(
	id kernel.UUID,
	name string,
	fee decimal.Decimal,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Location, error) {
	location := &Location{
		guard:     guard.NewConstructorGuard(),
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}

	if err := errors.Join(
		location.setID(id),
		location.setName(name),
		location.setFee(fee),
	); err != nil {
		return nil, err
	}

	return location, nil
}

// Validate checks if the Location was created through a factory function.
func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// IsEqual compares two locations by their unique identifiers.
func (l *Location) IsEqual(other *Location) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the location's unique identifier.
func (l *Location) ID() kernel.UUID {
	return l.id
}

// Name returns the location name.
func (l *Location) Name() string {
	return l.name
}

// Fee returns the current delivery fee for the location.
func (l *Location) Fee() decimal.Decimal {
	return l.fee
}

// IsActive reports whether the location accepts new orders.
func (l *Location) IsActive() bool {
	return l.isActive
}

// CreatedAt returns the creation timestamp (UTC).
func (l *Location) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (l *Location) UpdatedAt() time.Time {
	return l.updatedAt
}

// Rename changes the location name.
func (l *Location) Rename(name string) error {
	if err := l.setName(name); err != nil {
		return err
	}
	l.touch()
	return nil
}

// ChangeFee updates the current delivery fee. Existing orders keep their
// captured fees; only future fee resolution sees the new value.
func (l *Location) ChangeFee(fee decimal.Decimal) error {
	if err := l.setFee(fee); err != nil {
		return err
	}
	l.touch()
	return nil
}

// Activate makes the location available for new orders.
func (l *Location) Activate() {
	l.isActive = true
	l.touch()
}

// Deactivate hides the location from new orders without breaking the
// references existing orders hold.
func (l *Location) Deactivate() {
	l.isActive = false
	l.touch()
}

// Snapshot captures the location's current state for binding to an order.
func (l *Location) Snapshot() (order.LocationSnapshot, error) {
	return order.NewLocationSnapshot(l.id, l.name, l.fee, l.isActive)
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	if name == "" {
		return ErrLocationNameIsRequired
	}

	l.name = name
	return nil
}

func (l *Location) setFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"location fee", fmt.Errorf("%s is negative", fee))
	}

	l.fee = fee.Round(2)
	return nil
}

func (l *Location) touch() {
	l.updatedAt = time.Now().UTC()
}
