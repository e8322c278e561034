package delivery

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// riderDefaultMaxConcurrentOrders caps how many active assignments a rider
// carries when no explicit limit is given.
const riderDefaultMaxConcurrentOrders = 3

// Domain errors for rider operations.
var (
	// ErrRiderNameIsRequired is returned when creating a rider without a name.
	ErrRiderNameIsRequired = errs.NewValueIsRequiredError("rider name")
	// ErrRiderPhoneIsRequired is returned when creating a rider without a phone.
	ErrRiderPhoneIsRequired = errs.NewValueIsRequiredError("rider phone")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")
)

// RiderStats is the recounted workload of a rider, derived from assignment
// rows rather than trusted counters.
type RiderStats struct {
	// CurrentOrders is the number of the rider's non-terminal assignments.
	CurrentOrders int
	// TotalDeliveries counts assignments that reached delivered or returned.
	TotalDeliveries int
	// TodayDeliveries counts assignments delivered since the day started.
	TodayDeliveries int
}

// Rider is a delivery person. It tracks availability and a capacity limit,
// plus denormalized workload counters.
//
// The counters are eventually consistent: creation of an assignment
// increments the current load optimistically, and every terminal transition
// triggers a full recount from the assignment rows, which is authoritative.
type Rider struct {
	id    kernel.UUID
	name  string
	phone string

	isActive    bool
	isAvailable bool

	maxConcurrentOrders int
	currentOrders       int
	totalDeliveries     int
	todayDeliveries     int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewRider creates a new active, available rider with zeroed counters.
// A non-positive maxConcurrentOrders falls back to the default limit.
func NewRider(id kernel.UUID, name, phone string, maxConcurrentOrders int, now time.Time) (*Rider, error) {
	if maxConcurrentOrders <= 0 {
		maxConcurrentOrders = riderDefaultMaxConcurrentOrders
	}

	rider := &Rider{
		guard:               guard.NewConstructorGuard(),
		isActive:            true,
		isAvailable:         true,
		maxConcurrentOrders: maxConcurrentOrders,
		createdAt:           now.UTC(),
		updatedAt:           now.UTC(),
	}

	if err := errors.Join(
		rider.setID(id),
		rider.setName(name),
		rider.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// RestoreRider reconstructs a Rider from persistent storage.
func RestoreRider(
	id kernel.UUID,
	name, phone string,
	isActive, isAvailable bool,
	maxConcurrentOrders, currentOrders, totalDeliveries, todayDeliveries int,
	createdAt, updatedAt time.Time,
) (*Rider, error) {
	if maxConcurrentOrders <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"max concurrent orders",
			fmt.Errorf("%d is not greater than 0", maxConcurrentOrders))
	}

	rider := &Rider{
		guard:               guard.NewConstructorGuard(),
		isActive:            isActive,
		isAvailable:         isAvailable,
		maxConcurrentOrders: maxConcurrentOrders,
		currentOrders:       currentOrders,
		totalDeliveries:     totalDeliveries,
		todayDeliveries:     todayDeliveries,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}

	if err := errors.Join(
		rider.setID(id),
		rider.setName(name),
		rider.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// Validate checks if the Rider was created through a factory function.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares two riders by their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's name.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's phone number.
func (r *Rider) Phone() string {
	return r.phone
}

// IsActive reports whether the rider is part of the active roster.
func (r *Rider) IsActive() bool {
	return r.isActive
}

// IsAvailable reports whether the rider has marked themselves available.
func (r *Rider) IsAvailable() bool {
	return r.isAvailable
}

// MaxConcurrentOrders returns the rider's capacity limit.
func (r *Rider) MaxConcurrentOrders() int {
	return r.maxConcurrentOrders
}

// CurrentOrders returns the rider's active assignment count.
func (r *Rider) CurrentOrders() int {
	return r.currentOrders
}

// TotalDeliveries returns the rider's lifetime completed assignment count.
func (r *Rider) TotalDeliveries() int {
	return r.totalDeliveries
}

// TodayDeliveries returns the rider's deliveries since the day started.
func (r *Rider) TodayDeliveries() int {
	return r.todayDeliveries
}

// CreatedAt returns the creation timestamp (UTC).
func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (r *Rider) UpdatedAt() time.Time {
	return r.updatedAt
}

// CanAcceptOrders reports whether the rider can take another assignment:
// active, available, and below the capacity limit.
func (r *Rider) CanAcceptOrders() bool {
	return r.isActive && r.isAvailable && r.currentOrders < r.maxConcurrentOrders
}

// IncrementCurrentOrders bumps the active load when an assignment is created.
// The next recount from assignment rows corrects any drift.
func (r *Rider) IncrementCurrentOrders() {
	r.currentOrders++
	r.touch()
}

// ApplyStats replaces the denormalized counters with a recount derived from
// the assignment rows.
func (r *Rider) ApplyStats(stats RiderStats) {
	r.currentOrders = stats.CurrentOrders
	r.totalDeliveries = stats.TotalDeliveries
	r.todayDeliveries = stats.TodayDeliveries
	r.touch()
}

// ResetDayCounters zeroes the per-day delivery counter at day rollover.
func (r *Rider) ResetDayCounters() {
	r.todayDeliveries = 0
	r.touch()
}

// SetAvailability records whether the rider is taking new assignments.
func (r *Rider) SetAvailability(available bool) {
	r.isAvailable = available
	r.touch()
}

// Activate returns the rider to the active roster.
func (r *Rider) Activate() {
	r.isActive = true
	r.touch()
}

// Deactivate removes the rider from the active roster. In-flight assignments
// are unaffected.
func (r *Rider) Deactivate() {
	r.isActive = false
	r.touch()
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrRiderNameIsRequired
	}

	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return ErrRiderPhoneIsRequired
	}

	r.phone = phone
	return nil
}

func (r *Rider) touch() {
	r.updatedAt = time.Now().UTC()
}
