package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"orderflow/internal/pkg/errs"
)

const (
	orderNumberDayLayout = "020106"

	// orderNumberMaxSequence bounds the daily sequence to three digits.
	orderNumberMaxSequence = 999
)

var orderNumberPattern = regexp.MustCompile(`^\d{6}-\d{3}$`)

// ErrOrderNumberIsNotConstructed indicates an OrderNumber was not created
// through one of the constructor functions.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or OrderNumberFromString")

// OrderNumber is a value object for the human-readable order identifier in the
// format DDMMYY-NNN, where DDMMYY is the creation day and NNN is the 1-based
// sequence of the order within that day.
//
// The zero value of OrderNumber is invalid and must be constructed using
// NewOrderNumber or OrderNumberFromString.
//
// Example usage:
//
//	number, err := kernel.NewOrderNumber(time.Now().UTC(), 1)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(number.String()) // e.g., "120525-001"
type OrderNumber struct {
	day      time.Time
	sequence int
	guard    ConstructorGuard
}

// NewOrderNumber creates an order number for the given day and daily sequence.
// The sequence must be between 1 and 999; the day is truncated to a date in UTC.
func NewOrderNumber(day time.Time, sequence int) (OrderNumber, error) {
	if day.IsZero() {
		return OrderNumber{}, errs.NewValueIsRequiredError("day")
	}
	if sequence < 1 || sequence > orderNumberMaxSequence {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, orderNumberMaxSequence)
	}

	utcDay := day.UTC()
	return OrderNumber{
		day:      time.Date(utcDay.Year(), utcDay.Month(), utcDay.Day(), 0, 0, 0, 0, time.UTC),
		sequence: sequence,
		guard:    NewConstructorGuard(),
	}, nil
}

// OrderNumberFromString parses an order number from its DDMMYY-NNN form.
// Used when reconstructing orders from persistence or external payloads.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number", fmt.Errorf("%q does not match DDMMYY-NNN", s))
	}

	day, err := time.ParseInLocation(orderNumberDayLayout, s[:6], time.UTC)
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number", err)
	}

	sequence, err := strconv.Atoi(s[7:])
	if err != nil {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number", err)
	}

	return NewOrderNumber(day, sequence)
}

// String returns the DDMMYY-NNN representation of the order number.
func (n OrderNumber) String() string {
	return fmt.Sprintf("%s-%03d", n.day.Format(orderNumberDayLayout), n.sequence)
}

// Day returns the creation day the number was issued for, at UTC midnight.
func (n OrderNumber) Day() time.Time {
	return n.day
}

// Sequence returns the 1-based position of the order within its day.
func (n OrderNumber) Sequence() int {
	return n.sequence
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.day.Equal(other.day) && n.sequence == other.sequence
}

// Validate checks that the order number was properly constructed.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}
