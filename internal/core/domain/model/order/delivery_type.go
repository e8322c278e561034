package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// DeliveryType represents the delivery disposition of an order: the customer
// either picks it up or it is delivered to them. The disposition gates both
// the delivery fee and the status transitions that are available.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined disposition.
	DeliveryTypeUnknown DeliveryType = iota

	// Pickup orders are collected by the customer; they carry no delivery fee.
	Pickup

	// Delivery orders are delivered by a rider; they require a delivery
	// location (or a custom location) and, for regular channels, a phone.
	Delivery
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown: "Unknown",
		Pickup:              "Pickup",
		Delivery:            "Delivery",
	}
}

// DeliveryTypeFromString parses a delivery disposition from its string form.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	for dt, str := range getDeliveryTypeStrings() {
		if str == s && dt != DeliveryTypeUnknown {
			return dt, nil
		}
	}
	return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery type", fmt.Errorf("%q is not a valid delivery type", s))
}

// Validate checks if the DeliveryType value is valid.
func (dt DeliveryType) Validate() error {
	if dt != Pickup && dt != Delivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery type", fmt.Errorf("%d is not a valid delivery type", dt))
	}
	return nil
}

// String returns the human-readable name of the delivery type.
// It implements the fmt.Stringer interface.
func (dt DeliveryType) String() string {
	if s, ok := getDeliveryTypeStrings()[dt]; ok {
		return s
	}
	return "Unknown"
}
