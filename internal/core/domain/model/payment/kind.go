package payment

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Kind separates money received from money returned.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindPayment is money received toward an order.
	KindPayment

	// KindRefund is money returned to the customer.
	KindRefund
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "unknown",
		KindPayment: "payment",
		KindRefund:  "refund",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindPayment: "payment",
		KindRefund:  "refund",
	}
}

// KindFromString parses a transaction kind from its string form.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transaction kind", fmt.Errorf("%q is not a valid transaction kind", s))
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"transaction kind", fmt.Errorf("%d is not a valid transaction kind", k))
	}
	return nil
}

// String returns the storage name of the kind.
// It implements the fmt.Stringer interface.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
