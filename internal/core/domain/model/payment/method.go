package payment

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Method identifies how money moved for a ledger row.
type Method int

const (
	// MethodUnknown represents an invalid or undefined method.
	MethodUnknown Method = iota

	// Cash is money handed over in person.
	Cash

	// MobileMoney is a mobile wallet transfer confirmed manually.
	MobileMoney

	// PaystackAPI is a card or wallet charge via the Paystack gateway.
	PaystackAPI

	// Wix is a payment collected on the Wix storefront.
	Wix
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown: "unknown",
		Cash:          "cash",
		MobileMoney:   "mobile_money",
		PaystackAPI:   "paystack_api",
		Wix:           "wix",
	}
}

func getValidMethodStrings() map[Method]string {
	//nolint:exhaustive // MethodUnknown is intentionally excluded as it's invalid
	return map[Method]string{
		Cash:        "cash",
		MobileMoney: "mobile_money",
		PaystackAPI: "paystack_api",
		Wix:         "wix",
	}
}

// MethodFromString parses a payment method from its string form.
func MethodFromString(s string) (Method, error) {
	for method, str := range getValidMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the Method value is valid.
func (m Method) Validate() error {
	if _, ok := getValidMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the storage name of the method.
// It implements the fmt.Stringer interface.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
