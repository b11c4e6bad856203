package enums

import "fmt"

// PaymentMethod identifies how an order payment was received.
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPix,
	PaymentMethodTransfer,
	PaymentMethodCash,
	PaymentMethodCheck,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
