package enums

import "fmt"

// CostPaymentStatus tracks whether a harvest cost record has been settled
// with the crew that performed the work.
type CostPaymentStatus string

const (
	CostPaymentStatusPending    CostPaymentStatus = "pending"
	CostPaymentStatusProcessing CostPaymentStatus = "processing"
	CostPaymentStatusPaid       CostPaymentStatus = "paid"
)

var validCostPaymentStatuses = []CostPaymentStatus{
	CostPaymentStatusPending,
	CostPaymentStatusProcessing,
	CostPaymentStatusPaid,
}

// String implements fmt.Stringer.
func (c CostPaymentStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CostPaymentStatus.
func (c CostPaymentStatus) IsValid() bool {
	for _, candidate := range validCostPaymentStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCostPaymentStatus converts raw input into a CostPaymentStatus.
func ParseCostPaymentStatus(value string) (CostPaymentStatus, error) {
	for _, candidate := range validCostPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cost payment status %q", value)
}
