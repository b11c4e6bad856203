package enums

import "fmt"

// SettlementItemStatus tracks the processing state of one transfer entry in a
// settlement batch as reported by the banking provider.
type SettlementItemStatus string

const (
	SettlementItemStatusPending   SettlementItemStatus = "pending"
	SettlementItemStatusProcessed SettlementItemStatus = "processed"
	SettlementItemStatusFailed    SettlementItemStatus = "failed"
)

var validSettlementItemStatuses = []SettlementItemStatus{
	SettlementItemStatusPending,
	SettlementItemStatusProcessed,
	SettlementItemStatusFailed,
}

// String implements fmt.Stringer.
func (s SettlementItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettlementItemStatus.
func (s SettlementItemStatus) IsValid() bool {
	for _, candidate := range validSettlementItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSettlementItemStatus converts raw input into a SettlementItemStatus.
func ParseSettlementItemStatus(value string) (SettlementItemStatus, error) {
	for _, candidate := range validSettlementItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid settlement item status %q", value)
}
