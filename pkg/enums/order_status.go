package enums

import "fmt"

// OrderStatus tracks the lifecycle of a sales order from creation to settlement.
type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "created"
	OrderStatusAwaitingHarvest OrderStatus = "awaiting_harvest"
	OrderStatusHarvestPartial  OrderStatus = "harvest_partial"
	OrderStatusHarvestDone     OrderStatus = "harvest_done"
	OrderStatusAwaitingPricing OrderStatus = "awaiting_pricing"
	OrderStatusPriced          OrderStatus = "priced"
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaymentPartial  OrderStatus = "payment_partial"
	OrderStatusPaymentDone     OrderStatus = "payment_done"
	OrderStatusFinalized       OrderStatus = "finalized"
	OrderStatusCanceled        OrderStatus = "canceled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusCreated,
	OrderStatusAwaitingHarvest,
	OrderStatusHarvestPartial,
	OrderStatusHarvestDone,
	OrderStatusAwaitingPricing,
	OrderStatusPriced,
	OrderStatusAwaitingPayment,
	OrderStatusPaymentPartial,
	OrderStatusPaymentDone,
	OrderStatusFinalized,
	OrderStatusCanceled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further mutation is allowed from this status.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusFinalized || o == OrderStatusCanceled
}

// InPaymentTracking reports whether the order sits in the range where the
// status is re-derived from received versus final amounts.
func (o OrderStatus) InPaymentTracking() bool {
	switch o {
	case OrderStatusPriced, OrderStatusAwaitingPayment, OrderStatusPaymentPartial, OrderStatusPaymentDone:
		return true
	default:
		return false
	}
}

// AllowsPaymentEntry reports whether new payments may still be recorded.
func (o OrderStatus) AllowsPaymentEntry() bool {
	switch o {
	case OrderStatusPriced, OrderStatusAwaitingPayment, OrderStatusPaymentPartial:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
