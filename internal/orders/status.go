package orders

import (
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// DeriveStatus maps the order's money facts to its aggregate status. Outside
// the payment-tracking range the current status is returned untouched; inside
// it the status is a pure function of finalAmount and receivedAmount, so
// re-running the derivation with identical inputs always yields the same
// result.
func DeriveStatus(current enums.OrderStatus, finalAmount, receivedAmount decimal.Decimal) enums.OrderStatus {
	if !current.InPaymentTracking() {
		return current
	}

	switch {
	case finalAmount.IsPositive() && receivedAmount.GreaterThanOrEqual(finalAmount):
		return enums.OrderStatusPaymentDone
	case receivedAmount.IsPositive() && receivedAmount.LessThan(finalAmount):
		return enums.OrderStatusPaymentPartial
	case receivedAmount.IsZero():
		return enums.OrderStatusAwaitingPayment
	default:
		// receivedAmount > 0 with a zero finalAmount cannot be produced by
		// the ledger; the overpay guard rejects it before derivation.
		return current
	}
}
