package orders

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

func TestDeriveStatusPaymentTracking(t *testing.T) {
	t.Parallel()

	d := func(v string) decimal.Decimal {
		return decimal.RequireFromString(v)
	}

	cases := []struct {
		name     string
		current  enums.OrderStatus
		final    decimal.Decimal
		received decimal.Decimal
		want     enums.OrderStatus
	}{
		{"nothing received", enums.OrderStatusPriced, d("100.00"), d("0"), enums.OrderStatusAwaitingPayment},
		{"partial", enums.OrderStatusAwaitingPayment, d("100.00"), d("40.00"), enums.OrderStatusPaymentPartial},
		{"exact", enums.OrderStatusPaymentPartial, d("100.00"), d("100.00"), enums.OrderStatusPaymentDone},
		{"payment removed after done", enums.OrderStatusPaymentDone, d("100.00"), d("60.00"), enums.OrderStatusPaymentPartial},
		{"all payments removed", enums.OrderStatusPaymentDone, d("100.00"), d("0"), enums.OrderStatusAwaitingPayment},
		{"zero final stays put", enums.OrderStatusAwaitingPayment, d("0"), d("0"), enums.OrderStatusAwaitingPayment},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeriveStatus(tc.current, tc.final, tc.received); got != tc.want {
				t.Fatalf("DeriveStatus(%s, %s, %s) = %s, want %s", tc.current, tc.final, tc.received, got, tc.want)
			}
		})
	}
}

func TestDeriveStatusOutsideTracking(t *testing.T) {
	t.Parallel()

	for _, status := range []enums.OrderStatus{
		enums.OrderStatusCreated,
		enums.OrderStatusAwaitingHarvest,
		enums.OrderStatusHarvestDone,
		enums.OrderStatusFinalized,
		enums.OrderStatusCanceled,
	} {
		got := DeriveStatus(status, decimal.RequireFromString("50.00"), decimal.RequireFromString("50.00"))
		if got != status {
			t.Fatalf("expected %s to survive derivation, got %s", status, got)
		}
	}
}

func TestDeriveStatusIdempotent(t *testing.T) {
	t.Parallel()

	final := decimal.RequireFromString("250.00")
	received := decimal.RequireFromString("250.00")

	first := DeriveStatus(enums.OrderStatusPaymentPartial, final, received)
	second := DeriveStatus(first, final, received)
	if first != second {
		t.Fatalf("derivation not idempotent: %s then %s", first, second)
	}
}
