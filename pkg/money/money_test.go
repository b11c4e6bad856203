package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{name: "no-op on two decimals", in: "10.25", want: "10.25"},
		{name: "rounds half up", in: "10.255", want: "10.26"},
		{name: "rounds down", in: "10.254", want: "10.25"},
		{name: "negative half away from zero", in: "-10.255", want: "-10.26"},
		{name: "zero", in: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestSumRoundsOnce(t *testing.T) {
	got := Sum(
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("50.004"),
	)
	assert.True(t, got.Equal(decimal.RequireFromString("300.00")), "got %s", got)
}

func TestApproxEqual(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "exact", a: "60.00", b: "60.00", want: true},
		{name: "within tolerance", a: "60.00", b: "60.01", want: true},
		{name: "within tolerance reversed", a: "59.99", b: "60.00", want: true},
		{name: "just outside", a: "60.00", b: "60.02", want: false},
		{name: "far apart", a: "60.00", b: "45.00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApproxEqual(decimal.RequireFromString(tt.a), decimal.RequireFromString(tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrZero(t *testing.T) {
	assert.True(t, OrZero(nil).IsZero())

	v := decimal.RequireFromString("12.30")
	assert.True(t, OrZero(&v).Equal(v))
}
