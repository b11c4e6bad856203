package enums

import "fmt"

// Unit is a unit of measure an order line can be quantified and priced in.
// Kilogram is the primary unit; crate is the secondary unit.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitCrate    Unit = "crate"
)

var validUnits = []Unit{UnitKilogram, UnitCrate}

// String implements fmt.Stringer.
func (u Unit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Unit.
func (u Unit) IsValid() bool {
	for _, candidate := range validUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnit converts raw input into a Unit.
func ParseUnit(value string) (Unit, error) {
	for _, candidate := range validUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit %q", value)
}
