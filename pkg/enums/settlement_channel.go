package enums

import "fmt"

// SettlementChannel identifies the banking rail a settlement batch went through.
type SettlementChannel string

const (
	SettlementChannelPix SettlementChannel = "pix"
	SettlementChannelTed SettlementChannel = "ted"
)

var validSettlementChannels = []SettlementChannel{
	SettlementChannelPix,
	SettlementChannelTed,
}

// String implements fmt.Stringer.
func (s SettlementChannel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettlementChannel.
func (s SettlementChannel) IsValid() bool {
	for _, candidate := range validSettlementChannels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSettlementChannel converts raw input into a SettlementChannel.
func ParseSettlementChannel(value string) (SettlementChannel, error) {
	for _, candidate := range validSettlementChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid settlement channel %q", value)
}
