package orders

import (
	"fmt"
	"strconv"
	"strings"
)

const codePrefix = "PED"

// CodePrefixForYear returns the prefix shared by every order created in the
// given calendar year, e.g. "PED-2026-".
func CodePrefixForYear(year int) string {
	return fmt.Sprintf("%s-%d-", codePrefix, year)
}

// NextCode produces the order code that follows highestExisting within the
// year. The numeric suffix restarts at 0001 when no order exists for the
// year yet. Suffixes are zero-padded to 4 digits so the lexicographic MAX
// the repository scans for is also the numeric maximum.
func NextCode(highestExisting string, year int) (string, error) {
	prefix := CodePrefixForYear(year)
	if highestExisting == "" {
		return prefix + "0001", nil
	}

	suffix := strings.TrimPrefix(highestExisting, prefix)
	if suffix == highestExisting {
		return "", fmt.Errorf("order code %q does not match prefix %q", highestExisting, prefix)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("order code %q has non-numeric suffix: %w", highestExisting, err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
