package version

import "strings"

// numeral is a non-negative integer of arbitrary size kept as its decimal digits without leading zeros.
// Advisory data carries release segments (e.g. build timestamps) that do not fit in 64 bits.
type numeral string

func newNumeral(digits string) numeral {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return numeral(trimmed)
}

func (n numeral) compare(other numeral) int {
	if d := sign(len(n) - len(other)); d != 0 {
		return d
	}
	return strings.Compare(string(n), string(other))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
