package record

import (
	"strconv"
	"strings"
)

// CelsiusFromMillidegrees converts a raw millidegree reading (the unit of
// /sys/class/thermal) to degrees with one decimal. Non-numeric or
// non-positive readings yield the sentinel.
func CelsiusFromMillidegrees(raw string) string {
	return scaled(raw, 1000)
}

// MegahertzFromKilohertz converts a raw kHz reading to MHz with one decimal.
func MegahertzFromKilohertz(raw string) string {
	return scaled(raw, 1000)
}

// Decimal1 formats an already-converted reading with one decimal, with the
// same non-positive guard as the raw converters.
func Decimal1(v float64) string {
	if !(v > 0) {
		return Sentinel
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}

func scaled(raw string, divisor float64) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return Sentinel
	}

	return strconv.FormatFloat(v/divisor, 'f', 1, 64)
}
