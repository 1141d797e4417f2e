package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMessage describes a selection result. A zero power or a nil station
// both mean nothing was in reach.
func FormatMessage(power float64, station *Station, device Point) string {
	if power == 0 || station == nil {
		return fmt.Sprintf("No link station within reach for point %s,%s",
			formatNumber(device.X), formatNumber(device.Y))
	}
	return fmt.Sprintf("Best link station for point %s,%s is %s,%s with power %s",
		formatNumber(device.X), formatNumber(device.Y),
		formatNumber(station.X), formatNumber(station.Y),
		formatNumber(power),
	)
}

// formatNumber renders f as the shortest decimal that round-trips. Magnitudes
// below 1e-6 or from 1e21 upwards switch to exponent form ("1e+21", "1.5e-7").
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Covers negative zero.
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, ok := strings.Cut(s, "e")
		if !ok || len(exp) < 2 {
			return s
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
