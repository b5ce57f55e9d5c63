// Package fixedpoint converts between decimal strings and the scaled int64
// representation the matching core works in. All prices and quantities carry
// Scale decimal places; binary floating point is never used.
package fixedpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// Scale is the number of decimal places carried by every value.
const Scale = 8

const scalePow = int64(100_000_000)

const maxInt64 = int64(1<<63 - 1)

// Parse parses a positive decimal string into a scaled int64.
// Example: "12.34" => 1234000000.
func Parse(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("value must be positive")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
		if fracPart == "" {
			return 0, fmt.Errorf("invalid decimal format")
		}
	}
	if len(fracPart) > Scale {
		return 0, fmt.Errorf("too many decimal places: max %d", Scale)
	}

	for _, ch := range intPart {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid integer digits")
		}
	}
	for _, ch := range fracPart {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid fractional digits")
		}
	}

	intVal, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, err
	}
	if intVal > maxInt64/scalePow {
		return 0, fmt.Errorf("value overflow")
	}
	scaled := intVal * scalePow

	if len(fracPart) > 0 {
		paddedFrac := fracPart + strings.Repeat("0", Scale-len(fracPart))
		fracVal, err := strconv.ParseInt(paddedFrac, 10, 64)
		if err != nil {
			return 0, err
		}
		if scaled > maxInt64-fracVal {
			return 0, fmt.Errorf("value overflow")
		}
		scaled += fracVal
	}

	if scaled <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return scaled, nil
}

// Format formats a scaled int64 as a decimal string, trimming trailing zeros.
func Format(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	intPart := v / scalePow
	fracPart := v % scalePow
	if fracPart == 0 {
		return sign + strconv.FormatInt(intPart, 10)
	}
	frac := fmt.Sprintf("%0*d", Scale, fracPart)
	frac = strings.TrimRight(frac, "0")
	return sign + strconv.FormatInt(intPart, 10) + "." + frac
}

// MustParse parses a decimal string and panics on failure. Intended for
// constants in tests and the simulator.
func MustParse(value string) int64 {
	v, err := Parse(value)
	if err != nil {
		panic(fmt.Sprintf("fixedpoint: parse %q: %v", value, err))
	}
	return v
}
