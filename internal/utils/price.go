package utils

import (
	"strconv"
	"strings"
)

// PriceRange is a parsed price filter. Max < 0 means open-ended ("2M+").
type PriceRange struct {
	Min float64
	Max float64
}

// parseAmount parses a single bound like "100k", "2M", "₦500", "750".
// The currency sign and whitespace are ignored; k and M multiply by
// 1e3 and 1e6 respectively.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₦", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToLower(s), "k"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToLower(s), "m"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return value * multiplier, true
}

// ParsePriceRange parses filter expressions like "100k-500k", "1M-5M"
// or "2M+" into inclusive bounds. Returns false when the expression is
// not understood.
func ParsePriceRange(expr string) (PriceRange, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return PriceRange{}, false
	}

	if strings.HasSuffix(expr, "+") {
		base, ok := parseAmount(strings.TrimSuffix(expr, "+"))
		if !ok {
			return PriceRange{}, false
		}
		return PriceRange{Min: base, Max: -1}, true
	}

	parts := strings.SplitN(expr, "-", 2)
	if len(parts) != 2 {
		return PriceRange{}, false
	}
	min, okMin := parseAmount(parts[0])
	max, okMax := parseAmount(parts[1])
	if !okMin || !okMax {
		return PriceRange{}, false
	}
	return PriceRange{Min: min, Max: max}, true
}
