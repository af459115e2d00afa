package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// CoercePrice turns a remote price into a non-negative integer.
// Numbers pass through (truncated); strings lose every non-digit character
// before parsing, so "$12,500" becomes 12500. Anything else is 0.
func CoercePrice(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return clampFloat(v)
	case float32:
		return clampFloat(float64(v))
	case int:
		return clampInt(int64(v))
	case int64:
		return clampInt(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return clampFloat(f)
		}
		return digitsOnly(v.String())
	case string:
		return digitsOnly(v)
	default:
		return 0
	}
}

func digitsOnly(s string) int64 {
	// full-width digits (１２５００) are folded to ASCII first
	narrow := width.Narrow.String(s)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, narrow)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func clampFloat(f float64) int64 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

func clampInt(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// CoerceNumber reads a remote numeric field (number or numeric string).
// Unparseable input yields 0.
func CoerceNumber(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(width.Narrow.String(v)), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// FormatNumber renders a number without a trailing ".0"
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
