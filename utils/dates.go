package utils

import (
	"strings"
	"time"
)

var hatchDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"2006-01",
	"2006",
}

// ParseHatchDate parses a hatch date. The "Unknown" sentinel and anything
// unparseable report ok=false.
func ParseHatchDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unknown") {
		return time.Time{}, false
	}
	for _, layout := range hatchDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
