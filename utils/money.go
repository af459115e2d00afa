package utils

import (
	"strconv"
	"strings"
)

// FormatTWD formats an integer amount (in TWD) as a string like "NT$ 38,000".
func FormatTWD(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + prefix
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-")
	}
	b.WriteString("NT$ ")

	if len(s) <= 3 {
		b.WriteString(s)
		return b.String()
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
