package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCount converts abbreviated counts like "1.2K", "5.7m", "1,234" or "423" to integers.
// Used for metric flags so a user can type what the platform displays.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch strings.ToUpper(s[len(s)-1:]) {
	case "K":
		multiplier = 1000
		s = s[:len(s)-1]
	case "M":
		multiplier = 1000000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid count %q: not a number", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid count %q: must not be negative", s)
	}

	n := math.Round(value * multiplier)
	if n >= float64(math.MaxInt) {
		return 0, fmt.Errorf("invalid count %q: too large", s)
	}
	return int(n), nil
}
