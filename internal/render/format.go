package render

import (
	"strconv"
	"strings"
	"time"
)

// FormatCount abbreviates a count the way the platforms display it:
// 1500 -> "1.5K", 1000000 -> "1M", 999 -> "999". Negative values show as "0".
func FormatCount(n int) string {
	return formatCount(n, "K", "M")
}

// FormatCountLower is FormatCount with lowercase suffixes ("1.5k"), used by Instagram
func FormatCountLower(n int) string {
	return formatCount(n, "k", "m")
}

func formatCount(n int, thousand, million string) string {
	switch {
	case n < 0:
		return "0"
	case n >= 1000000:
		return oneDecimal(float64(n)/1000000) + million
	case n >= 1000:
		return oneDecimal(float64(n)/1000) + thousand
	default:
		return strconv.Itoa(n)
	}
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

// positive clamps negative counts to zero
func positive(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Dates are rendered from the post's own timestamp in UTC so the
// same input always produces the same document.

func twitterShortDate(t time.Time) string {
	return t.UTC().Format("Jan 2")
}

func twitterDetailDate(t time.Time) string {
	return t.UTC().Format("3:04 PM · Jan 2, 2006")
}

func linkedInDate(t time.Time) string {
	return t.UTC().Format("Jan 2")
}

func facebookDate(t time.Time) string {
	return t.UTC().Format("January 2 at 3:04 PM")
}

func instagramDate(t time.Time) string {
	return strings.ToUpper(t.UTC().Format("January 2, 2006"))
}

func threadsDate(t time.Time) string {
	return t.UTC().Format("01/02/06")
}
