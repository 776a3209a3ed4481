package utils

import "strconv"

// ShortID returns the first 8 characters of an id, the human-facing booking
// code shown in notifications and emails.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatXAF renders an amount in Central African francs with thousands
// separators. XAF has no minor units.
func FormatXAF(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.Itoa(amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s + " XAF"
}
