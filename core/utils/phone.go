package utils

import "strings"

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneSuffix returns the last n digits of a phone number after removing
// formatting characters. Shorter numbers are returned whole.
func PhoneSuffix(phone string, n int) string {
	d := DigitsOnly(phone)
	if n <= 0 || len(d) <= n {
		return d
	}
	return d[len(d)-n:]
}
