package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToInt converts a decoded JSON scalar (number, numeric string or bytes) to int.
// Fractions are truncated toward zero; anything else yields 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case string:
		i, _ := ParseInt(v)
		return i
	case []byte:
		i, _ := ParseInt(string(v))
		return i
	default:
		return 0
	}
}

// ParseInt parses integer or decimal text ("7", " 7 ", "7.0", "7,5") and truncates it.
// ok is false when the text is not a finite number.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
