package provider

import (
	"math"
	"strconv"
	"strings"
)

// Extraction helpers over Record. Feeds disagree on scalar encodings (numbers
// as strings, ints as float64 after JSON decoding), so adapters go through
// these instead of type-asserting inline.

// String returns the trimmed string at key, or "".
func String(raw Record, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// FirstString returns the first non-empty string among keys.
func FirstString(raw Record, keys ...string) string {
	for _, key := range keys {
		if value := String(raw, key); value != "" {
			return value
		}
	}
	return ""
}

// Int returns the integer at key, tolerating float64 and numeric strings.
func Int(raw Record, key string) (int, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(math.Round(v)), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IntOr returns the integer at key or fallback.
func IntOr(raw Record, key string, fallback int) int {
	if n, ok := Int(raw, key); ok {
		return n
	}
	return fallback
}

// Float returns the float at key, tolerating numeric strings.
func Float(raw Record, key string) (float64, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Bool returns the boolean at key, tolerating numeric and string encodings.
func Bool(raw Record, key string) (bool, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// IntPtr returns a pointer to the integer at key, or nil.
func IntPtr(raw Record, key string) *int {
	if n, ok := Int(raw, key); ok {
		return &n
	}
	return nil
}
