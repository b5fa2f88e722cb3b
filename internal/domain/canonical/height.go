package canonical

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// HeightMinCm and HeightMaxCm bound the sane range for a professional player.
	HeightMinCm = 150
	HeightMaxCm = 250
)

// Height is a player height in whole centimeters, always inside [150,250].
type Height int

// NewHeight validates cm against the allowed range.
func NewHeight(cm int) (Height, error) {
	if cm < HeightMinCm || cm > HeightMaxCm {
		return 0, validationf("height %dcm outside [%d,%d]", cm, HeightMinCm, HeightMaxCm)
	}
	return Height(cm), nil
}

func (h Height) Cm() int { return int(h) }

func (h Height) Meters() float64 { return float64(h) / 100 }

var (
	feetInchesRegex = regexp.MustCompile(`^([4-7])\s*(?:'|-|ft\.?\s*)\s*(\d{1,2})?\s*(?:"|''|in\.?)?$`)
	heightUnitRegex = regexp.MustCompile(`(?i)\s*(centimeters|centimetres|meters|metres|cm|m)\.?\s*$`)
)

// ParseHeight accepts an int, float64, or string and returns the height in
// centimeters. Bare numbers are disambiguated by magnitude: below 3 they are
// meters, above 100 centimeters, anything in [3,100] is ambiguous and refused.
// Strings additionally understand feet-inches spellings (6'8, 6-8, 6ft 8in)
// and explicit unit suffixes.
func ParseHeight(raw any) (Height, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int:
		return heightFromNumber(float64(v))
	case int64:
		return heightFromNumber(float64(v))
	case float32:
		return heightFromNumber(float64(v))
	case float64:
		return heightFromNumber(v)
	case string:
		return heightFromString(v)
	default:
		return 0, false
	}
}

func heightFromNumber(value float64) (Height, bool) {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	var cm int
	switch {
	case value < 3:
		cm = int(math.Round(value * 100))
	case value > 100:
		cm = int(math.Round(value))
	default:
		// 3..100 could be feet, inches or nothing at all.
		return 0, false
	}

	h, err := NewHeight(cm)
	if err != nil {
		return 0, false
	}
	return h, true
}

func heightFromString(raw string) (Height, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}

	if m := feetInchesRegex.FindStringSubmatch(value); m != nil {
		feet, _ := strconv.Atoi(m[1])
		inches := 0
		if m[2] != "" {
			parsed, err := strconv.Atoi(m[2])
			if err != nil || parsed > 11 {
				return 0, false
			}
			inches = parsed
		}
		cm := int(math.Round(float64(feet*12+inches) * 2.54))
		h, err := NewHeight(cm)
		if err != nil {
			return 0, false
		}
		return h, true
	}

	value = heightUnitRegex.ReplaceAllString(value, "")
	value = strings.ReplaceAll(value, ",", ".")
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return heightFromNumber(number)
}
