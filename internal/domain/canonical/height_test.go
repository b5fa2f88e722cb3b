package canonical

import (
	"testing"
)

func TestParseHeight_EquivalentSpellings(t *testing.T) {
	t.Parallel()

	inputs := []any{1.98, "1.98m", "198", "198cm", 198, "1.98 meters"}
	for _, raw := range inputs {
		h, ok := ParseHeight(raw)
		if !ok {
			t.Fatalf("ParseHeight(%v) returned no value", raw)
		}
		if h.Cm() != 198 {
			t.Fatalf("ParseHeight(%v) = %d, want 198", raw, h.Cm())
		}
	}
}

func TestParseHeight_FeetInches(t *testing.T) {
	t.Parallel()

	inputs := []string{`6'8"`, "6'8", "6-8", "6ft 8in", "6ft 8"}
	for _, raw := range inputs {
		h, ok := ParseHeight(raw)
		if !ok {
			t.Fatalf("ParseHeight(%q) returned no value", raw)
		}
		if h.Cm() != 203 {
			t.Fatalf("ParseHeight(%q) = %d, want 203", raw, h.Cm())
		}
	}

	h, ok := ParseHeight("6ft")
	if !ok || h.Cm() != 183 {
		t.Fatalf("ParseHeight(6ft) = %d ok=%v, want 183", h.Cm(), ok)
	}
}

func TestParseHeight_RangeRoundTrip(t *testing.T) {
	t.Parallel()

	for cm := HeightMinCm; cm <= HeightMaxCm; cm++ {
		h, ok := ParseHeight(cm)
		if !ok || h.Cm() != cm {
			t.Fatalf("ParseHeight(%d) = %d ok=%v, want round-trip", cm, h.Cm(), ok)
		}
	}
}

func TestParseHeight_Rejections(t *testing.T) {
	t.Parallel()

	cases := []any{
		nil,
		"",
		"unknown",
		149,        // below range
		251,        // above range
		1.49,       // meters below range
		2.51,       // meters above range
		"149cm",
		"2.51m",
		50,         // ambiguous band [3,100]
		"50",
		3.0,
		100,
		"8-2",      // feet out of 4..7
		"6'13",     // inches out of range
		-183,
	}
	for _, raw := range cases {
		if got, ok := ParseHeight(raw); ok {
			t.Fatalf("ParseHeight(%v) = %d, want no value", raw, got.Cm())
		}
	}
}

func TestNewHeight_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewHeight(210); err != nil {
		t.Fatalf("NewHeight(210) error: %v", err)
	}
	_, err := NewHeight(300)
	if err == nil {
		t.Fatal("NewHeight(300) expected error")
	}
	if !IsValidation(err) {
		t.Fatalf("NewHeight(300) error is not a validation error: %v", err)
	}
}
