package canonical

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BirthDateMinYear is the oldest birth year the pipeline accepts.
const BirthDateMinYear = 1950

var (
	isoDateRegex     = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	numericDateRegex = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	monthFirstRegex  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)
	dayFirstRegex    = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\.?\s+(?:of\s+)?([A-Za-z]+)\.?,?\s+(\d{4})$`)
)

var englishMonths = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseBirthDate accepts a time.Time (range-checked passthrough) or a string.
// String formats are tried in strict order: ISO, European numeric, then free
// English text. Ambiguous numeric dates where both tokens could be a month
// default to day-first order, which is what both supported leagues publish.
func ParseBirthDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return checkBirthDate(v)
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return checkBirthDate(*v)
	case string:
		return birthDateFromString(v)
	default:
		return time.Time{}, false
	}
}

func birthDateFromString(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	if m := isoDateRegex.FindStringSubmatch(value); m != nil {
		return buildBirthDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := numericDateRegex.FindStringSubmatch(value); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		switch {
		case first > 12:
			return buildBirthDate(year, second, first)
		case second > 12:
			return buildBirthDate(year, first, second)
		default:
			// Either order is plausible; both providers write day first.
			return buildBirthDate(year, second, first)
		}
	}

	if m := monthFirstRegex.FindStringSubmatch(value); m != nil {
		month, ok := englishMonths[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		return buildBirthDate(atoi(m[3]), int(month), atoi(m[2]))
	}

	if m := dayFirstRegex.FindStringSubmatch(value); m != nil {
		month, ok := englishMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		return buildBirthDate(atoi(m[3]), int(month), atoi(m[1]))
	}

	return time.Time{}, false
}

func buildBirthDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); treat that as invalid.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return checkBirthDate(date)
}

func checkBirthDate(date time.Time) (time.Time, bool) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if date.Year() < BirthDateMinYear {
		return time.Time{}, false
	}
	now := time.Now().UTC()
	if date.Year() > now.Year() || date.After(now) {
		return time.Time{}, false
	}
	return date, true
}

func atoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
