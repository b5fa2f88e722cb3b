package canonical

import (
	"fmt"
	"regexp"
	"strconv"
)

var seasonNameRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// SeasonName is a season label in YYYY-YY form, e.g. "2024-25".
type SeasonName string

// NewSeasonName validates the YYYY-YY convention, including that the short
// year is the start year plus one.
func NewSeasonName(name string) (SeasonName, error) {
	m := seasonNameRegex.FindStringSubmatch(name)
	if m == nil {
		return "", validationf("season name %q does not match YYYY-YY", name)
	}
	start, _ := strconv.Atoi(m[1])
	short, _ := strconv.Atoi(m[2])
	if (start+1)%100 != short {
		return "", validationf("season name %q end year does not follow start year", name)
	}
	return SeasonName(name), nil
}

// SeasonNameFromStartYear synthesizes the YYYY-YY label for a season that
// starts in year.
func SeasonNameFromStartYear(year int) (SeasonName, error) {
	if year < 1900 || year > 2100 {
		return "", validationf("season start year %d out of range", year)
	}
	return SeasonName(fmt.Sprintf("%04d-%02d", year, (year+1)%100)), nil
}

// StartYear extracts the opening year of the season.
func (n SeasonName) StartYear() int {
	m := seasonNameRegex.FindStringSubmatch(string(n))
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[1])
	return year
}
