// internal/nlu/entities/dates.go
package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"commerce-nlu/internal/nlu/lexicon"
)

const (
	minYear = 1900
	maxYear = 2100
)

// dateExpr matches one calendar date in any supported spelling. It is
// embedded into the range patterns in daterange.go.
var dateExpr = buildDateExpr()

func buildDateExpr() string {
	var latin, devanagari []string
	for _, name := range lexicon.MonthNames() {
		if isDevanagariOnly(name) {
			devanagari = append(devanagari, name)
		} else {
			latin = append(latin, name)
		}
	}
	months := `(?:(?i:(?:` + strings.Join(latin, "|") + `)\b\.?)|` + strings.Join(devanagari, "|") + `)`
	day := `\d{1,2}(?:st|nd|rd|th)?`
	year := `\d{4}`

	numeric := `\d{1,2}[/.\-]\d{1,2}[/.\-](?:\d{4}|\d{2})`
	monthFirst := months + `\s+` + day + `(?:,?\s*` + year + `)?`
	dayFirst := day + `\s+` + months + `(?:,?\s*` + year + `)?`
	return `(?:` + numeric + `|` + monthFirst + `|` + dayFirst + `)`
}

// ParseDate reads a single date. Numeric dates are day/month/year, the
// same order DateLayout writes; two-digit years land in 2000-2099. A
// textual date without a year takes the year of now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(lexicon.NFC(s))
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date: empty")
	}
	if s[0] >= '0' && s[0] <= '9' && strings.ContainsAny(s, "/.-") && !hasLetter(s) {
		return parseNumericDate(s)
	}
	return parseTextualDate(s, now)
}

func parseNumericDate(s string) (time.Time, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' || r == '.' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date: %s", s)
		}
		nums[i] = n
	}

	year := nums[2]
	if len(parts[2]) == 2 {
		year += 2000
	}
	return makeDate(year, nums[1], nums[0], s)
}

func parseTextualDate(s string, now time.Time) (time.Time, error) {
	words := strings.Fields(strings.NewReplacer(",", " ").Replace(s))
	month, day, year := 0, 0, now.Year()
	yearSet := false

	for _, w := range words {
		if m, ok := lexicon.MonthByName(w); ok && month == 0 {
			month = int(m)
			continue
		}
		digits := strings.TrimRight(strings.ToLower(w), "stndrh")
		n, err := strconv.Atoi(digits)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date: %s", s)
		}
		switch {
		case len(digits) == 4 && !yearSet:
			year, yearSet = n, true
		case day == 0:
			day = n
		default:
			return time.Time{}, fmt.Errorf("invalid date: %s", s)
		}
	}
	if month == 0 || day == 0 {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	return makeDate(year, month, day, s)
}

func makeDate(year, month, day int, src string) (time.Time, error) {
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
		return time.Time{}, fmt.Errorf("invalid date: %s", src)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
