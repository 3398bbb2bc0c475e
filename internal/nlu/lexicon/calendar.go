// internal/nlu/lexicon/calendar.go
package lexicon

import (
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January, "जनवरी": time.January, "janvari": time.January,
	"february": time.February, "feb": time.February, "फरवरी": time.February, "फ़रवरी": time.February, "farvari": time.February,
	"march": time.March, "mar": time.March, "मार्च": time.March,
	"april": time.April, "apr": time.April, "अप्रैल": time.April, "aprail": time.April,
	"may": time.May, "मई": time.May, "mai": time.May,
	"june": time.June, "jun": time.June, "जून": time.June,
	"july": time.July, "jul": time.July, "जुलाई": time.July, "julai": time.July,
	"august": time.August, "aug": time.August, "अगस्त": time.August, "agast": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"सितंबर": time.September, "सितम्बर": time.September, "sitambar": time.September,
	"october": time.October, "oct": time.October, "अक्टूबर": time.October, "अक्तूबर": time.October, "aktubar": time.October,
	"november": time.November, "nov": time.November, "नवंबर": time.November, "नवम्बर": time.November, "navambar": time.November,
	"december": time.December, "dec": time.December, "दिसंबर": time.December, "दिसम्बर": time.December, "disambar": time.December,
}

// MonthByName resolves English, abbreviated, romanized and Devanagari month
// names. A trailing period on abbreviations is ignored.
func MonthByName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")]
	return m, ok
}

// MonthNames lists every recognized month spelling, longest first so that
// regex alternations prefer full names over abbreviations.
func MonthNames() []string {
	names := make([]string, 0, len(monthNames))
	for name := range monthNames {
		names = append(names, name)
	}
	sortLongestFirst(names)
	return names
}
