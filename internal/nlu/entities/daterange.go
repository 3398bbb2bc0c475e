// internal/nlu/entities/daterange.go
package entities

import (
	"regexp"
	"strings"
	"time"
)

type relativePeriod struct {
	period       Period
	alternatives []string
	pattern      *regexp.Regexp
}

func newRelative(p Period, alternatives ...string) relativePeriod {
	return relativePeriod{period: p, alternatives: alternatives, pattern: phrase(alternatives...)}
}

// phrase wraps alternatives in letter-aware boundaries; \b does not see
// Devanagari combining marks.
func phrase(alternatives ...string) *regexp.Regexp {
	return mustCompile(`(?i)(?:^|[^\p{L}\p{M}])(?:` + strings.Join(alternatives, "|") + `)(?:[^\p{L}\p{M}]|$)`)
}

// relativePeriods is checked in order; the "last" forms precede the plain
// ones so that "last week" never settles as "week".
var relativePeriods = []relativePeriod{
	newRelative(PeriodLastWeek,
		`last\s+week`, `previous\s+week`, `past\s+week`, `pichhle\s+hafte`, `pichle\s+hafte`, `pichhla\s+hafta`,
		`पिछले\s+हफ्ते`, `पिछला\s+हफ्ता`, `पिछले\s+सप्ताह`, `गए\s+हफ्ते`, `बीते\s+हफ्ते`,
	),
	newRelative(PeriodLastMonth,
		`last\s+month`, `previous\s+month`, `past\s+month`, `pichhle\s+mahine`, `pichle\s+mahine`,
		`पिछले\s+महीने`, `पिछला\s+महीना`, `पिछले\s+माह`, `बीते\s+महीने`,
	),
	newRelative(PeriodYesterday, `yesterday`, `yday`, `kal`, `बीते\s+कल`, `कल`),
	newRelative(PeriodToday, `today'?s?`, `aaj`, `आज`),
	newRelative(PeriodWeek, `this\s+week`, `current\s+week`, `is\s+hafte`, `इस\s+हफ्ते`, `इस\s+सप्ताह`, `weekly`),
	newRelative(PeriodMonth, `this\s+month`, `current\s+month`, `is\s+mahine`, `इस\s+महीने`, `इस\s+माह`, `monthly`),
	newRelative(PeriodAll,
		`all\s+time`, `overall`, `lifetime`, `ever`, `till\s+date`, `all`, `sab`, `सब`, `सभी`, `पूरा`, `पूरे`,
	),
}

var (
	lastN = mustCompile(`(?i)(?:^|[^\p{L}\p{M}])(?:last|past|previous|पिछले|pichhle|pichle)\s+(\d+)\s+(\S+)`)
	nAgo  = mustCompile(`(?i)(\d+)\s+(\S+)\s+(?:ago|back|पहले|pehle)(?:[^\p{L}\p{M}]|$)`)

	structuredRange = []*regexp.Regexp{
		mustCompile(`(?i)(?:start(?:\s*date)?|from|शुरू|से)\s*[:=]\s*(` + dateExpr + `)[\s,;]*(?:end(?:\s*date)?|to|till|तक|अंत)\s*[:=]\s*(` + dateExpr + `)`),
		mustCompile(`(?i)\bstart\s+(` + dateExpr + `)[\s,;]*\bend\s+(` + dateExpr + `)`),
		mustCompile(`(?i)\bbetween\s+(` + dateExpr + `)\s+and\s+(` + dateExpr + `)`),
		mustCompile(`(` + dateExpr + `)\s+(?:और|(?i:aur))\s+(` + dateExpr + `)\s+(?:के\s+बीच|(?i:ke\s+beech))`),
		mustCompile(`(?:तारीख|(?i:date))\s*:?\s*(` + dateExpr + `)\s*(?:से|to|-|तक)\s*(` + dateExpr + `)`),
	}

	customRange = []*regexp.Regexp{
		mustCompile(`(?i)\bfrom\s+(` + dateExpr + `)\s*(?:to|till|until|upto|-)\s*(` + dateExpr + `)`),
		mustCompile(`(` + dateExpr + `)\s+से\s+(` + dateExpr + `)`),
		mustCompile(`(?i)(` + dateExpr + `)\s*(?:\s-\s|\sto\s|\still\s)\s*(` + dateExpr + `)`),
	}

	singleDate = mustCompile(`(?i)(?:\b(?:on|for|dated)\s+|तारीख\s*:?\s*)(` + dateExpr + `)`)
	anyDate    = mustCompile(`(?i)` + dateExpr)
)

// DateRangeExtractor resolves the reporting window of order and report
// queries. Now is injectable so relative dates can be tested.
type DateRangeExtractor struct {
	Now func() time.Time
}

func NewDateRangeExtractor(now func() time.Time) *DateRangeExtractor {
	if now == nil {
		now = time.Now
	}
	return &DateRangeExtractor{Now: now}
}

// Extract never returns nil; a message with no period defaults to today.
func (x *DateRangeExtractor) Extract(in Input) *ReportEntities {
	now := x.Now()
	texts := candidates(in)

	for _, text := range texts {
		if r, ok := x.explicitRange(text, structuredRange, now); ok {
			return &ReportEntities{Range: r}
		}
	}
	if r, ok := x.lineRange(in.Raw, now); ok {
		return &ReportEntities{Range: r}
	}
	for _, text := range texts {
		if p, ok := relative(text); ok {
			return &ReportEntities{Range: DateRange{Period: p}}
		}
	}
	for _, text := range texts {
		if r, ok := quantified(text); ok {
			return &ReportEntities{Range: r}
		}
	}
	for _, text := range texts {
		if r, ok := x.explicitRange(text, customRange, now); ok {
			return &ReportEntities{Range: r}
		}
		if m := singleDate.FindStringSubmatch(text); m != nil {
			return &ReportEntities{Range: x.custom(m[1], m[1], now)}
		}
	}
	return &ReportEntities{Range: DateRange{Period: PeriodToday}}
}

// candidates returns the raw text before the normalized text: separators
// such as " - " are rewritten during normalization.
func candidates(in Input) []string {
	var out []string
	for _, t := range []string{in.Raw, in.Normalized} {
		t = strings.TrimSpace(t)
		if t != "" && (len(out) == 0 || out[0] != t) {
			out = append(out, t)
		}
	}
	return out
}

func (x *DateRangeExtractor) explicitRange(text string, patterns []*regexp.Regexp, now time.Time) (DateRange, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return x.custom(m[1], m[2], now), true
		}
	}
	return DateRange{}, false
}

// lineRange covers messages that list the start and end dates on their
// own lines.
func (x *DateRangeExtractor) lineRange(raw string, now time.Time) (DateRange, bool) {
	if !strings.Contains(raw, "\n") {
		return DateRange{}, false
	}
	var found []string
	for _, line := range strings.Split(raw, "\n") {
		if d := anyDate.FindString(line); d != "" {
			found = append(found, d)
		}
	}
	if len(found) < 2 {
		return DateRange{}, false
	}
	return x.custom(found[0], found[1], now), true
}

func (x *DateRangeExtractor) custom(rawStart, rawEnd string, now time.Time) DateRange {
	r := DateRange{Period: PeriodCustom}
	start, err := ParseDate(rawStart, now)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	end, err := ParseDate(rawEnd, now)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if start.After(end) {
		start, end = end, start
		r.ReversedDates = true
	}
	r.Start, r.End = &start, &end
	return r
}

// relative ignores the "all" family when the text names its own dates:
// "all orders from A to B" is a custom range.
func relative(text string) (Period, bool) {
	for _, rp := range relativePeriods {
		if !rp.pattern.MatchString(text) {
			continue
		}
		if rp.period == PeriodAll && anyDate.MatchString(text) {
			continue
		}
		return rp.period, true
	}
	return "", false
}

func quantified(text string) (DateRange, bool) {
	for _, re := range []*regexp.Regexp{lastN, nAgo} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, ok := parseInt(m[1])
		if !ok || n <= 0 {
			continue
		}
		if p, ok := periodUnit(m[2]); ok {
			return DateRange{Period: p, Count: n}, true
		}
	}
	return DateRange{}, false
}

func periodUnit(word string) (Period, bool) {
	w := strings.ToLower(word)
	switch {
	case containsAny(w, "day", "din", "दिन"):
		return PeriodLastNDays, true
	case containsAny(w, "week", "hafte", "hafta", "हफ्त", "सप्ताह"):
		return PeriodLastNWeeks, true
	case containsAny(w, "month", "mahin", "महीन", "माह"):
		return PeriodLastNMonths, true
	}
	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
