// internal/nlu/fuzzy/matcher.go
package fuzzy

import (
	"strings"
	"unicode/utf8"

	"commerce-nlu/internal/nlu/lexicon"
)

// Thresholds drives candidate acceptance and the confidence floor. Values
// are empirical; callers may override any of them.
type Thresholds struct {
	ShortMaxLen    int // names up to this many runes are "short"
	MediumMaxLen   int // names up to this many runes are "medium"
	ShortDistance  int
	MediumDistance int
	LongDistance   int
	ShortRatio     float64
	MediumRatio    float64
	LongRatio      float64
	ShortFloor     float64
	MediumFloor    float64
	LongFloor      float64

	ExactCodeBonus  float64
	NearCodeBonus   float64
	PrefixBonus     float64
	PrefixRuneCount int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ShortMaxLen:     3,
		MediumMaxLen:    5,
		ShortDistance:   1,
		MediumDistance:  2,
		LongDistance:    3,
		ShortRatio:      0.9,
		MediumRatio:     0.8,
		LongRatio:       0.7,
		ShortFloor:      0.7,
		MediumFloor:     0.65,
		LongFloor:       0.6,
		ExactCodeBonus:  0.2,
		NearCodeBonus:   0.15,
		PrefixBonus:     0.1,
		PrefixRuneCount: 2,
	}
}

// Match is the outcome of a lookup. A zero Confidence means nothing was
// accepted and Standardized equals the input.
type Match struct {
	Input        string
	Standardized string
	Confidence   float64
	Exact        bool
}

type candidate struct {
	text      string
	canonical string
	code      string
}

// Matcher resolves misspelled or transliterated product names to their
// canonical form. It is immutable after construction.
type Matcher struct {
	thresholds Thresholds
	exact      map[string]string
	candidates []candidate
}

func NewMatcher(products lexicon.ProductDictionary, th Thresholds) *Matcher {
	m := &Matcher{
		thresholds: th,
		exact:      make(map[string]string, products.Len()),
	}
	for _, canonical := range products.Canonicals() {
		names := append([]string{canonical}, products[canonical]...)
		for _, name := range names {
			key := foldKey(name)
			if key == "" {
				continue
			}
			if _, taken := m.exact[key]; !taken {
				m.exact[key] = canonical
			}
			m.candidates = append(m.candidates, candidate{
				text:      key,
				canonical: canonical,
				code:      Phonetic(key),
			})
		}
	}
	return m
}

// Standardize returns the canonical name and confidence for raw using the
// length-based floor.
func (m *Matcher) Standardize(raw string) (string, float64) {
	res := m.Match(raw, 0)
	return res.Standardized, res.Confidence
}

// Match looks raw up. A positive minScore replaces the length-based floor.
func (m *Matcher) Match(raw string, minScore float64) Match {
	key := foldKey(raw)
	res := Match{Input: raw, Standardized: raw}
	if key == "" {
		return res
	}

	if canonical, ok := m.exact[key]; ok {
		res.Standardized = canonical
		res.Confidence = 1
		res.Exact = true
		return res
	}

	length := utf8.RuneCountInString(key)
	maxDist, minRatio, floor := m.limits(length)
	if minScore > 0 {
		floor = minScore
	}

	code := Phonetic(key)
	best, bestScore := "", 0.0
	for _, c := range m.candidates {
		dist := Levenshtein(key, c.text)
		ratio := Ratio(key, c.text)
		if dist > maxDist && ratio < minRatio {
			continue
		}
		score := ratio + m.bonus(key, code, c)
		if score > 1 {
			score = 1
		}
		if score > bestScore {
			best, bestScore = c.canonical, score
		}
	}

	if best == "" || bestScore < floor {
		return res
	}
	res.Standardized = best
	res.Confidence = bestScore
	return res
}

func (m *Matcher) limits(length int) (int, float64, float64) {
	th := m.thresholds
	switch {
	case length <= th.ShortMaxLen:
		return th.ShortDistance, th.ShortRatio, th.ShortFloor
	case length <= th.MediumMaxLen:
		return th.MediumDistance, th.MediumRatio, th.MediumFloor
	default:
		return th.LongDistance, th.LongRatio, th.LongFloor
	}
}

func (m *Matcher) bonus(key, code string, c candidate) float64 {
	th := m.thresholds
	switch {
	case code != "" && code == c.code:
		return th.ExactCodeBonus
	case code != "" && c.code != "" && Levenshtein(code, c.code) == 1:
		return th.NearCodeBonus
	case sharesPrefix(key, c.text, th.PrefixRuneCount):
		return th.PrefixBonus
	}
	return 0
}

func sharesPrefix(a, b string, n int) bool {
	ra, rb := []rune(a), []rune(b)
	if n <= 0 || len(ra) < n || len(rb) < n {
		return false
	}
	return string(ra[:n]) == string(rb[:n])
}

func foldKey(s string) string {
	return lexicon.NFC(strings.Join(strings.Fields(strings.ToLower(s)), " "))
}
