// internal/nlu/entities/text.go
package entities

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"commerce-nlu/internal/nlu/lexicon"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func mustCompile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(lexicon.NFC(pattern))
}

// wordSet builds a lookup set, NFC-normalizing Devanagari entries.
func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[lexicon.NFC(w)] = struct{}{}
	}
	return out
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// tokens lower-cases Latin text and splits on whitespace and list
// punctuation, keeping currency signs glued to their numbers.
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(lexicon.NFC(s)), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '|'
	})
}

// cleanName trims filler words from both ends of a captured product name
// and lower-cases Latin letters.
func cleanName(s string, filler map[string]struct{}) string {
	words := tokens(s)
	for i, w := range words {
		words[i] = strings.Trim(w, `.'"`)
	}
	for len(words) > 0 && (words[0] == "" || has(filler, words[0])) {
		words = words[1:]
	}
	for len(words) > 0 && (words[len(words)-1] == "" || has(filler, words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	name := strings.Join(words, " ")
	name = strings.TrimSuffix(name, "'s")
	return strings.TrimSpace(name)
}

func parseInt(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	if f < 0 {
		return int(f - 0.5), true
	}
	return int(f + 0.5), true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func isDevanagariOnly(s string) bool {
	seen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case unicode.In(r, unicode.Devanagari):
			seen = true
		default:
			return false
		}
	}
	return seen
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
