// internal/nlu/fuzzy/phonetic.go
package fuzzy

import (
	"strings"
	"unicode"
)

var clusterReplacer = strings.NewReplacer(
	"ph", "f", "sh", "s", "kh", "k", "gh", "g", "ch", "c",
	"th", "t", "dh", "d", "bh", "b", "ck", "k", "ee", "i", "oo", "u",
)

var letterReplacer = strings.NewReplacer("w", "v", "z", "j", "q", "k")

// Phonetic returns a coarse sound-alike code. Latin text gets consonant
// cluster folding, duplicate collapsing and vowel-run collapsing; Devanagari
// text is reduced to its consonant skeleton.
func Phonetic(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if hasDevanagari(s) {
		return devanagariSkeleton(s)
	}

	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	code := letterReplacer.Replace(clusterReplacer.Replace(b.String()))

	out := make([]rune, 0, len(code))
	for _, r := range code {
		if n := len(out); n > 0 {
			last := out[n-1]
			if last == r || (isVowel(last) && isVowel(r)) {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

func devanagariSkeleton(s string) string {
	var b strings.Builder
	first := true
	for _, r := range s {
		switch {
		case !unicode.In(r, unicode.Devanagari):
			continue
		case unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r):
			// matras, nukta, virama, anusvara
			continue
		case r >= 'अ' && r <= 'औ':
			// independent vowels only matter word-initially
			if first {
				b.WriteRune('अ')
			}
		default:
			b.WriteRune(r)
		}
		first = false
	}
	return b.String()
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func hasDevanagari(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Devanagari) {
			return true
		}
	}
	return false
}
