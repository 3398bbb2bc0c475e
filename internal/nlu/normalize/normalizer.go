// internal/nlu/normalize/normalizer.go
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"commerce-nlu/internal/nlu/lexicon"
)

const negativePlaceholder = '\uE000'

var (
	negativeNumber = regexp.MustCompile(`(^|[\s:=,])-(\d)`)
	whitespaceRun  = regexp.MustCompile(`\s+`)

	noise = strings.NewReplacer(
		"!", " ", "?", " ", ";", " ", `"`, " ", "*", " ", "#", " ", "~", " ",
		"^", " ", "_", " ", "[", " ", "]", " ", "{", " ", "}", " ", "(", " ",
		")", " ", `\`, " ", "@", " ", "`", " ", "“", " ", "”", " ", "«", " ",
		"»", " ", "¡", " ", "¿", " ", "…", " ", "•", " ", "‘", "'", "’", "'",
	)

	separators = strings.NewReplacer(
		"|", ",", "->", " to ", "=>", " to ", "→", " to ", "⟶", " to ",
		"➡", " to ", "➔", " to ", "⇒", " to ", "–", " to ", "—", " to ",
	)

	devanagariDigits = strings.NewReplacer(
		"०", "0", "१", "1", "२", "2", "३", "3", "४", "4",
		"५", "5", "६", "6", "७", "7", "८", "8", "९", "9",
	)
)

// Result is the canonical form of one inbound message.
type Result struct {
	Text              string
	Transliterated    []string
	StructuredRewrite bool
}

// Normalizer canonicalizes raw user text. It holds only read-only tables and
// may be shared between goroutines.
type Normalizer struct {
	lex   *lexicon.Lexicon
	emoji *strings.Replacer
}

func New(lex *lexicon.Lexicon) *Normalizer {
	pairs := make([]string, 0, len(lex.Emoji)*2)
	for glyph, word := range lex.Emoji {
		pairs = append(pairs, glyph, " "+word+" ")
	}
	return &Normalizer{
		lex:   lex,
		emoji: strings.NewReplacer(pairs...),
	}
}

// Normalize never fails; unrecognized content passes through untouched.
func (n *Normalizer) Normalize(raw string) Result {
	text := n.replaceEmoji(raw)

	var res Result
	text, res.StructuredRewrite = rewriteStructured(text)

	text = whitespaceRun.ReplaceAllString(text, " ")
	text = stripNoise(text)
	text = devanagariDigits.Replace(text)
	text = separators.Replace(text)
	text, res.Transliterated = n.transliterate(text)

	res.Text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	return res
}

func (n *Normalizer) replaceEmoji(s string) string {
	return n.emoji.Replace(strings.ReplaceAll(s, "\uFE0F", ""))
}

func stripNoise(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isZeroWidth)))
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	s = noise.Replace(s)
	s = negativeNumber.ReplaceAllString(s, "${1}"+string(negativePlaceholder)+"${2}")
	s = dropLooseDashes(s)
	return strings.ReplaceAll(s, string(negativePlaceholder), "-")
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
		return true
	}
	return false
}

// dropLooseDashes keeps a hyphen only when it joins two alphanumeric runs
// (ranges, compound words, dates) or starts an arrow.
func dropLooseDashes(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i, r := range rs {
		if r != '-' {
			out = append(out, r)
			continue
		}
		prev, next := neighbour(rs, i, -1), neighbour(rs, i, 1)
		if next == '>' || (isWordRune(prev) && isWordRune(next)) {
			out = append(out, r)
			continue
		}
		out = append(out, ' ')
	}
	return string(out)
}

func neighbour(rs []rune, i, step int) rune {
	for j := i + step; j >= 0 && j < len(rs); j += step {
		if !unicode.IsSpace(rs[j]) {
			return rs[j]
		}
	}
	return 0
}

func isWordRune(r rune) bool {
	return r == negativePlaceholder || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func (n *Normalizer) transliterate(s string) (string, []string) {
	words := strings.Fields(s)
	var converted []string
	for i, w := range words {
		prefix, core, suffix := splitAffixes(w)
		if core == "" || strings.ContainsFunc(core, unicode.IsDigit) {
			continue
		}
		lower := strings.ToLower(core)
		if dev, ok := n.lex.TransliterateBefore(lower, nextCore(words, i)); ok {
			words[i] = prefix + dev + suffix
			converted = append(converted, lower)
			continue
		}
		if dev, ok := n.splitCompound(lower); ok {
			words[i] = prefix + dev + suffix
			converted = append(converted, lower)
		}
	}
	return strings.Join(words, " "), converted
}

func nextCore(words []string, i int) string {
	if i+1 >= len(words) {
		return ""
	}
	_, core, _ := splitAffixes(words[i+1])
	return strings.ToLower(core)
}

// splitCompound handles run-together romanized words such as "chinika" by
// splitting into two dictionary words, preferring the longest head.
func (n *Normalizer) splitCompound(word string) (string, bool) {
	if n.lex.IsEnglish(word) || !isASCIIWord(word) || len(word) < 5 {
		return "", false
	}
	for cut := len(word) - 2; cut >= 3; cut-- {
		head, ok := n.lex.Transliterate(word[:cut])
		if !ok {
			continue
		}
		tail, ok := n.lex.Transliterate(word[cut:])
		if !ok {
			continue
		}
		return head + " " + tail, true
	}
	return "", false
}

func splitAffixes(w string) (string, string, string) {
	rs := []rune(w)
	start, end := 0, len(rs)
	for start < end && !isWordRune(rs[start]) {
		start++
	}
	for end > start && !isWordRune(rs[end-1]) {
		end--
	}
	return string(rs[:start]), string(rs[start:end]), string(rs[end:])
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
