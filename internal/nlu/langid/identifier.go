// internal/nlu/langid/identifier.go
package langid

import (
	"strings"
	"unicode"

	"commerce-nlu/internal/nlu/lexicon"
)

type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// Other returns the opposite language.
func (l Language) Other() Language {
	if l == Hindi {
		return English
	}
	return Hindi
}

// Thresholds are ratio cut-offs for script classification. They are tuned
// by hand and exposed so deployments can adjust them.
type Thresholds struct {
	MixedScriptMinRatio         float64
	HindiDominantRatio          float64
	EnglishDominantRatio        float64
	TransliterationRatio        float64
	TransliterationPrimaryRatio float64
	DefaultConfidence           float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MixedScriptMinRatio:         0.1,
		HindiDominantRatio:          0.3,
		EnglishDominantRatio:        0.6,
		TransliterationRatio:        0.3,
		TransliterationPrimaryRatio: 0.5,
		DefaultConfidence:           0.5,
	}
}

// Profile describes the script make-up of one message.
type Profile struct {
	Primary              Language
	Secondary            Language
	IsMixed              bool
	Confidence           float64
	HindiRatio           float64
	EnglishRatio         float64
	TransliterationRatio float64
	TransliteratedWords  []string
	HindiSegments        []string
	EnglishSegments      []string
	HasEmoji             bool
}

// AsMixed returns a copy flagged as code-mixed, keeping the primary language.
func (p Profile) AsMixed() Profile {
	p.IsMixed = true
	if p.Secondary == "" {
		p.Secondary = p.Primary.Other()
	}
	return p
}

type Identifier struct {
	lex        *lexicon.Lexicon
	thresholds Thresholds
}

func New(lex *lexicon.Lexicon, th Thresholds) *Identifier {
	return &Identifier{lex: lex, thresholds: th}
}

func (id *Identifier) Identify(text string) Profile {
	th := id.thresholds
	p := Profile{Primary: English, Confidence: th.DefaultConfidence}

	var dev, latin int
	for _, r := range text {
		switch {
		case isDevanagariLetter(r):
			dev++
		case isLatinLetter(r):
			latin++
		case isEmoji(r):
			p.HasEmoji = true
		}
	}

	p.TransliteratedWords, p.TransliterationRatio = id.transliterated(text)

	total := dev + latin
	if total == 0 {
		return p
	}
	p.HindiRatio = float64(dev) / float64(total)
	p.EnglishRatio = float64(latin) / float64(total)

	switch {
	case p.HindiRatio >= th.MixedScriptMinRatio && p.EnglishRatio >= th.MixedScriptMinRatio:
		return id.mixed(p, text)
	case p.HindiRatio >= th.HindiDominantRatio:
		p.Primary = Hindi
		p.Confidence = p.HindiRatio
		return p
	case p.EnglishRatio >= th.EnglishDominantRatio &&
		p.TransliterationRatio < th.TransliterationRatio &&
		!p.HasEmoji && dev == 0:
		p.Primary = English
		p.Confidence = p.EnglishRatio * (1 - p.TransliterationRatio)
		return p
	default:
		return id.mixed(p, text)
	}
}

func (id *Identifier) mixed(p Profile, text string) Profile {
	p.IsMixed = true
	if p.HindiRatio >= p.EnglishRatio || p.TransliterationRatio >= id.thresholds.TransliterationPrimaryRatio {
		p.Primary = Hindi
	} else {
		p.Primary = English
	}
	p.Secondary = p.Primary.Other()
	p.Confidence = max(p.HindiRatio, p.EnglishRatio, p.TransliterationRatio, id.thresholds.DefaultConfidence)
	p.HindiSegments, p.EnglishSegments = Segments(text)
	return p
}

func (id *Identifier) transliterated(text string) ([]string, float64) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && r != '\''
	})
	if len(words) == 0 {
		return nil, 0
	}
	var hits []string
	for _, w := range words {
		if _, ok := id.lex.Transliterate(w); ok {
			hits = append(hits, w)
		}
	}
	return hits, float64(len(hits)) / float64(len(words))
}

// Segments splits text into contiguous Devanagari and Latin runs. Spaces
// and punctuation between words of the same script stay inside a run.
func Segments(text string) (hindi, english []string) {
	var cur strings.Builder
	curScript := 0 // 0 none, 1 devanagari, 2 latin

	flush := func() {
		seg := strings.TrimFunc(cur.String(), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
		})
		switch {
		case seg == "":
		case curScript == 1:
			hindi = append(hindi, seg)
		case curScript == 2:
			english = append(english, seg)
		}
		cur.Reset()
	}

	for _, r := range text {
		script := 0
		switch {
		case unicode.In(r, unicode.Devanagari):
			script = 1
		case isLatinLetter(r):
			script = 2
		}
		if script != 0 && curScript != 0 && script != curScript {
			flush()
		}
		if script != 0 {
			curScript = script
		}
		if curScript != 0 {
			cur.WriteRune(r)
		}
	}
	flush()
	return hindi, english
}

func isDevanagariLetter(r rune) bool {
	return unicode.In(r, unicode.Devanagari) && (unicode.IsLetter(r) || unicode.IsMark(r))
}

func isLatinLetter(r rune) bool {
	return unicode.In(r, unicode.Latin) && unicode.IsLetter(r)
}

func isEmoji(r rune) bool {
	return unicode.Is(unicode.So, r) && r >= 0x2190
}
