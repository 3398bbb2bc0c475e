// internal/nlu/lexicon/lexicon.go
package lexicon

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var searchStopwords = []string{
	"search", "find", "look", "lookup", "up", "for", "show", "me", "do", "you",
	"have", "is", "there", "any", "product", "products", "item", "items",
	"available", "please", "the", "a", "an", "in", "stock", "check", "get",
	"some", "i", "want", "need", "we", "if", "your", "store", "shop",
	"खोजो", "ढूंढो", "ढूँढो", "तलाश", "करो", "करें", "है", "हैं", "क्या", "में",
	"मिलेगा", "मिला", "दिखाओ", "का", "की", "के", "को", "प्रोडक्ट", "सामान",
	"उपलब्ध", "कृपया", "मुझे", "चाहिए", "होगा", "बताओ", "स्टॉक", "कोई",
}

// Lexicon bundles the read-only word tables shared by every stage of the
// parser. It is never mutated after construction and is safe to share.
type Lexicon struct {
	Products         ProductDictionary
	Transliterations map[string]string
	Romanizations    map[string]string
	EnglishAllowList map[string]struct{}
	Emoji            map[string]string
	SearchStopwords  map[string]struct{}
}

// Default returns the bundled lexicon.
func Default() *Lexicon {
	return New(nil)
}

// New returns the bundled lexicon with extra product entries merged in.
func New(extra ProductDictionary) *Lexicon {
	stop := make(map[string]struct{}, len(searchStopwords))
	for _, w := range searchStopwords {
		stop[NFC(w)] = struct{}{}
	}
	products := BuiltinProducts()
	if len(extra) > 0 {
		products = products.Merge(extra)
	}

	// Text reaching the lexicon is NFC; nukta letters such as ड़ only compare
	// equal once both sides are composed the same way.
	nfcProducts := make(ProductDictionary, len(products))
	for canonical, variants := range products {
		key := NFC(canonical)
		for _, v := range variants {
			nfcProducts[key] = append(nfcProducts[key], NFC(v))
		}
		if _, ok := nfcProducts[key]; !ok {
			nfcProducts[key] = []string{}
		}
	}

	return &Lexicon{
		Products:         nfcProducts,
		Transliterations: nfcValues(Transliterations()),
		Romanizations:    nfcKeys(Romanizations()),
		EnglishAllowList: EnglishAllowList(),
		Emoji:            nfcValues(EmojiWords()),
		SearchStopwords:  stop,
	}
}

// NFC returns s in Unicode normalization form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}

func nfcValues(m map[string]string) map[string]string {
	for k, v := range m {
		m[k] = NFC(v)
	}
	return m
}

func nfcKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[NFC(k)] = v
	}
	return out
}

// Transliterate maps a single lower-cased romanized Hindi word to
// Devanagari. Allow-listed English words are never mapped.
func (l *Lexicon) Transliterate(word string) (string, bool) {
	if l.IsEnglish(word) {
		return "", false
	}
	dev, ok := l.Transliterations[word]
	return dev, ok
}

// TransliterateBefore is Transliterate for a word followed by next, so
// "mat karo" reads as Hindi while "yoga mat" stays English.
func (l *Lexicon) TransliterateBefore(word, next string) (string, bool) {
	if dev, ok := l.Transliterate(word); ok {
		return dev, true
	}
	if _, ok := hindiBeforeHindi[word]; !ok || next == "" {
		return "", false
	}
	dev, ok := l.Transliterations[word]
	if !ok {
		return "", false
	}
	if _, hindi := l.Transliterate(next); hindi || strings.ContainsFunc(next, isDevanagari) {
		return dev, true
	}
	return "", false
}

func isDevanagari(r rune) bool {
	return unicode.Is(unicode.Devanagari, r)
}

func (l *Lexicon) IsEnglish(word string) bool {
	_, ok := l.EnglishAllowList[word]
	return ok
}

func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.SearchStopwords[NFC(strings.ToLower(word))]
	return ok
}

// Gloss returns a Latin spelling for a Devanagari product or word. Product
// variants that are romanized Hindi win over plain English names.
func (l *Lexicon) Gloss(dev string) (string, bool) {
	dev = NFC(dev)
	if variants, ok := l.Products[dev]; ok {
		for _, v := range variants {
			if l.Transliterations[v] == dev {
				return v, true
			}
		}
	}
	if roman, ok := l.Romanizations[dev]; ok {
		return roman, true
	}
	if variants, ok := l.Products[dev]; ok {
		for _, v := range variants {
			if isLatin(v) {
				return v, true
			}
		}
	}
	return "", false
}

func isLatin(s string) bool {
	for _, r := range s {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return s != ""
}

func sortLongestFirst(words []string) {
	sort.Slice(words, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(words[i]), utf8.RuneCountInString(words[j])
		if li != lj {
			return li > lj
		}
		return words[i] < words[j]
	})
}
