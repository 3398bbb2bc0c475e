// internal/nlu/intent/classifier.go
package intent

import (
	"commerce-nlu/internal/nlu/langid"
	"commerce-nlu/internal/nlu/lexicon"
)

// Classification is the outcome of one Classify call.
type Classification struct {
	Intent      Intent
	Language    langid.Language
	HasNegation bool
	Negation    NegationFamily
	// Fallback is set when the match came from the secondary rule table.
	Fallback bool
}

// Classifier maps normalized text to an intent. Rule tables are compiled
// once and never modified, so a Classifier is safe for concurrent use.
type Classifier struct {
	rules    map[langid.Language][]Rule
	negation negationDetector
	strong   Rule
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: map[langid.Language][]Rule{
			langid.English: englishRules,
			langid.Hindi:   hindiRules,
		},
		negation: newNegationDetector(),
		strong:   Rule{Intent: AddProduct, Patterns: strongAddTriggers},
	}
}

// DetectNegation reports whether text is a negated request.
func (c *Classifier) DetectNegation(text string) (NegationFamily, bool) {
	return c.negation.detect(lexicon.NFC(text))
}

// IsStrongAddProduct reports whether text carries an explicit add-product
// trigger that outranks negation.
func (c *Classifier) IsStrongAddProduct(text string) bool {
	return c.strong.Match(lexicon.NFC(text))
}

// Classify runs the negation and add-product pre-filters, then the primary
// language rule table and finally the other language's table.
func (c *Classifier) Classify(text string, profile langid.Profile) Classification {
	text = lexicon.NFC(text)
	res := Classification{Intent: Unknown, Language: profile.Primary}

	if family, negated := c.DetectNegation(text); negated {
		if c.IsStrongAddProduct(text) {
			res.Intent = AddProduct
			return res
		}
		res.Intent = None
		res.HasNegation = true
		res.Negation = family
		return res
	}

	if found, ok := firstMatch(c.rules[profile.Primary], text); ok {
		res.Intent = found
		return res
	}

	other := profile.Primary.Other()
	if found, ok := firstMatch(c.rules[other], text); ok {
		res.Intent = found
		res.Fallback = true
		if profile.IsMixed {
			res.Language = other
		}
		return res
	}
	return res
}

// Rules exposes the ordered rule table for a language.
func (c *Classifier) Rules(lang langid.Language) []Rule {
	return c.rules[lang]
}

func firstMatch(rules []Rule, text string) (Intent, bool) {
	for _, r := range rules {
		if r.Match(text) {
			return r.Intent, true
		}
	}
	return Unknown, false
}
