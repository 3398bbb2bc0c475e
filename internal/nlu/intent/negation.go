// internal/nlu/intent/negation.go
package intent

// NegationFamily names the pattern family that flagged a negated request.
type NegationFamily string

const (
	NegationEnglish NegationFamily = "en"
	NegationHindi   NegationFamily = "hi"
	NegationMixed   NegationFamily = "mixed"
)

var negationFamilies = []struct {
	family   NegationFamily
	patterns []string
}{
	{NegationEnglish, []string{
		`(?i)\b(?:don'?t|do\s+not|doesn'?t|does\s+not|didn'?t|did\s+not)\s+(?:want|need|add|show|order|buy|update|change|search|send)\b`,
		`(?i)\b(?:no\s+need|never\s+mind|not\s+(?:now|needed|required|interested))\b`,
		`(?i)\bi\s+(?:won'?t|will\s+not)\s+(?:want|need|buy|order)\b`,
	}},
	{NegationHindi, []string{
		`(?:नहीं|नही|मत)\s*(?:चाहिए|चाहिये|जोड़ो|करो|करें|दिखाओ|भेजो|बदलो)`,
		`(?:चाहिए|चाहिये|जोड़ना|करना|दिखाना|बदलना)\s+(?:नहीं|नही)`,
		`(?:मत|ना)\s+(?:करो|जोड़ो|दिखाओ|भेजो)`,
		`(?:ज़रूरत|जरूरत)\s+(?:नहीं|नही)`,
	}},
	{NegationMixed, []string{
		`(?i)\b(?:nahi|nahin|nai|mat)\s+(?:chahiye|chahie|karo|jodo|dikhao|want|need|add)\b`,
		`(?i)\b(?:don'?t|not)\b.*(?:चाहिए|करो|जोड़ो)`,
		`(?i)(?:नहीं|नही|मत)\s+(?:want|need|add|show|order)\b`,
		`(?i)\b(?:want|need|add)\s+(?:नहीं|नही)`,
	}},
}

type negationDetector struct {
	families []compiledFamily
}

type compiledFamily struct {
	family NegationFamily
	rule   Rule
}

func newNegationDetector() negationDetector {
	d := negationDetector{}
	for _, f := range negationFamilies {
		d.families = append(d.families, compiledFamily{
			family: f.family,
			rule:   Rule{Patterns: compileAll(f.patterns...)},
		})
	}
	return d
}

func (d negationDetector) detect(text string) (NegationFamily, bool) {
	for _, f := range d.families {
		if f.rule.Match(text) {
			return f.family, true
		}
	}
	return "", false
}
