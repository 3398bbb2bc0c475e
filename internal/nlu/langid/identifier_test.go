package langid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-nlu/internal/nlu/lexicon"
)

func newTestIdentifier() *Identifier {
	return New(lexicon.Default(), DefaultThresholds())
}

func TestIdentifier_Identify(t *testing.T) {
	id := newTestIdentifier()

	tests := []struct {
		name        string
		input       string
		wantPrimary Language
		wantMixed   bool
	}{
		{"english sentence", "Update stock of Sugar to 15", English, false},
		{"english negation", "I don't want rice", English, false},
		{"devanagari sentence", "चीनी का स्टॉक 15 करो", Hindi, false},
		{"romanized hindi", "chini ka stock 15 karo", Hindi, true},
		{"mostly english with one hindi word", "show stock hai", English, true},
		{"code mixed scripts", "चीनी ka stock karo", Hindi, true},
		{"english with devanagari tail", "show sales report for this month पिछला", English, true},
		{"emoji with english", "📦 show stock", English, true},
		{"no letters", "12345 !!", English, false},
		{"empty", "", English, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := id.Identify(tt.input)
			assert.Equal(t, tt.wantPrimary, p.Primary)
			assert.Equal(t, tt.wantMixed, p.IsMixed)
			if p.IsMixed {
				assert.Equal(t, p.Primary.Other(), p.Secondary)
			}
			assert.GreaterOrEqual(t, p.Confidence, 0.0)
			assert.LessOrEqual(t, p.Confidence, 1.0)
		})
	}
}

func TestIdentifier_DefaultConfidence(t *testing.T) {
	p := newTestIdentifier().Identify("42")
	assert.Equal(t, English, p.Primary)
	assert.Equal(t, 0.5, p.Confidence)
}

func TestIdentifier_NoLettersDefaultsToEnglish(t *testing.T) {
	id := newTestIdentifier()

	for _, input := range []string{"👍", "📦📦", "\xff\xfe", "👍 !!"} {
		t.Run(input, func(t *testing.T) {
			p := id.Identify(input)
			assert.Equal(t, English, p.Primary)
			assert.False(t, p.IsMixed)
			assert.Equal(t, 0.5, p.Confidence)
		})
	}
}

func TestIdentifier_TransliterationRatio(t *testing.T) {
	p := newTestIdentifier().Identify("chawal ka stock dikhao")
	assert.Equal(t, []string{"chawal", "ka", "dikhao"}, p.TransliteratedWords)
	assert.InDelta(t, 0.75, p.TransliterationRatio, 1e-9)

	p = newTestIdentifier().Identify("to do the main thing")
	assert.Empty(t, p.TransliteratedWords)
	assert.Equal(t, 0.0, p.TransliterationRatio)
}

func TestIdentifier_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.TransliterationRatio = 0.9
	id := New(lexicon.Default(), th)

	p := id.Identify("show stock hai")
	assert.Equal(t, English, p.Primary)
	assert.False(t, p.IsMixed)
}

func TestSegments(t *testing.T) {
	hindi, english := Segments("चीनी का stock update करो please")
	assert.Equal(t, []string{"चीनी का", "करो"}, hindi)
	assert.Equal(t, []string{"stock update", "please"}, english)

	hindi, english = Segments("")
	assert.Empty(t, hindi)
	assert.Empty(t, english)
}

func TestProfile_AsMixed(t *testing.T) {
	p := Profile{Primary: English}.AsMixed()
	assert.True(t, p.IsMixed)
	assert.Equal(t, English, p.Primary)
	assert.Equal(t, Hindi, p.Secondary)
}
