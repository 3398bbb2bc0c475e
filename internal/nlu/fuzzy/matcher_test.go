package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-nlu/internal/nlu/lexicon"
)

func newTestMatcher() *Matcher {
	return NewMatcher(lexicon.Default().Products, DefaultThresholds())
}

// ==========================
// Distance
// ==========================

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"sugar", "sugar", 0},
		{"sugar", "suger", 1},
		{"kitten", "sitting", 3},
		{"चीनी", "चीनि", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 1.0, Ratio("rice", "rice"))
	assert.InDelta(t, 0.8, Ratio("sugar", "suger"), 1e-9)
	assert.InDelta(t, 0.0, Ratio("abc", "xyz"), 1e-9)
}

// ==========================
// Phonetic codes
// ==========================

func TestPhonetic(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"ee folds to i", "cheeni", "chini"},
		{"w folds to v", "chawal", "chaval"},
		{"vowel runs collapse", "chai", "chay"},
		{"duplicates collapse", "makkhan", "makhan"},
		{"devanagari matras dropped", "चीनी", "चिनी"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Phonetic(tt.a), Phonetic(tt.b))
		})
	}

	assert.Equal(t, "", Phonetic("   "))
	assert.NotEqual(t, Phonetic("sugar"), Phonetic("salt"))
}

// ==========================
// Matcher
// ==========================

func TestMatcher_ExactLookup(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		input string
		want  string
	}{
		{"sugar", "चीनी"},
		{"Sugar", "चीनी"},
		{"  CHINI ", "चीनी"},
		{"चीनी", "चीनी"},
		{"mustard   oil", "सरसों का तेल"},
		{"अंडे", "अंडा"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := m.Match(tt.input, 0)
			assert.Equal(t, tt.want, res.Standardized)
			assert.Equal(t, 1.0, res.Confidence)
			assert.True(t, res.Exact)
		})
	}
}

func TestMatcher_FuzzyLookup(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		input   string
		want    string
		minConf float64
	}{
		{"suger", "चीनी", 0.9},
		{"chawel", "चावल", 0.9},
		{"tamater", "टमाटर", 0.8},
		{"चीनि", "चीनी", 0.9},
		{"paneeer", "पनीर", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, conf := m.Standardize(tt.input)
			assert.Equal(t, tt.want, name)
			assert.GreaterOrEqual(t, conf, tt.minConf)
			assert.LessOrEqual(t, conf, 1.0)
		})
	}
}

func TestMatcher_Unrelated(t *testing.T) {
	m := newTestMatcher()

	for _, input := range []string{"qzxwvk", "laptop charger", "", "zz"} {
		t.Run(input, func(t *testing.T) {
			name, conf := m.Standardize(input)
			assert.Equal(t, input, name)
			assert.Equal(t, 0.0, conf)
		})
	}
}

func TestMatcher_MinScoreOverride(t *testing.T) {
	m := newTestMatcher()

	res := m.Match("suger", 0.99)
	assert.Equal(t, "suger", res.Standardized)
	assert.Equal(t, 0.0, res.Confidence)

	res = m.Match("suger", 0.65)
	assert.Equal(t, "चीनी", res.Standardized)
}

func TestMatcher_ConfidenceBounded(t *testing.T) {
	m := newTestMatcher()

	for _, input := range []string{"sugar", "sugr", "chinni", "tomatoe", "मिर्चि", "x"} {
		_, conf := m.Standardize(input)
		assert.GreaterOrEqual(t, conf, 0.0, input)
		assert.LessOrEqual(t, conf, 1.0, input)
	}
}
