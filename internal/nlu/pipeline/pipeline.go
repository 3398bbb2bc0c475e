// internal/nlu/pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/common/metrics"
	"commerce-nlu/internal/nlu/entities"
	"commerce-nlu/internal/nlu/fuzzy"
	"commerce-nlu/internal/nlu/intent"
	"commerce-nlu/internal/nlu/langid"
	"commerce-nlu/internal/nlu/lexicon"
	"commerce-nlu/internal/nlu/normalize"
)

// ErrInternalParsingFault prefixes the error of a command whose parse
// panicked. Such commands are reported as intent unknown.
const ErrInternalParsingFault = "INTERNAL_PARSING_FAULT"

// Options collects every tunable of the parser.
type Options struct {
	Fuzzy    fuzzy.Thresholds
	Language langid.Thresholds
	Entities entities.Options
}

func DefaultOptions() Options {
	return Options{
		Fuzzy:    fuzzy.DefaultThresholds(),
		Language: langid.DefaultThresholds(),
		Entities: entities.Options{
			SearchMinScore:   entities.DefaultSearchMinScore,
			DefaultThreshold: entities.DefaultThreshold,
			DefaultUnit:      "kg",
		},
	}
}

// RawCommand is one inbound message.
type RawCommand struct {
	Text          string `json:"text"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ParsedCommand is the routing decision for one message. Entities is
// never nil.
type ParsedCommand struct {
	Intent         intent.Intent          `json:"intent"`
	Entities       map[string]interface{} `json:"entities"`
	Language       langid.Language        `json:"language"`
	IsMixed        bool                   `json:"isMixed"`
	HasNegation    bool                   `json:"hasNegation"`
	RawText        string                 `json:"rawText"`
	NormalizedText string                 `json:"normalizedText"`
	Error          string                 `json:"error,omitempty"`
	CorrelationID  string                 `json:"correlationId,omitempty"`
}

// Pipeline runs normalize, identify, classify and extract in sequence. It
// keeps no per-message state and is safe for concurrent use.
type Pipeline struct {
	lexicon    *lexicon.Lexicon
	normalizer *normalize.Normalizer
	identifier *langid.Identifier
	classifier *intent.Classifier
	extractors *entities.Set
	logger     logger.Logger
}

func New(lex *lexicon.Lexicon, opts Options, log logger.Logger) *Pipeline {
	if lex == nil {
		lex = lexicon.Default()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	matcher := fuzzy.NewMatcher(lex.Products, opts.Fuzzy)
	return &Pipeline{
		lexicon:    lex,
		normalizer: normalize.New(lex),
		identifier: langid.New(lex, opts.Language),
		classifier: intent.NewClassifier(),
		extractors: entities.NewSet(lex, matcher, opts.Entities),
		logger:     log.With(map[string]interface{}{"component": "nlu-pipeline"}),
	}
}

// Lexicon returns the word tables the pipeline was built with.
func (p *Pipeline) Lexicon() *lexicon.Lexicon {
	return p.lexicon
}

func (p *Pipeline) Run(raw string) ParsedCommand {
	return p.RunCommand(RawCommand{Text: raw})
}

// RunCommand never panics. A fault in any stage is logged and reported as
// intent unknown with Error set.
func (p *Pipeline) RunCommand(cmd RawCommand) (out ParsedCommand) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			metrics.ParseFaults.Inc()
			p.logger.Error("Parser fault", map[string]interface{}{
				"panic":         fmt.Sprint(r),
				"correlationId": cmd.CorrelationID,
			})
			out = ParsedCommand{
				Intent:        intent.Unknown,
				Entities:      map[string]interface{}{},
				Language:      langid.English,
				RawText:       cmd.Text,
				Error:         fmt.Sprintf("%s: %v", ErrInternalParsingFault, r),
				CorrelationID: cmd.CorrelationID,
			}
		}
	}()

	out = p.parse(cmd)
	metrics.ParseDuration.Observe(time.Since(start).Seconds())
	metrics.CommandsParsed.WithLabelValues(string(out.Intent), string(out.Language)).Inc()
	if out.HasNegation {
		metrics.Negations.Inc()
	}
	p.logger.Debug("Command parsed", map[string]interface{}{
		"intent":        out.Intent,
		"language":      out.Language,
		"isMixed":       out.IsMixed,
		"hasNegation":   out.HasNegation,
		"correlationId": cmd.CorrelationID,
		"duration":      time.Since(start).String(),
	})
	return out
}

func (p *Pipeline) parse(cmd RawCommand) ParsedCommand {
	raw := cmd.Text
	norm := p.normalizer.Normalize(raw)
	profile := p.identifier.Identify(raw)

	out := ParsedCommand{
		Intent:         intent.Unknown,
		Entities:       map[string]interface{}{},
		Language:       profile.Primary,
		IsMixed:        profile.IsMixed,
		RawText:        raw,
		NormalizedText: norm.Text,
		CorrelationID:  cmd.CorrelationID,
	}
	if strings.TrimSpace(norm.Text) == "" {
		return out
	}

	strongAdd := p.classifier.IsStrongAddProduct(norm.Text)
	if _, negated := p.classifier.DetectNegation(norm.Text); negated && !strongAdd {
		out.Intent = intent.None
		out.HasNegation = true
		return out
	}

	if strongAdd {
		out.Intent = intent.AddProduct
	} else {
		c := p.classifier.Classify(norm.Text, profile)
		out.Intent, out.Language = c.Intent, c.Language
		if c.Language != profile.Primary {
			metrics.LanguageFallbacks.WithLabelValues(string(profile.Primary), string(c.Language)).Inc()
		}
	}

	in := entities.Input{Raw: raw, Normalized: norm.Text, Profile: profile}
	found := p.extractors.Extract(out.Intent, in)
	if entities.IsEmpty(found) && !profile.IsMixed {
		in.Profile = profile.AsMixed()
		found = p.extractors.Extract(out.Intent, in)
	}
	out.Entities = entities.ToMap(found)
	return out
}
