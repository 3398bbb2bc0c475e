// internal/workers/nlu/parse-command/handler_test.go
package parsecommand

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"commerce-nlu/internal/common/aws"
	"commerce-nlu/internal/common/cache"
	apperrors "commerce-nlu/internal/common/errors"
	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/common/observability"
	"commerce-nlu/internal/nlu/pipeline"
)

// ==========================
// Test Logger Implementation
// ==========================

// TestLogger implements the Logger interface for testing
type TestLogger struct {
	t      *testing.T
	fields map[string]interface{}
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{
		t:      t,
		fields: make(map[string]interface{}),
	}
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) With(fields map[string]interface{}) Logger {
	return &TestLogger{t: l.t, fields: l.mergeFields(fields)}
}

func (l *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	all := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		all[k] = v
	}
	for k, v := range fields {
		all[k] = v
	}
	return all
}

// BenchmarkLogger is a minimal logger for benchmarks
type BenchmarkLogger struct{}

func (b *BenchmarkLogger) Info(msg string, fields map[string]interface{})  {}
func (b *BenchmarkLogger) Warn(msg string, fields map[string]interface{})  {}
func (b *BenchmarkLogger) Error(msg string, fields map[string]interface{}) {}
func (b *BenchmarkLogger) With(fields map[string]interface{}) Logger       { return b }

// ==========================
// Test Doubles
// ==========================

type mockFeedback struct {
	mock.Mock
}

func (m *mockFeedback) Publish(ctx context.Context, ev aws.FeedbackEvent) (string, error) {
	args := m.Called(ctx, ev)
	return args.String(0), args.Error(1)
}

type panickyParser struct{}

func (panickyParser) RunCommand(cmd pipeline.RawCommand) pipeline.ParsedCommand {
	return pipeline.ParsedCommand{
		Intent:        "unknown",
		Entities:      map[string]interface{}{},
		Language:      "en",
		RawText:       cmd.Text,
		Error:         pipeline.ErrInternalParsingFault + ": boom",
		CorrelationID: cmd.CorrelationID,
	}
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	cfg := LoadConfig()
	cfg.Timeout = 2 * time.Second
	return cfg
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(nil, pipeline.DefaultOptions(), nil)
}

func newParseCache(t *testing.T) *cache.ParseCache {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.New(time.Minute, 1<<20, redis.NewClient(&redis.Options{Addr: mr.Addr()}), logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func newHandler(t *testing.T, deps Dependencies) *Handler {
	if deps.Parser == nil {
		deps.Parser = newPipeline()
	}
	h, err := NewHandler(createTestConfig(), deps, NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		expectedIntent string
		expectedLang   string
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:           "hindi edit stock",
			input:          &Input{Text: "चीनी का स्टॉक 15 करो", CorrelationID: "req-1"},
			expectedIntent: "edit_stock",
			expectedLang:   "hi",
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "req-1", output.CorrelationID)
				assert.Equal(t, "req-1", output.ParsedCommand.CorrelationID)
				assert.Equal(t, 15, output.ParsedCommand.Entities["stock"])
			},
		},
		{
			name:           "english orders last week",
			input:          &Input{Text: "Show orders from last week"},
			expectedIntent: "get_orders",
			expectedLang:   "en",
			validateOutput: func(t *testing.T, output *Output) {
				_, err := uuid.Parse(output.CorrelationID)
				assert.NoError(t, err, "a correlation id is assigned when absent")
				assert.Equal(t, "last_week", output.ParsedCommand.Entities["range"])
			},
		},
		{
			name:           "negated command",
			input:          &Input{Text: "I don't want rice"},
			expectedIntent: "",
			expectedLang:   "en",
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.ParsedCommand.HasNegation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, Dependencies{})

			output, err := h.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.False(t, output.Cached)
			assert.Equal(t, tt.expectedIntent, string(output.ParsedCommand.Intent))
			assert.Equal(t, tt.expectedLang, string(output.ParsedCommand.Language))
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"text too long", &Input{Text: strings.Repeat("a", 2001)}},
		{"correlation id too long", &Input{Text: "show low stock items", CorrelationID: strings.Repeat("c", 129)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, Dependencies{})

			output, err := h.Execute(context.Background(), tt.input)

			assert.Nil(t, output)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandardError(err).Code)
		})
	}
}

func TestHandler_ValidateRawVariables(t *testing.T) {
	h := newHandler(t, Dependencies{})

	result, err := h.validator.ValidateJSON(`{"correlationId":"c-1"}`)
	require.NoError(t, err)
	assert.Error(t, checkResult(result), "missing text is rejected before decoding")

	_, err = h.validator.ValidateJSON(`{"text":`)
	assert.Error(t, err)
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_Cache(t *testing.T) {
	h := newHandler(t, Dependencies{Cache: newParseCache(t)})
	ctx := context.Background()

	first, err := h.Execute(ctx, &Input{Text: "show low stock items", CorrelationID: "a"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := h.Execute(ctx, &Input{Text: "show  low stock items", CorrelationID: "b"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ParsedCommand.Intent, second.ParsedCommand.Intent)
	assert.Equal(t, "b", second.ParsedCommand.CorrelationID)
	assert.Equal(t, "show  low stock items", second.ParsedCommand.RawText)
}

func TestHandler_Execute_FaultsAreNotCached(t *testing.T) {
	c := newParseCache(t)
	h := newHandler(t, Dependencies{Parser: panickyParser{}, Cache: c})

	output, err := h.Execute(context.Background(), &Input{Text: "anything"})
	require.NoError(t, err)
	assert.Contains(t, output.ParsedCommand.Error, pipeline.ErrInternalParsingFault)

	c.Wait()
	_, ok := c.Get(context.Background(), "anything")
	assert.False(t, ok)
}

// ==========================
// Feedback Tests
// ==========================

func TestHandler_Execute_Feedback(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		publishErr  error
		wantPublish bool
	}{
		{"unknown intent is reported", "what is the weather", nil, true},
		{"publish failure does not fail the job", "what is the weather", errors.New("throttled"), true},
		{"recognized intent is not reported", "show low stock items", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &mockFeedback{}
			if tt.wantPublish {
				fb.On("Publish", mock.Anything, mock.MatchedBy(func(ev aws.FeedbackEvent) bool {
					return ev.Text == tt.text && ev.CorrelationID == "fb-1" && ev.Reason == "unknown"
				})).Return("msg-1", tt.publishErr).Once()
			}
			h := newHandler(t, Dependencies{Feedback: fb})

			output, err := h.Execute(context.Background(), &Input{Text: tt.text, CorrelationID: "fb-1"})

			require.NoError(t, err)
			require.NotNil(t, output)
			fb.AssertExpectations(t)
			if !tt.wantPublish {
				fb.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			}
		})
	}
}

// ==========================
// Tracing Tests
// ==========================

func TestHandler_Execute_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := observability.New("parse-command-test", recorder)
	defer obs.Shutdown()

	h := newHandler(t, Dependencies{Observability: obs})
	_, err := h.Execute(context.Background(), &Input{Text: "Update stock of Sugar to 15", CorrelationID: "s-1"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "nlu.parse", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("correlationId", "s-1"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("intent", "edit_stock"))
}

// ==========================
// Constructor Tests
// ==========================

func TestNewHandler(t *testing.T) {
	_, err := NewHandler(createTestConfig(), Dependencies{}, NewTestLogger(t))
	assert.Error(t, err, "parser is required")

	cfg := createTestConfig()
	cfg.InputSchema = map[string]interface{}{"type": 7}
	_, err = NewHandler(cfg, Dependencies{Parser: newPipeline()}, NewTestLogger(t))
	assert.Error(t, err)

	h, err := NewHandler(&Config{}, Dependencies{Parser: newPipeline()}, NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, h.config.Timeout)
}

// ==========================
// Concurrency Tests
// ==========================

func TestHandler_Execute_Concurrent(t *testing.T) {
	h := newHandler(t, Dependencies{Cache: newParseCache(t)})
	texts := []string{"चीनी का स्टॉक 15 करो", "Show orders from last week", "show low stock items", "what is the weather"}

	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		go func(i int) {
			_, err := h.Execute(context.Background(), &Input{Text: texts[i%len(texts)]})
			errs <- err
		}(i)
	}
	for i := 0; i < 40; i++ {
		assert.NoError(t, <-errs)
	}
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	h, _ := NewHandler(createTestConfig(), Dependencies{Parser: newPipeline()}, &BenchmarkLogger{})
	input := &Input{Text: "चीनी का स्टॉक 15 करो", CorrelationID: "bench"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(context.Background(), input)
	}
}
