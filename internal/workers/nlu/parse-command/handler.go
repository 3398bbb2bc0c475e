// internal/workers/nlu/parse-command/handler.go
package parsecommand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"commerce-nlu/internal/common/aws"
	apperrors "commerce-nlu/internal/common/errors"
	"commerce-nlu/internal/common/metrics"
	"commerce-nlu/internal/common/observability"
	"commerce-nlu/internal/common/validation"
	"commerce-nlu/internal/nlu/pipeline"
)

const (
	TaskType = "parse-command"
)

var (
	ErrParseInputFailed = errors.New("PARSE_INPUT_FAILED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Parser interface {
	RunCommand(cmd pipeline.RawCommand) pipeline.ParsedCommand
}

type Cache interface {
	Get(ctx context.Context, text string) (*pipeline.ParsedCommand, bool)
	Set(ctx context.Context, text string, cmd *pipeline.ParsedCommand) error
}

type FeedbackPublisher interface {
	Publish(ctx context.Context, ev aws.FeedbackEvent) (string, error)
}

// Dependencies of the handler. Only Parser is required.
type Dependencies struct {
	Parser        Parser
	Cache         Cache
	Feedback      FeedbackPublisher
	Observability *observability.Observability
}

type Handler struct {
	config    *Config
	deps      Dependencies
	validator *validation.Validator
	feedback  map[string]struct{}
	errors    *apperrors.ErrorHandler
	logger    Logger
}

func NewHandler(config *Config, deps Dependencies, log Logger) (*Handler, error) {
	if deps.Parser == nil {
		return nil, errors.New("parse-command: parser is required")
	}
	if deps.Observability == nil {
		deps.Observability = &observability.Observability{}
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.InputSchema == nil {
		config.InputSchema = DefaultInputSchema()
	}

	validator, err := validation.NewValidator(config.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("parse-command input schema: %w", err)
	}

	feedback := make(map[string]struct{}, len(config.FeedbackIntents))
	for _, name := range config.FeedbackIntents {
		feedback[name] = struct{}{}
	}

	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		deps:      deps,
		validator: validator,
		feedback:  feedback,
		errors:    apperrors.NewErrorHandler(log),
		logger:    log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	// Validate the raw variables: a missing text is indistinguishable from
	// an empty one after decoding.
	result, err := h.validator.ValidateJSON(job.Variables)
	if err != nil {
		h.failJob(client, job, fmt.Errorf("%w: %v", ErrParseInputFailed, err))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, fmt.Errorf("%w: %v", ErrParseInputFailed, err))
		return
	}

	var output *Output
	if err = checkResult(result); err == nil {
		output, err = h.execute(ctx, &input)
	}
	if err != nil {
		code := string(apperrors.AsStandardError(err).Code)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		h.deps.Observability.RecordJobProcessed(ctx, "failed")
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.deps.Observability.RecordJobProcessed(ctx, "completed")
	h.deps.Observability.RecordJobDuration(ctx, time.Since(start), "completed")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.validator.Validate(input)
	if err != nil {
		return nil, apperrors.NewParseInputError(err)
	}
	if err := checkResult(result); err != nil {
		return nil, err
	}

	correlationID := input.CorrelationID
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	ctx, span := h.deps.Observability.StartSpan(ctx, "nlu.parse",
		attribute.String("correlationId", correlationID),
		attribute.Int("textLength", len(input.Text)),
		attribute.String("locale", input.Locale),
	)
	defer span.End()

	cmd, cached := h.parse(ctx, input.Text, correlationID)

	span.SetAttributes(
		attribute.String("intent", string(cmd.Intent)),
		attribute.String("language", string(cmd.Language)),
		attribute.Bool("cached", cached),
	)
	if cmd.Error != "" {
		span.SetStatus(codes.Error, cmd.Error)
	}

	if _, ok := h.feedback[string(cmd.Intent)]; ok {
		h.publishFeedback(ctx, cmd)
	}

	h.logger.Info("command parsed", map[string]interface{}{
		"correlationId": correlationID,
		"intent":        cmd.Intent,
		"language":      cmd.Language,
		"isMixed":       cmd.IsMixed,
		"hasNegation":   cmd.HasNegation,
		"cached":        cached,
	})

	return &Output{
		ParsedCommand: cmd,
		CorrelationID: correlationID,
		Cached:        cached,
	}, nil
}

func checkResult(result *validation.ValidationResult) error {
	if result.Valid {
		return nil
	}
	return apperrors.NewInputValidationError(result.Summary()).
		WithMetadata("fields", result.Errors)
}

// parse consults the cache before running the pipeline. Faulted results are
// never cached.
func (h *Handler) parse(ctx context.Context, text, correlationID string) (pipeline.ParsedCommand, bool) {
	if h.deps.Cache != nil {
		if hit, ok := h.deps.Cache.Get(ctx, text); ok {
			hit.RawText = text
			hit.CorrelationID = correlationID
			return *hit, true
		}
	}

	cmd := h.deps.Parser.RunCommand(pipeline.RawCommand{Text: text, CorrelationID: correlationID})

	if h.deps.Cache != nil && cmd.Error == "" {
		if err := h.deps.Cache.Set(ctx, text, &cmd); err != nil {
			h.logger.Warn("cache store failed", map[string]interface{}{
				"correlationId": correlationID,
				"error":         apperrors.NewCacheUnavailableError(err).Details,
			})
		}
	}
	return cmd, false
}

// publishFeedback is best effort; a publish failure never fails the job.
func (h *Handler) publishFeedback(ctx context.Context, cmd pipeline.ParsedCommand) {
	if h.deps.Feedback == nil {
		return
	}
	reason := string(cmd.Intent)
	if cmd.Error != "" {
		reason = cmd.Error
	}
	id, err := h.deps.Feedback.Publish(ctx, aws.FeedbackEvent{
		CorrelationID:  cmd.CorrelationID,
		Text:           cmd.RawText,
		NormalizedText: cmd.NormalizedText,
		Language:       string(cmd.Language),
		IsMixed:        cmd.IsMixed,
		Reason:         reason,
	})
	if err != nil {
		stdErr := apperrors.NewFeedbackPublishError(err)
		h.logger.Warn("feedback publish failed", map[string]interface{}{
			"correlationId": cmd.CorrelationID,
			"errorCode":     string(stdErr.Code),
			"error":         stdErr.Details,
		})
		return
	}
	h.logger.Info("feedback published", map[string]interface{}{
		"correlationId": cmd.CorrelationID,
		"messageId":     id,
	})
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

// failJob raises an incident: a payload that is not JSON will not parse on
// retry either.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, ErrParseInputFailed.Error()).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"error":     err.Error(),
		"errorCode": ErrParseInputFailed.Error(),
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(0).
		ErrorMessage(err.Error()).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
