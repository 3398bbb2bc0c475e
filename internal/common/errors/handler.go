// internal/common/errors/handler.go
package errors

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler reports worker failures back to the broker: retryable codes
// fail the job so Zeebe redelivers it, everything else is thrown as a BPMN
// error for the process model to route.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	for k, v := range stdErr.Metadata {
		bpmnErr.ErrorVariables[k] = v
	}

	remaining := RemainingRetries(bpmnErr.Retries, job.Retries)
	h.logError(job, stdErr, bpmnErr, remaining)

	if remaining > 0 {
		h.fail(ctx, client, job, bpmnErr, remaining)
		return
	}
	h.throw(ctx, client, job, bpmnErr)
}

// RemainingRetries decrements the job's retries, capped by the policy for
// the error code. It never raises what the broker granted.
func RemainingRetries(policy int, jobRetries int32) int {
	if policy <= 0 || jobRetries <= 1 {
		return 0
	}
	left := int(jobRetries) - 1
	if left > policy {
		left = policy
	}
	return left
}

func (h *ErrorHandler) fail(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables()); err == nil {
		_, err = withVars.Send(ctx)
		h.logSendFailure("fail", job, err)
		return
	}
	_, err := cmd.Send(ctx)
	h.logSendFailure("fail", job, err)
}

func (h *ErrorHandler) throw(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables()); err == nil {
		_, err = withVars.Send(ctx)
		h.logSendFailure("throw", job, err)
		return
	}
	_, err := cmd.Send(ctx)
	h.logSendFailure("throw", job, err)
}

func (h *ErrorHandler) logSendFailure(command string, job entities.Job, err error) {
	if err == nil {
		return
	}
	h.logger.Error("Failed to report job error", map[string]interface{}{
		"command": command,
		"jobKey":  job.Key,
		"error":   err.Error(),
	})
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, remaining int) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retriesLeft":      remaining,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
