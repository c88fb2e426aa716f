// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler handles job errors with standardized error handling
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Outcome is what the handler will do with a failed job.
type Outcome struct {
	Error   *BPMNError
	Retries int
	Throw   bool
}

// Decide picks between failing the job with retries and throwing a BPMN error.
// Retries never exceed what the job has left.
func Decide(err error, jobRetries int32) Outcome {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	if bpmnErr.Retries == 0 || jobRetries <= 0 {
		return Outcome{Error: bpmnErr, Throw: true}
	}
	retries := bpmnErr.Retries
	if int(jobRetries) < retries {
		retries = int(jobRetries)
	}
	// Zeebe treats the value as remaining attempts after this one.
	return Outcome{Error: bpmnErr, Retries: retries - 1}
}

// Normalize ensures we always have a StandardError
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	out := Decide(err, job.Retries)
	h.logError(job, Normalize(err), out)

	vars, _ := json.Marshal(out.Error.ToErrorVariables())
	if out.Throw {
		h.throwBPMNError(ctx, client, job, out.Error, string(vars))
		return
	}
	h.failJobWithRetries(ctx, client, job, out, string(vars))
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, out Outcome, vars string) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(out.Retries)).
		ErrorMessage(out.Error.Message)

	if withVars, err := cmd.VariablesFromString(vars); err == nil {
		if _, err := withVars.Send(ctx); err != nil {
			h.logger.Error("Failed to send fail job command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
		}
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send fail job command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, vars string) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if withVars, err := cmd.VariablesFromString(vars); err == nil {
		if _, err := withVars.Send(ctx); err != nil {
			h.logger.Error("Failed to send throw error command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
		}
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send throw error command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, out Outcome) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    out.Error.Code,
		"message":          out.Error.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          out.Retries,
		"thrown":           out.Throw,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
