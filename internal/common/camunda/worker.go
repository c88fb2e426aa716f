// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"
)

// JobHandler is implemented by every task handler. Handlers complete or
// fail the job themselves.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

// Instrumentation is shared by all workers of one process. Every field is optional.
type Instrumentation struct {
	Observability *observability.Observability
	ErrorHandler  *errors.ErrorHandler
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	opts WorkerOptions,
	handler JobHandler,
	inst Instrumentation,
	logger *zap.Logger,
) *CamundaWorker {
	log := logger.With(zap.String("taskType", opts.TaskType))

	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(Instrument(opts.TaskType, handler.Handle, inst, log)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}
	jobWorker := step.Open()

	log.Info("worker started",
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: opts.TaskType,
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop closes the job stream and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker")
	w.worker.Close()
	w.worker.AwaitClose()
}

// Instrument wraps handle with the active-jobs gauge, the duration
// histogram and a job span. A panicking handler is recovered and the job is
// failed as INTERNAL_ERROR.
func Instrument(taskType string, handle worker.JobHandler, inst Instrumentation, log *zap.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()

		ctx := context.Background()
		var span trace.Span
		if inst.Observability != nil {
			ctx, span = inst.Observability.StartJobSpan(ctx, taskType, job.Key)
		}

		status := "handled"
		var jobErr error

		defer func() {
			if r := recover(); r != nil {
				status = "panic"
				jobErr = errors.NewInternalError(fmt.Errorf("handler panic: %v", r))
				log.Error("handler panicked",
					zap.Int64("jobKey", job.Key),
					zap.Any("panic", r),
				)
				metrics.WorkerJobsFailed.WithLabelValues(taskType, string(errors.ErrCodeInternal)).Inc()
				if inst.ErrorHandler != nil && client != nil {
					inst.ErrorHandler.HandleJobError(ctx, client, job, jobErr)
				}
			}

			duration := time.Since(start)
			active.Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(duration.Seconds())
			if inst.Observability != nil {
				inst.Observability.RecordJob(ctx, taskType, status, duration)
			}
			if span != nil {
				observability.EndJobSpan(span, jobErr)
			}
		}()

		handle(client, job)
	}
}
