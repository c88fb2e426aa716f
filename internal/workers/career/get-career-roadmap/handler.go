// internal/workers/career/get-career-roadmap/handler.go
package getcareerroadmap

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/catalog"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/pkg/registry"
)

const (
	TaskType = "get-career-roadmap"
)

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  cat,
		activity: activity,
		errors:   errors.NewErrorHandler(taskLog),
		logger:   taskLog,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.activity.DecodeVariables(job.Variables, &input); err != nil {
		h.failJob(client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	id := strings.TrimSpace(input.CareerID)
	if id == "" {
		return nil, errors.NewInvalidInputError("careerId is required")
	}
	if h.catalog == nil {
		return nil, errors.NewCatalogEmptyError()
	}

	career, ok := h.catalog.Get(id)
	if !ok {
		h.logger.Warn("career not found", map[string]interface{}{"careerId": id})
		return nil, errors.NewCareerNotFoundError(id)
	}

	return &Output{
		CareerID:      career.ID,
		Title:         career.Title,
		Salary:        career.FormatSalary(),
		TimeToAchieve: career.TimeToAchieve,
		Steps:         h.catalog.Roadmap(id),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
