// internal/workers/location/lookup-locations/handler.go
package lookuplocations

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/catalog"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/models"
	"career-workers/pkg/registry"
)

const (
	TaskType = "lookup-locations"
)

type Handler struct {
	config    *Config
	locations *catalog.Locations
	activity  *registry.Activity
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, locations *catalog.Locations, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		locations: locations,
		activity:  activity,
		errors:    errors.NewErrorHandler(taskLog),
		logger:    taskLog,
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
	state := strings.TrimSpace(input.State)
	if state == "" {
		return nil, errors.NewInvalidInputError("state is required")
	}

	out := &Output{
		State:          state,
		Districts:      []string{},
		Municipalities: []models.Municipality{},
		Nearby:         []string{catalog.NoLocalOpportunities},
	}
	if h.locations == nil {
		return out, nil
	}

	s, ok := h.locations.State(state)
	if !ok {
		h.logger.Debug("state not in location catalog", map[string]interface{}{"state": state})
		return out, nil
	}

	out.State = s.Name
	out.StateCode = s.Code
	out.Known = true
	out.Districts = h.locations.Districts(s.Name)
	out.Nearby = h.locations.NearbyForState(s.Name)
	if district := strings.TrimSpace(input.District); district != "" {
		out.Municipalities = h.locations.Municipalities(s.Name, district)
	}
	return out, nil
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
