// internal/workers/career/search-careers/handler.go
package searchcareers

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"career-workers/internal/catalog"
	"career-workers/internal/common/database"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/models"
	"career-workers/internal/workers/career/search-careers/queries"
	"career-workers/pkg/registry"
)

const (
	TaskType = "search-careers"

	searchCachePrefix = "career:search:"
)

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	es       *elasticsearch.Client
	cache    *database.JSONCache
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, es *elasticsearch.Client, rdb *redis.Client, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  cat,
		es:       es,
		cache:    database.NewJSONCache(rdb, searchCachePrefix, config.CacheTTL),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	text := strings.TrimSpace(input.Query)
	if text == "" {
		return nil, errors.NewInvalidInputError("query is required")
	}
	q := queries.CareerQuery{
		Index: h.config.Index,
		Text:  text,
		Type:  input.Type,
		Size:  h.pageSize(input.Size),
	}

	key := cacheKey(q)
	var cached Output
	found, err := h.cache.Get(ctx, key, &cached)
	if err != nil {
		h.logger.Warn("search cache read failed", map[string]interface{}{"error": err})
	}
	metrics.CacheLookups.WithLabelValues("search", metrics.CacheResult(found)).Inc()
	if found {
		cached.Cached = true
		return &cached, nil
	}

	if h.es == nil {
		return nil, errors.NewSearchQueryFailedError(q.Index, stderrors.New("search backend not configured"))
	}

	result, err := queries.Execute(ctx, h.es, q)
	if err != nil {
		return nil, h.mapSearchError(ctx, q.Index, err)
	}

	out := &Output{
		Results: make([]SearchResult, 0, len(result.Hits)),
		Total:   result.Total,
	}
	for _, hit := range result.Hits {
		career, ok := h.lookup(hit.ID)
		if !ok {
			h.logger.Warn("indexed career missing from catalog", map[string]interface{}{"careerId": hit.ID})
			continue
		}
		out.Results = append(out.Results, SearchResult{
			CareerID:      career.ID,
			Title:         career.Title,
			Type:          string(career.Type),
			Salary:        career.FormatSalary(),
			TimeToAchieve: career.TimeToAchieve,
			Score:         hit.Score,
		})
	}

	if err := h.cache.Set(ctx, key, out); err != nil {
		h.logger.Warn("search cache write failed", map[string]interface{}{"error": err})
	}

	h.logger.Info("career search completed", map[string]interface{}{
		"query":   text,
		"results": len(out.Results),
		"total":   out.Total,
		"tookMs":  result.Took,
	})
	return out, nil
}

func (h *Handler) lookup(id string) (*models.Career, bool) {
	if h.catalog == nil {
		return nil, false
	}
	return h.catalog.Get(id)
}

func (h *Handler) pageSize(requested int) int {
	size := requested
	if size <= 0 {
		size = h.config.DefaultSize
	}
	if h.config.MaxSize > 0 && size > h.config.MaxSize {
		size = h.config.MaxSize
	}
	return size
}

func (h *Handler) mapSearchError(ctx context.Context, index string, err error) error {
	switch {
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewSearchTimeoutError(index)
	case stderrors.Is(err, queries.ErrIndexNotFound):
		return errors.NewIndexNotFoundError(index)
	default:
		return errors.NewSearchQueryFailedError(index, err)
	}
}

func cacheKey(q queries.CareerQuery) string {
	return fmt.Sprintf("%s|%s|%s|%d", q.Index, strings.ToLower(q.Text), q.Type, q.Size)
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
