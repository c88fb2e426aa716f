// internal/workers/career/generate-career-matches/handler.go
package generatecareermatches

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"career-workers/internal/catalog"
	"career-workers/internal/common/database"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/matching"
	"career-workers/internal/models"
	"career-workers/pkg/registry"
)

const (
	TaskType = "generate-career-matches"

	profileCachePrefix = "career:profile:"
	selectProfileQuery = `SELECT profile FROM user_profiles WHERE user_id = $1`
)

// MatchRecorder receives the number of matches returned per job.
type MatchRecorder interface {
	RecordMatches(ctx context.Context, count int)
}

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	engine   *matching.Engine
	db       *sql.DB
	profiles *database.JSONCache
	activity *registry.Activity
	errors   *errors.ErrorHandler
	recorder MatchRecorder
	logger   logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, engine *matching.Engine, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  cat,
		engine:   engine,
		db:       db,
		profiles: database.NewJSONCache(rdb, profileCachePrefix, config.ProfileCacheTTL),
		activity: activity,
		errors:   errors.NewErrorHandler(taskLog),
		logger:   taskLog,
	}
}

// WithRecorder attaches an otel match counter.
func (h *Handler) WithRecorder(r MatchRecorder) *Handler {
	h.recorder = r
	return h
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
	if h.catalog == nil || h.catalog.Len() == 0 {
		h.logger.Error("career catalog is empty", nil)
		return nil, errors.NewCatalogEmptyError()
	}

	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := h.checkProfile(profile); err != nil {
		return nil, err
	}

	result := h.engine.Run(h.catalog.Careers(), profile)
	if len(result.Matches) == 0 {
		return nil, errors.NewCatalogEmptyError()
	}

	if result.CandidateCount > result.EligibleCount {
		metrics.CandidatesAugmented.Inc()
	}
	for _, m := range result.Matches {
		metrics.CareerMatchScore.WithLabelValues(m.Career.ID).Observe(float64(m.MatchScore))
	}
	if h.recorder != nil {
		h.recorder.RecordMatches(ctx, len(result.Matches))
	}

	h.logger.Info("career matches generated", map[string]interface{}{
		"userId":         input.UserID,
		"topCareer":      result.Matches[0].Career.ID,
		"topScore":       result.Matches[0].MatchScore,
		"matches":        len(result.Matches),
		"eligibleCount":  result.EligibleCount,
		"candidateCount": result.CandidateCount,
	})

	return &Output{
		Matches:        result.Matches,
		EligibleCount:  result.EligibleCount,
		CandidateCount: result.CandidateCount,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.UserProfile, error) {
	if input.Profile != nil {
		return input.Profile, nil
	}
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("either profile or userId is required")
	}
	return h.loadProfile(ctx, input.UserID)
}

// checkProfile deduplicates interests, enforces the interest cap and runs
// the field checks the schema cannot express.
func (h *Handler) checkProfile(p *models.UserProfile) error {
	if err := p.Normalize(h.config.MaxInterests); err != nil {
		return errors.NewInvalidInputError(err.Error())
	}
	return nil
}

func (h *Handler) loadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile

	found, err := h.profiles.Get(ctx, userID, &profile)
	if err != nil {
		h.logger.Warn("profile cache read failed", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
	}
	metrics.CacheLookups.WithLabelValues("profile", metrics.CacheResult(found)).Inc()
	if found {
		return &profile, nil
	}

	if h.db == nil {
		return nil, errors.NewProfileNotFoundError(userID)
	}

	var raw []byte
	err = h.db.QueryRowContext(ctx, selectProfileQuery, userID).Scan(&raw)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("user_profile", err)
	}

	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("stored profile for %s: %v", userID, err))
	}

	if err := h.profiles.Set(ctx, userID, profile); err != nil {
		h.logger.Warn("profile cache write failed", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
	}
	return &profile, nil
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
