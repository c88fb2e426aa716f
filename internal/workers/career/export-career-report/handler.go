// internal/workers/career/export-career-report/handler.go
package exportcareerreport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"career-workers/internal/catalog"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/matching"
	"career-workers/internal/models"
	"career-workers/internal/report"
	"career-workers/pkg/registry"
)

const (
	TaskType = "export-career-report"

	channelEmail = "email"
	channelSMS   = "sms"
)

// Mailer delivers the plain-text report summary.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

// SMSSender delivers the one-line notification.
type SMSSender interface {
	Send(ctx context.Context, phone, text string) (string, error)
}

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	engine   *matching.Engine
	mailer   Mailer
	sms      SMSSender
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, engine *matching.Engine, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  cat,
		engine:   engine,
		activity: activity,
		errors:   errors.NewErrorHandler(taskLog),
		logger:   taskLog,
	}
}

func (h *Handler) WithMailer(m Mailer) *Handler {
	h.mailer = m
	return h
}

func (h *Handler) WithSMS(s SMSSender) *Handler {
	h.sms = s
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
	if input.Profile == nil {
		return nil, errors.NewInvalidInputError("profile is required")
	}
	if h.catalog == nil || h.catalog.Len() == 0 {
		return nil, errors.NewCatalogEmptyError()
	}

	profile := input.Profile
	if err := profile.Normalize(h.config.MaxInterests); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}

	careers := h.catalog.Careers()
	matches := h.engine.Match(careers, profile)

	selected, err := h.selectMatch(careers, profile, matches, strings.TrimSpace(input.CareerID))
	if err != nil {
		return nil, err
	}

	data := &report.Data{
		Profile:     *profile,
		Matches:     matches,
		Selected:    selected,
		GeneratedAt: time.Now().UTC(),
	}

	path, err := report.Save(h.config.OutputDir, data)
	if err != nil {
		h.logger.Error("failed to write report", map[string]interface{}{
			"careerId": selected.Career.ID,
			"error":    err,
		})
		return nil, errors.NewReportGenerationFailedError(err)
	}

	out := &Output{
		ReportID:    uuid.New().String(),
		CareerID:    selected.Career.ID,
		MatchScore:  selected.MatchScore,
		FileName:    filepath.Base(path),
		Path:        path,
		GeneratedAt: data.GeneratedAt,
	}

	if err := h.deliver(ctx, input, data, out); err != nil {
		h.discard(path)
		return nil, err
	}

	h.logger.Info("career report exported", map[string]interface{}{
		"reportId":  out.ReportID,
		"careerId":  out.CareerID,
		"score":     out.MatchScore,
		"path":      out.Path,
		"emailSent": out.EmailSent,
		"smsSent":   out.SMSSent,
	})
	return out, nil
}

// selectMatch returns the requested career's match, scoring it directly when
// it did not make the ranked list, or the top match when no id is given.
func (h *Handler) selectMatch(careers []models.Career, p *models.UserProfile, matches []models.CareerMatch, careerID string) (models.CareerMatch, error) {
	if careerID == "" {
		if len(matches) == 0 {
			return models.CareerMatch{}, errors.NewCatalogEmptyError()
		}
		return matches[0], nil
	}
	for _, m := range matches {
		if m.Career.ID == careerID {
			return m, nil
		}
	}
	m, ok := h.engine.MatchCareer(careers, p, careerID)
	if !ok {
		return models.CareerMatch{}, errors.NewCareerNotFoundError(careerID)
	}
	return m, nil
}

// deliver sends the requested notifications. The job fails only when every
// attempted channel failed; a partial delivery is reported in the output.
func (h *Handler) deliver(ctx context.Context, input *Input, data *report.Data, out *Output) error {
	var (
		attempted int
		firstErr  error
		failedOn  string
	)

	if email := strings.TrimSpace(input.Email); email != "" {
		if h.mailer == nil {
			h.recordDelivery(channelEmail, "skipped")
			h.logger.Warn("email requested but delivery is disabled", nil)
		} else {
			attempted++
			id, err := h.mailer.Send(ctx, email, report.EmailSubject(data), report.EmailBody(data))
			if err != nil {
				h.recordDelivery(channelEmail, "failed")
				h.logger.Warn("report email failed", map[string]interface{}{"error": err})
				firstErr, failedOn = err, channelEmail
			} else {
				h.recordDelivery(channelEmail, "sent")
				h.logger.Debug("report email sent", map[string]interface{}{"messageId": id})
				out.EmailSent = true
			}
		}
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" {
		if h.sms == nil {
			h.recordDelivery(channelSMS, "skipped")
			h.logger.Warn("sms requested but delivery is disabled", nil)
		} else {
			attempted++
			id, err := h.sms.Send(ctx, phone, report.SMSText(data))
			if err != nil {
				h.recordDelivery(channelSMS, "failed")
				h.logger.Warn("report sms failed", map[string]interface{}{"error": err})
				if firstErr == nil {
					firstErr, failedOn = err, channelSMS
				}
			} else {
				h.recordDelivery(channelSMS, "sent")
				h.logger.Debug("report sms sent", map[string]interface{}{"messageId": id})
				out.SMSSent = true
			}
		}
	}

	if attempted > 0 && !out.EmailSent && !out.SMSSent {
		return errors.NewNotificationSendFailedError(failedOn, firstErr)
	}
	return nil
}

// discard removes a report whose delivery failed the job.
func (h *Handler) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove undelivered report", map[string]interface{}{
			"path":  path,
			"error": err,
		})
	}
}

func (h *Handler) recordDelivery(channel, status string) {
	metrics.ReportDeliveries.WithLabelValues(channel, status).Inc()
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
