// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"career-workers/internal/catalog"
	"career-workers/internal/common/aws"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"
	"career-workers/internal/matching"

	ecr "career-workers/internal/workers/career/export-career-report"
	gcm "career-workers/internal/workers/career/generate-career-matches"
	gcr "career-workers/internal/workers/career/get-career-roadmap"
	sc "career-workers/internal/workers/career/search-careers"
	ll "career-workers/internal/workers/location/lookup-locations"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log, zapLog, err := logger.NewFromOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.App.Version,
		TraceStdout:    cfg.Observability.TraceStdout,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFromSettings(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("postgres schema setup failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Career catalog and engine ---
	source, err := catalog.NewSource(cfg.Matching.CatalogSource, pg.DB, cfg.Matching.CatalogVersion)
	if err != nil {
		zapLog.Fatal("catalog source invalid", zap.Error(err))
	}
	careers, err := source.Load(ctx)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.String("source", source.Name()), zap.Error(err))
	}
	metrics.CatalogCareers.Set(float64(careers.Len()))
	zapLog.Info("Career catalog loaded",
		zap.String("source", source.Name()),
		zap.String("version", careers.Version()),
		zap.Int("careers", careers.Len()),
	)

	locations, err := catalog.LoadEmbeddedLocations()
	if err != nil {
		zapLog.Fatal("location catalog load failed", zap.Error(err))
	}

	if cfg.Search.IndexOnStartup {
		indexer := catalog.NewIndexer(esClient.Client, cfg.Search.Index)
		if err := indexer.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("career index setup failed", zap.Error(err))
		}
		n, err := indexer.IndexAll(ctx, careers)
		if err != nil {
			zapLog.Fatal("career indexing failed", zap.Error(err))
		}
		zapLog.Info("Career catalog indexed", zap.String("index", cfg.Search.Index), zap.Int("documents", n))
	}

	engine, err := matching.NewFromSettings(cfg.Matching)
	if err != nil {
		zapLog.Fatal("matching engine config invalid", zap.Error(err))
	}

	// --- Report delivery clients ---
	var mailer *aws.Mailer
	var smsSender *aws.SMSSender
	if cfg.Report.Email.Enabled || cfg.Report.SMS.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Report.AWSRegion)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if cfg.Report.Email.Enabled {
			mailer = aws.NewMailer(aws.NewSESClient(awsCfg), cfg.Report.Email.FromEmail, aws.BreakerSettings{
				MaxFailures: cfg.Report.Breaker.MaxFailures,
				OpenTimeout: config.GetDuration(cfg.Report.Breaker.OpenTimeout),
				Interval:    config.GetDuration(cfg.Report.Breaker.Interval),
			}, log)
		}
		if cfg.Report.SMS.Enabled {
			smsSender = aws.NewSMSSender(aws.NewSNSClient(awsCfg), cfg.Report.SMS.SenderID,
				cfg.Report.SMS.RatePerSecond, cfg.Report.SMS.Burst)
		}
		zapLog.Info("Report delivery clients initialized",
			zap.Bool("email", mailer != nil),
			zap.Bool("sms", smsSender != nil),
		)
	}

	// --- Register workers ---
	inst := camunda.Instrumentation{
		Observability: obs,
		ErrorHandler:  errors.NewErrorHandler(log),
	}
	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.JobHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.NewWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       wcfg.TimeoutDuration(),
		}, handler, inst, zapLog))
	}
	timeout := func(taskType string) time.Duration {
		return config.GetWorkerConfig(cfg, taskType).TimeoutDuration()
	}

	if config.IsWorkerEnabled(cfg, gcm.TaskType) {
		handler := gcm.NewHandler(
			&gcm.Config{
				Timeout:         timeout(gcm.TaskType),
				ProfileCacheTTL: config.Seconds(cfg.Matching.ProfileCacheTTL),
				MaxInterests:    cfg.Matching.MaxInterests,
			},
			careers, engine, pg.DB, redis.Client, log,
		).WithRecorder(obs)
		start(gcm.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, gcr.TaskType) {
		handler := gcr.NewHandler(&gcr.Config{Timeout: timeout(gcr.TaskType)}, careers, log)
		start(gcr.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, sc.TaskType) {
		handler := sc.NewHandler(
			&sc.Config{
				Timeout:     timeout(sc.TaskType),
				Index:       cfg.Search.Index,
				DefaultSize: cfg.Search.DefaultSize,
				MaxSize:     cfg.Search.MaxSize,
				CacheTTL:    config.Seconds(cfg.Search.CacheTTL),
			},
			careers, esClient.Client, redis.Client, log,
		)
		start(sc.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, ecr.TaskType) {
		handler := ecr.NewHandler(
			&ecr.Config{
				Timeout:      timeout(ecr.TaskType),
				OutputDir:    cfg.Report.OutputDir,
				MaxInterests: cfg.Matching.MaxInterests,
			},
			careers, engine, log,
		)
		if mailer != nil {
			handler.WithMailer(mailer)
		}
		if smsSender != nil {
			handler.WithSMS(smsSender)
		}
		start(ecr.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, ll.TaskType) {
		handler := ll.NewHandler(&ll.Config{Timeout: timeout(ll.TaskType)}, locations, log)
		start(ll.TaskType, handler)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		for name, check := range map[string]func(context.Context) error{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    redis.Ping,
		} {
			if err := check(checkCtx); err != nil {
				checks[name] = err.Error()
				ready = false
				continue
			}
			checks[name] = "ok"
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not ready", http.StatusServiceUnavailable
		}
		writeStatus(w, code, map[string]interface{}{
			"status":  status,
			"checks":  checks,
			"catalog": careers.Len(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
