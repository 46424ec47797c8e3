// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dental-jobs/internal/common/aws"
	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/config"
	"dental-jobs/internal/common/database"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/observability"
	"dental-jobs/internal/models"
	"dental-jobs/internal/notify"
	"dental-jobs/internal/store"

	// Job search workers (3)
	fsj "dental-jobs/internal/workers/jobs/find-similar-jobs"
	rhj "dental-jobs/internal/workers/jobs/rank-hot-jobs"
	sj "dental-jobs/internal/workers/jobs/search-jobs"

	// Employer pipeline workers (4)
	lpb "dental-jobs/internal/workers/pipeline/load-pipeline-board"
	mc "dental-jobs/internal/workers/pipeline/move-candidate"
	tf "dental-jobs/internal/workers/pipeline/toggle-favorite"
	ucn "dental-jobs/internal/workers/pipeline/update-candidate-notes"

	// Seeker workers (1)
	tjp "dental-jobs/internal/workers/seeker/toggle-job-preference"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// jobCatalog pairs the configured job source with the cached counts.
type jobCatalog struct {
	store.JobFetcher
	store.CountFetcher
}

// boardSource pairs the candidate store with the cached counts.
type boardSource struct {
	store.CandidateFetcher
	store.CountFetcher
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFromOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	log.Info("Starting worker manager...", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"jobSource":   cfg.Jobs.Source,
	})

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()
	if err := obs.EnableTracing(cfg.Observability.JaegerEndpoint); err != nil {
		log.Warn("tracing disabled", map[string]interface{}{"error": err.Error()})
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected successfully", nil)

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		fatal(log, "postgres failed after retries", err)
	}
	defer pg.Close()
	log.Info("PostgreSQL connected successfully", nil)

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		fatal(log, "redis failed after retries", err)
	}
	defer redis.Close()
	log.Info("Redis connected successfully", nil)

	records := store.NewPostgresStore(pg.DB, log)
	counts := store.NewCountCache(records, redis.Client, config.GetDuration(cfg.Jobs.CountsCacheTTL), log)

	// --- Job source: Postgres, or Elasticsearch with retry ---
	var jobs store.JobFetcher = records
	if cfg.Jobs.Source == config.JobSourceElasticsearch {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			fatal(log, "elasticsearch failed after retries", err)
		}
		if ok, err := es.IndexExists(ctx, cfg.Jobs.Index); err != nil || !ok {
			log.Warn("job index not available yet", map[string]interface{}{"index": cfg.Jobs.Index, "exists": ok})
		}
		jobs = store.NewElasticJobStore(es.Client, cfg.Jobs.Index)
		log.Info("Elasticsearch connected successfully", nil)
	}

	notifier := buildNotifier(ctx, cfg, log)

	// --- Register workers ---
	client := zeebe.GetClient()
	wc := func(taskType string) config.WorkerConfig { return config.GetWorkerConfig(cfg, taskType) }
	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.HandlerFunc) {
		if jw := camunda.StartWorker(client, taskType, wc(taskType), handler, log, obs); jw != nil {
			workers = append(workers, jw)
		}
	}

	// --- 1. Employer pipeline ---
	start(mc.TaskType, mc.NewHandler(mc.NewConfig(wc(mc.TaskType)), records, notifier, log).Handle)
	start(tf.TaskType, tf.NewHandler(tf.NewConfig(wc(tf.TaskType)), records, notifier, log).Handle)
	start(ucn.TaskType, ucn.NewHandler(ucn.NewConfig(wc(ucn.TaskType)), records, notifier, log).Handle)
	start(lpb.TaskType, lpb.NewHandler(lpb.NewConfig(wc(lpb.TaskType)), boardSource{records, counts}, log).Handle)

	// --- 2. Job search ---
	start(sj.TaskType, sj.NewHandler(sj.NewConfig(wc(sj.TaskType), cfg.Jobs), jobs, log).Handle)
	start(fsj.TaskType, fsj.NewHandler(fsj.NewConfig(wc(fsj.TaskType), cfg.Jobs), jobs, log).Handle)
	start(rhj.TaskType, rhj.NewHandler(rhj.NewConfig(wc(rhj.TaskType), cfg.Jobs), jobCatalog{jobs, counts}, log).Handle)

	// --- 3. Seeker preferences ---
	start(tjp.TaskType, tjp.NewHandler(tjp.NewConfig(wc(tjp.TaskType)), records, notifier, log).Handle)

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		rctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok", "redis": "ok"}
		status := http.StatusOK
		for name, check := range map[string]func(context.Context) error{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    redis.Ping,
		} {
			if err := check(rctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.Observability.HTTPAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	notifier.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
}

// buildNotifier mirrors pipeline notifications to SNS and SES when either
// channel is enabled. It returns nil when both are off; a nil dispatcher
// drops everything.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) *notify.Dispatcher {
	var sinks []notify.Sink
	n := cfg.Notifications

	if n.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, n.AWS.Region)
		if err != nil {
			fatal(log, "sns client init failed", err)
		}
		sinks = append(sinks, notify.NewSNSSink(client, n.SNS.TopicARN))
	}
	if n.Email.Enabled {
		client, err := aws.NewSESClient(ctx, n.AWS.Region)
		if err != nil {
			fatal(log, "ses client init failed", err)
		}
		sinks = append(sinks, notify.NewSESSink(client, n.Email.FromEmail, n.Email.Recipients))
	}
	if len(sinks) == 0 {
		return nil
	}

	log.Info("notification sinks enabled", map[string]interface{}{"count": len(sinks)})
	return notify.NewDispatcher(log, []models.NotificationLevel{models.LevelSuccess, models.LevelError}, sinks...)
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
