// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"dental-jobs/internal/common/config"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
)

// HandlerFunc is the signature every worker's Handle method satisfies.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in config.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler HandlerFunc,
	log logger.Logger,
	obs *observability.Observability,
) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jw
}

// Instrument wraps a handler with the active-jobs gauge, the duration
// histogram and a span per job.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		var finish func()
		if obs != nil {
			ctx, span := obs.StartSpan(context.Background(), taskType,
				attribute.Int64("jobKey", job.Key),
				attribute.Int64("processInstanceKey", job.ProcessInstanceKey),
			)
			finish = func() {
				elapsed := time.Since(start)
				obs.RecordJobProcessed(ctx, taskType, "handled")
				obs.RecordJobDuration(ctx, taskType, elapsed, "handled")
				observability.EndSpan(span, nil)
			}
		}

		handler(client, job)

		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if finish != nil {
			finish()
		}
	}
}
