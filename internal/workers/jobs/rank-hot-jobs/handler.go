package rankhotjobs

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"golang.org/x/sync/errgroup"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/jobsearch"
	"dental-jobs/internal/models"
	"dental-jobs/internal/store"
)

const TaskType = "rank-hot-jobs"

// Store supplies published jobs and per-job application counts.
type Store interface {
	store.JobFetcher
	store.CountFetcher
}

type Handler struct {
	config *Config
	store  Store
	logger logger.Logger
}

func NewHandler(config *Config, st Store, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
}

// Execute reads jobs and counts concurrently and ranks by count. Jobs with
// no applications rank as zero.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	limit := h.config.DefaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}

	var (
		jobs   []models.Job
		counts map[string]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := h.store.FetchJobs(gctx, models.JobQuery{Status: h.config.PublishedStatus})
		if err != nil {
			return errors.NewRemoteReadError("jobs", err)
		}
		jobs = page.Data
		return nil
	})
	g.Go(func() error {
		c, err := h.store.FetchApplicationCounts(gctx)
		if err != nil {
			return errors.NewRemoteReadError("application counts", err)
		}
		counts = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := jobsearch.RankHotJobs(jobs, counts, limit)
	metrics.JobSearchResults.WithLabelValues(TaskType).Observe(float64(len(ranked)))
	return &Output{Jobs: ranked}, nil
}
