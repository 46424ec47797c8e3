package findsimilarjobs

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/jobsearch"
	"dental-jobs/internal/models"
	"dental-jobs/internal/store"
)

const TaskType = "find-similar-jobs"

type Handler struct {
	config *Config
	jobs   store.JobFetcher
	logger logger.Logger
}

func NewHandler(config *Config, jobs store.JobFetcher, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		jobs:   jobs,
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
	err := camunda.DecodeVariables(job, GetInputSchema(), &input)
	var output *Output
	if err == nil {
		output, err = h.Execute(ctx, &input)
	}
	if err != nil {
		code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	limit := h.config.DefaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}

	page, err := h.jobs.FetchJobs(ctx, models.JobQuery{Status: h.config.PublishedStatus})
	if err != nil {
		return nil, errors.NewRemoteReadError("jobs", err)
	}

	for _, job := range page.Data {
		if job.ID == input.JobID {
			similar := jobsearch.FindSimilarJobs(job, page.Data, limit)
			metrics.JobSearchResults.WithLabelValues(TaskType).Observe(float64(len(similar)))
			return &Output{JobID: job.ID, Jobs: similar}, nil
		}
	}
	return nil, errors.NewJobNotFoundError(input.JobID)
}
