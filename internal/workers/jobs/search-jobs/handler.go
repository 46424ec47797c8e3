package searchjobs

import (
	"context"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/jobsearch"
	"dental-jobs/internal/models"
	"dental-jobs/internal/store"
)

const TaskType = "search-jobs"

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
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.logger.Info("job search completed", map[string]interface{}{
		"jobKey": job.Key,
		"mode":   output.Mode,
		"total":  output.Total,
		"page":   output.Page,
	})
	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if res := validation.ValidateStruct(input); !res.Valid {
		return nil, errors.NewInvalidFilterFormatError(res.Error())
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = models.SortRelevance
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = h.config.DefaultPageSize
	}
	if pageSize > h.config.MaxPageSize {
		pageSize = h.config.MaxPageSize
	}
	page := input.Page
	if page < 1 {
		page = 1
	}

	var (
		out *Output
		err error
	)
	switch input.Mode {
	case "", ModeLocal:
		out, err = h.searchLocal(ctx, input.Filters, sortBy, page, pageSize)
	case ModeRemote:
		out, err = h.searchRemote(ctx, input.Filters, sortBy, page, pageSize)
	default:
		return nil, errors.NewInputValidationError("mode: must be local or remote")
	}
	if err != nil {
		return nil, err
	}

	metrics.JobSearchResults.WithLabelValues(TaskType).Observe(float64(len(out.Jobs)))
	return out, nil
}

// searchLocal loads every published job and runs the whole pipeline in memory.
func (h *Handler) searchLocal(ctx context.Context, f models.JobFilterState, sortBy models.SortOption, page, pageSize int) (*Output, error) {
	all, err := h.jobs.FetchJobs(ctx, models.JobQuery{Status: h.config.PublishedStatus})
	if err != nil {
		return nil, h.readError(err)
	}

	res := jobsearch.Search(all.Data, f, sortBy, page, pageSize)
	return &Output{
		Jobs:       res.Jobs,
		Total:      res.Total,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		SortBy:     sortBy,
		Mode:       ModeLocal,
	}, nil
}

// searchRemote lets the store page on status, keyword and location. Every
// predicate is re-applied to the returned page, then sorted, so total is
// the remote count.
func (h *Handler) searchRemote(ctx context.Context, f models.JobFilterState, sortBy models.SortOption, page, pageSize int) (*Output, error) {
	query := models.JobQuery{
		Status:   h.config.PublishedStatus,
		Keyword:  f.Keyword,
		Location: f.Location,
		Page:     page,
		Limit:    pageSize,
	}
	res, err := h.jobs.FetchJobs(ctx, query)
	if err != nil {
		return nil, h.readError(err)
	}

	pages := jobsearch.TotalPages(res.Count, pageSize)
	if clamped := jobsearch.ClampPage(page, pages); clamped != page {
		query.Page = clamped
		page = clamped
		if res, err = h.jobs.FetchJobs(ctx, query); err != nil {
			return nil, h.readError(err)
		}
	}

	return &Output{
		Jobs:       jobsearch.SortJobs(jobsearch.ApplyFilters(res.Data, f), sortBy),
		Total:      res.Count,
		Page:       page,
		TotalPages: pages,
		SortBy:     sortBy,
		Mode:       ModeRemote,
	}, nil
}

func (h *Handler) readError(err error) error {
	if stderrors.Is(err, store.ErrIndexNotFound) {
		return errors.NewIndexNotFoundError(h.config.Index)
	}
	return errors.NewSearchQueryFailedError(err)
}
