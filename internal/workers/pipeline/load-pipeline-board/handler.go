package loadpipelineboard

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"golang.org/x/sync/errgroup"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/models"
	"dental-jobs/internal/pipeline"
	"dental-jobs/internal/store"
)

const TaskType = "load-pipeline-board"

type Store interface {
	store.CandidateFetcher
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

	h.logger.Info("board loaded", map[string]interface{}{
		"jobKey": job.Key,
		"orgId":  input.OrgID,
		"jobId":  output.JobID,
		"total":  output.Total,
	})
	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
}

// Execute loads the organization's applications and the application
// counts side by side, then filters to one job and groups into columns.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		candidates []models.Candidate
		counts     map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = h.store.FetchCandidates(gctx, input.OrgID, "")
		if err != nil {
			return errors.NewRemoteReadError("candidates", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = h.store.FetchApplicationCounts(gctx)
		if err != nil {
			h.logger.Warn("application counts unavailable, counting locally", map[string]interface{}{
				"error": err,
			})
			counts = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	favorites := pipeline.Favorites(candidates)
	if input.FavoriteIDs != nil {
		favorites = pipeline.NewIDSet(input.FavoriteIDs...)
	}

	jobs := pipeline.DistinctJobs(candidates)
	jobID := input.JobID
	if jobID == "" && len(jobs) > 0 {
		jobID = jobs[0].ID
	}

	visible := pipeline.WithFavoriteFlags(
		pipeline.FilterByJobAndFavorite(candidates, jobID, favorites, input.FavoritesOnly), favorites)

	return &Output{
		JobID:       jobID,
		Columns:     pipeline.GroupByStage(visible),
		Total:       len(visible),
		Jobs:        summarize(jobs, candidates, counts),
		FavoriteIDs: favorites.Slice(),
		Candidates:  visible,
	}, nil
}

func summarize(jobs []pipeline.JobRef, candidates []models.Candidate, counts map[string]int) []JobSummary {
	if counts == nil {
		counts = make(map[string]int, len(jobs))
		for _, c := range candidates {
			counts[c.JobID]++
		}
	}
	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobSummary{ID: j.ID, Title: j.Title, ApplicationCount: counts[j.ID]})
	}
	return out
}
