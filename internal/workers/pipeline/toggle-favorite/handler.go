package togglefavorite

import (
	"context"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/notify"
	"dental-jobs/internal/pipeline"
	"dental-jobs/internal/store"
)

const TaskType = "toggle-favorite"

type Store interface {
	store.CandidateFetcher
	pipeline.Store
}

type Handler struct {
	config   *Config
	store    Store
	notifier notify.Notifier
	logger   logger.Logger
}

func NewHandler(config *Config, st Store, notifier notify.Notifier, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		store:    st,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

// Execute flips one candidate's favorite flag. A nil favoriteIds derives
// the set from the candidates' favorite flags.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Actor.IsZero() {
		return nil, errors.NewInputValidationError("actor.userId is required")
	}

	candidates := input.Candidates
	if candidates == nil {
		if input.OrgID == "" {
			return nil, errors.NewInputValidationError("orgId is required when candidates are not provided")
		}
		var err error
		candidates, err = h.store.FetchCandidates(ctx, input.OrgID, input.JobID)
		if err != nil {
			return nil, errors.NewRemoteReadError("candidates", err)
		}
	}

	var favorites pipeline.IDSet
	if input.FavoriteIDs != nil {
		favorites = pipeline.NewIDSet(input.FavoriteIDs...)
	}

	rec := notify.NewRecorder()
	board := pipeline.NewBoard(candidates, favorites, h.store, notify.Fanout{rec, h.notifier}, h.logger)

	res, err := board.ToggleFavorite(ctx, input.Actor, input.CandidateID)
	if err != nil && !stderrors.Is(err, pipeline.ErrRemoteWrite) {
		return nil, errors.NewInputValidationError(err.Error())
	}

	return &Output{
		FavoriteIDs:   res.State.Favorites.Slice(),
		Favorite:      res.State.Favorites.Has(input.CandidateID),
		Changed:       res.Changed,
		Committed:     res.Committed,
		RolledBack:    res.RolledBack,
		Notifications: rec.Notifications(),
	}, nil
}
