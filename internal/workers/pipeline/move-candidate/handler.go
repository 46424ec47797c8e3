package movecandidate

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"dental-jobs/internal/common/camunda"
	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/models"
	"dental-jobs/internal/notify"
	"dental-jobs/internal/pipeline"
	"dental-jobs/internal/store"
)

const TaskType = "move-candidate"

// Store is what the worker needs from the record store.
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

// NewHandler wires the worker. notifier may be nil.
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
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.logger.Info("candidate moved", map[string]interface{}{
		"jobKey":      job.Key,
		"candidateId": input.CandidateID,
		"newStatus":   input.NewStatus,
		"changed":     output.Changed,
		"rolledBack":  output.RolledBack,
	})
	camunda.CompleteJob(ctx, client, job, output, h.logger)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
}

// Execute moves one candidate on the board. A rejected write is not an
// error: the output carries the restored list and rolledBack=true.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	stage, err := models.ParseStage(input.NewStatus)
	if err != nil {
		return nil, errors.NewInvalidStageError(input.NewStatus)
	}
	if input.Actor.IsZero() {
		return nil, errors.NewInputValidationError("actor.userId is required")
	}

	candidates := input.Candidates
	if candidates == nil {
		if input.OrgID == "" {
			return nil, errors.NewInputValidationError("orgId is required when candidates are not provided")
		}
		candidates, err = h.store.FetchCandidates(ctx, input.OrgID, input.JobID)
		if err != nil {
			return nil, errors.NewRemoteReadError("candidates", err)
		}
	}

	rec := notify.NewRecorder()
	board := pipeline.NewBoard(candidates, nil, h.store, notify.Fanout{rec, h.notifier}, h.logger)

	res, err := board.Move(ctx, input.Actor, input.CandidateID, stage)
	if err != nil && !stderrors.Is(err, pipeline.ErrRemoteWrite) {
		return nil, mapBoardError(err)
	}

	return &Output{
		Candidates:    res.State.Candidates,
		Changed:       res.Changed,
		Committed:     res.Committed,
		RolledBack:    res.RolledBack,
		Notifications: rec.Notifications(),
	}, nil
}

func mapBoardError(err error) error {
	switch {
	case stderrors.Is(err, pipeline.ErrInvalidStage):
		return errors.NewInvalidStageError(err.Error())
	case stderrors.Is(err, pipeline.ErrMissingActor):
		return errors.NewInputValidationError(err.Error())
	default:
		return fmt.Errorf("move candidate: %w", err)
	}
}
