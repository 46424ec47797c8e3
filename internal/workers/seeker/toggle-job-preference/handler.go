package togglejobpreference

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
	"dental-jobs/internal/preferences"
)

const TaskType = "toggle-job-preference"

type Handler struct {
	config   *Config
	writer   preferences.Writer
	notifier notify.Notifier
	logger   logger.Logger
}

func NewHandler(config *Config, writer preferences.Writer, notifier notify.Notifier, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		writer:   writer,
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

// Execute saves/unsaves or hides/unhides one job for the seeker.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec := notify.NewRecorder()
	set, err := preferences.NewSet(input.Kind, pipeline.NewIDSet(input.CurrentIDs...), h.writer,
		notify.Fanout{rec, h.notifier}, h.logger)
	if err != nil {
		return nil, errors.NewInputValidationError(err.Error())
	}

	res, err := set.Toggle(ctx, input.Actor, input.JobID)
	if err != nil && !stderrors.Is(err, preferences.ErrRemoteWrite) {
		return nil, errors.NewInputValidationError(err.Error())
	}

	return &Output{
		IDs:           res.IDs.Slice(),
		Enabled:       res.Enabled,
		Committed:     res.Committed,
		RolledBack:    res.RolledBack,
		Notifications: rec.Notifications(),
	}, nil
}
