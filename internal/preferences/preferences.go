// Package preferences tracks a seeker's saved and hidden jobs with the same
// optimistic toggle and exact-inverse rollback the pipeline uses for
// favorites.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/models"
	"dental-jobs/internal/pipeline"
)

var (
	ErrUnknownKind  = errors.New("unknown preference kind")
	ErrMissingActor = pipeline.ErrMissingActor
	ErrRemoteWrite  = pipeline.ErrRemoteWrite
)

// Writer persists one preference flag.
type Writer interface {
	SetJobPreference(ctx context.Context, userID, jobID string, kind models.PreferenceKind, enabled bool) error
}

type Result struct {
	IDs        pipeline.IDSet
	Enabled    bool
	Committed  bool
	RolledBack bool
}

// Set is one seeker's saved or hidden ids.
type Set struct {
	mu       sync.Mutex
	kind     models.PreferenceKind
	ids      pipeline.IDSet
	writer   Writer
	notifier pipeline.Notifier
	logger   logger.Logger
}

func NewSet(kind models.PreferenceKind, ids pipeline.IDSet, writer Writer, notifier pipeline.Notifier, log logger.Logger) (*Set, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if ids == nil {
		ids = pipeline.NewIDSet()
	}
	return &Set{kind: kind, ids: ids.Clone(), writer: writer, notifier: notifier, logger: log}, nil
}

func (s *Set) IDs() pipeline.IDSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Clone()
}

// Toggle flips jobID, writes the new flag and reverts exactly that flip if
// the write fails.
func (s *Set) Toggle(ctx context.Context, actor models.Actor, jobID string) (Result, error) {
	if actor.IsZero() {
		return Result{IDs: s.IDs()}, ErrMissingActor
	}

	s.mu.Lock()
	enabled := !s.ids.Has(jobID)
	if enabled {
		s.ids.Add(jobID)
	} else {
		s.ids.Remove(jobID)
	}
	s.mu.Unlock()

	s.notify(ctx, models.LevelSuccess, jobID, successMessage(s.kind, enabled))

	if err := s.writer.SetJobPreference(ctx, actor.UserID, jobID, s.kind, enabled); err != nil {
		s.mu.Lock()
		if enabled {
			s.ids.Remove(jobID)
		} else {
			s.ids.Add(jobID)
		}
		s.mu.Unlock()

		metrics.PipelineRollbacks.WithLabelValues(string(s.kind)).Inc()
		s.logger.Warn("preference write failed, rolled back", map[string]interface{}{
			"kind":  string(s.kind),
			"jobId": jobID,
			"error": err,
		})
		s.notify(ctx, models.LevelError, jobID, "Failed to update job preferences")

		return Result{IDs: s.IDs(), Enabled: !enabled, RolledBack: true},
			fmt.Errorf("%w: %s: %v", ErrRemoteWrite, s.kind, err)
	}

	return Result{IDs: s.IDs(), Enabled: enabled, Committed: true}, nil
}

func successMessage(kind models.PreferenceKind, enabled bool) string {
	switch {
	case kind == models.PreferenceSaved && enabled:
		return "Job saved"
	case kind == models.PreferenceSaved:
		return "Job removed from saved"
	case enabled:
		return "Job hidden"
	default:
		return "Job unhidden"
	}
}

func (s *Set) notify(ctx context.Context, level models.NotificationLevel, jobID, msg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, models.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		Subject:   jobID,
		Operation: string(s.kind),
		CreatedAt: time.Now().UTC(),
	})
}
