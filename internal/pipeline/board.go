package pipeline

import (
	"context"
	"fmt"
	"sync"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
	"dental-jobs/internal/models"
)

// Notifier receives user-facing notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Store is the record-store surface the board writes through.
type Store interface {
	StatusWriter
	FavoriteWriter
	NotesWriter
}

// Result describes the outcome of one board mutation.
type Result struct {
	State      State
	Changed    bool
	Committed  bool
	RolledBack bool
}

// Board holds one employer's candidate list and applies mutations
// optimistically. The lock covers apply and rollback only; remote commits
// run unlocked so mutations may interleave.
type Board struct {
	mu       sync.Mutex
	state    State
	store    Store
	notifier Notifier
	logger   logger.Logger
}

func NewBoard(candidates []models.Candidate, favorites IDSet, store Store, notifier Notifier, log logger.Logger) *Board {
	if favorites == nil {
		favorites = Favorites(candidates)
	}
	return &Board{
		state:    State{Candidates: models.CloneCandidates(candidates), Favorites: favorites.Clone()},
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// State returns a copy of the current view with favorite flags synced to
// the favorite set.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return State{
		Candidates: WithFavoriteFlags(b.state.Candidates, b.state.Favorites),
		Favorites:  b.state.Favorites.Clone(),
	}
}

// Groups returns the six board columns for the current candidates.
func (b *Board) Groups() []StageGroup {
	return GroupByStage(b.State().Candidates)
}

func (b *Board) Move(ctx context.Context, actor models.Actor, id string, to models.JobStage) (Result, error) {
	if actor.IsZero() {
		return Result{State: b.State()}, ErrMissingActor
	}
	if !to.IsValid() {
		return Result{State: b.State()}, fmt.Errorf("%w: %q", ErrInvalidStage, to)
	}

	cmd := &MoveCommand{ID: id, To: to, Actor: actor, Writer: b.store}
	res, err := b.run(ctx, cmd)
	if res.Committed {
		metrics.PipelineTransitions.WithLabelValues(string(cmd.from), string(to)).Inc()
	}
	return res, err
}

func (b *Board) ToggleFavorite(ctx context.Context, actor models.Actor, id string) (Result, error) {
	if actor.IsZero() {
		return Result{State: b.State()}, ErrMissingActor
	}
	return b.run(ctx, &FavoriteCommand{ID: id, Actor: actor, Writer: b.store})
}

func (b *Board) UpdateNotes(ctx context.Context, actor models.Actor, id, notes string) (Result, error) {
	if actor.IsZero() {
		return Result{State: b.State()}, ErrMissingActor
	}
	return b.run(ctx, &NotesCommand{ID: id, Notes: notes, Actor: actor, Writer: b.store})
}

func (b *Board) run(ctx context.Context, cmd boardCommand) (Result, error) {
	b.mu.Lock()
	b.state = cmd.Apply(b.state)
	b.mu.Unlock()

	if !cmd.changed() {
		return Result{State: b.State()}, nil
	}

	b.notify(ctx, cmd.succeeded())

	if err := cmd.Commit(ctx); err != nil {
		b.mu.Lock()
		b.state = cmd.Rollback(b.state)
		b.mu.Unlock()

		metrics.PipelineRollbacks.WithLabelValues(cmd.name()).Inc()
		b.logger.Warn("remote write failed, rolled back", map[string]interface{}{
			"operation": cmd.name(),
			"error":     err,
		})
		b.notify(ctx, cmd.failed())

		return Result{State: b.State(), Changed: true, RolledBack: true},
			fmt.Errorf("%w: %s: %v", ErrRemoteWrite, cmd.name(), err)
	}

	return Result{State: b.State(), Changed: true, Committed: true}, nil
}

func (b *Board) notify(ctx context.Context, n models.Notification) {
	if b.notifier != nil {
		b.notifier.Notify(ctx, n)
	}
}
