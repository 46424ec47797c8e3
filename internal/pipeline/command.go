package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dental-jobs/internal/models"
)

// State is the board's in-memory view.
type State struct {
	Candidates []models.Candidate
	Favorites  IDSet
}

// Command is one optimistic mutation: Apply runs before the remote write,
// Commit performs it and Rollback undoes Apply when Commit fails.
type Command interface {
	Apply(State) State
	Commit(ctx context.Context) error
	Rollback(State) State
}

// StatusWriter persists a stage change together with its event record.
type StatusWriter interface {
	UpdateApplicationStatus(ctx context.Context, change models.StatusChange) error
}

type FavoriteWriter interface {
	SetFavorite(ctx context.Context, applicationID string, isFavorite bool, actorID string) error
}

type NotesWriter interface {
	UpdateNotes(ctx context.Context, applicationID, notes, actorID string) error
}

// boardCommand is what Board needs beyond Command to report on a mutation.
type boardCommand interface {
	Command
	name() string
	changed() bool
	succeeded() models.Notification
	failed() models.Notification
}

func newNotification(level models.NotificationLevel, operation, subject, message string) models.Notification {
	return models.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Subject:   subject,
		Operation: operation,
		CreatedAt: time.Now().UTC(),
	}
}

func candidateName(candidates []models.Candidate, id string) string {
	if i := indexOf(candidates, id); i >= 0 && candidates[i].Name != "" {
		return candidates[i].Name
	}
	return id
}

// --- move ---

type MoveCommand struct {
	ID     string
	To     models.JobStage
	Actor  models.Actor
	Writer StatusWriter

	snapshot  []models.Candidate
	from      models.JobStage
	candidate string
	moved     bool
}

// Apply snapshots the full candidate list before moving.
func (c *MoveCommand) Apply(s State) State {
	c.snapshot = models.CloneCandidates(s.Candidates)
	c.candidate = candidateName(s.Candidates, c.ID)
	if i := indexOf(s.Candidates, c.ID); i >= 0 {
		c.from = s.Candidates[i].Status
	}

	next, moved := MoveCandidate(s.Candidates, c.ID, c.To)
	c.moved = moved
	return State{Candidates: next, Favorites: s.Favorites}
}

func (c *MoveCommand) Commit(ctx context.Context) error {
	return c.Writer.UpdateApplicationStatus(ctx, models.StatusChange{
		EventID:       uuid.NewString(),
		ApplicationID: c.ID,
		FromStatus:    c.from,
		ToStatus:      c.To,
		ActorID:       c.Actor.UserID,
		ActorRole:     c.Actor.Role,
		ChangedAt:     time.Now().UTC(),
	})
}

// Rollback restores the pre-move list verbatim.
func (c *MoveCommand) Rollback(s State) State {
	return State{Candidates: c.snapshot, Favorites: s.Favorites}
}

func (c *MoveCommand) name() string  { return "move" }
func (c *MoveCommand) changed() bool { return c.moved }

func (c *MoveCommand) succeeded() models.Notification {
	return newNotification(models.LevelSuccess, c.name(), c.ID,
		fmt.Sprintf("%s has moved to %s", c.candidate, c.To))
}

func (c *MoveCommand) failed() models.Notification {
	return newNotification(models.LevelError, c.name(), c.ID,
		fmt.Sprintf("Failed to move %s. Please try again.", c.candidate))
}

// --- favorite ---

type FavoriteCommand struct {
	ID     string
	Actor  models.Actor
	Writer FavoriteWriter

	added     bool
	toggled   bool
	candidate string
}

func (c *FavoriteCommand) Apply(s State) State {
	c.candidate = candidateName(s.Candidates, c.ID)
	next, toggled := ToggleFavorite(s.Favorites, s.Candidates, c.ID)
	c.toggled = toggled
	c.added = toggled && next.Has(c.ID)
	return State{Candidates: s.Candidates, Favorites: next}
}

func (c *FavoriteCommand) Commit(ctx context.Context) error {
	return c.Writer.SetFavorite(ctx, c.ID, c.added, c.Actor.UserID)
}

// Rollback applies the exact inverse of Apply to the current set, leaving
// other ids toggled in the meantime untouched.
func (c *FavoriteCommand) Rollback(s State) State {
	next := s.Favorites.Clone()
	if c.added {
		next.Remove(c.ID)
	} else {
		next.Add(c.ID)
	}
	return State{Candidates: s.Candidates, Favorites: next}
}

// Added reports the membership Apply produced.
func (c *FavoriteCommand) Added() bool { return c.added }

func (c *FavoriteCommand) name() string  { return "favorite" }
func (c *FavoriteCommand) changed() bool { return c.toggled }

func (c *FavoriteCommand) succeeded() models.Notification {
	msg := fmt.Sprintf("%s removed from favorites", c.candidate)
	if c.added {
		msg = fmt.Sprintf("%s added to favorites", c.candidate)
	}
	return newNotification(models.LevelSuccess, c.name(), c.ID, msg)
}

func (c *FavoriteCommand) failed() models.Notification {
	return newNotification(models.LevelError, c.name(), c.ID,
		fmt.Sprintf("Failed to update favorites for %s", c.candidate))
}

// --- notes ---

type NotesCommand struct {
	ID     string
	Notes  string
	Actor  models.Actor
	Writer NotesWriter

	snapshot  []models.Candidate
	edited    bool
	candidate string
}

func (c *NotesCommand) Apply(s State) State {
	c.snapshot = models.CloneCandidates(s.Candidates)
	c.candidate = candidateName(s.Candidates, c.ID)
	next, edited := UpdateNotes(s.Candidates, c.ID, c.Notes)
	c.edited = edited
	return State{Candidates: next, Favorites: s.Favorites}
}

func (c *NotesCommand) Commit(ctx context.Context) error {
	return c.Writer.UpdateNotes(ctx, c.ID, c.Notes, c.Actor.UserID)
}

func (c *NotesCommand) Rollback(s State) State {
	return State{Candidates: c.snapshot, Favorites: s.Favorites}
}

func (c *NotesCommand) name() string  { return "notes" }
func (c *NotesCommand) changed() bool { return c.edited }

func (c *NotesCommand) succeeded() models.Notification {
	return newNotification(models.LevelSuccess, c.name(), c.ID, fmt.Sprintf("Notes saved for %s", c.candidate))
}

func (c *NotesCommand) failed() models.Notification {
	return newNotification(models.LevelError, c.name(), c.ID, fmt.Sprintf("Failed to save notes for %s", c.candidate))
}
