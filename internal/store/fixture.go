package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"dental-jobs/internal/jobsearch"
	"dental-jobs/internal/models"
)

// candidateRecord is one row of the candidates fixture file.
type candidateRecord struct {
	OrgID string `json:"orgId"`
	models.Candidate
}

// JSONStore is a file-backed record store for local runs. Candidate
// writes are persisted back to CandidatesPath; job preferences live in
// memory only.
type JSONStore struct {
	JobsPath       string
	CandidatesPath string
	CountsPath     string

	mu          sync.Mutex
	preferences map[string]map[models.PreferenceKind]map[string]bool
}

func NewJSONStore(jobsPath, candidatesPath, countsPath string) *JSONStore {
	return &JSONStore{
		JobsPath:       jobsPath,
		CandidatesPath: candidatesPath,
		CountsPath:     countsPath,
		preferences:    make(map[string]map[models.PreferenceKind]map[string]bool),
	}
}

func readFixture(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *JSONStore) loadCandidates() ([]candidateRecord, error) {
	var recs []candidateRecord
	if err := readFixture(s.CandidatesPath, &recs); err != nil {
		return nil, fmt.Errorf("%w: candidates fixture: %v", ErrReadFailed, err)
	}
	return recs, nil
}

func (s *JSONStore) FetchCandidates(ctx context.Context, orgID, jobID string) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.loadCandidates()
	if err != nil {
		return nil, err
	}
	out := []models.Candidate{}
	for _, r := range recs {
		if r.OrgID != orgID || (jobID != "" && r.JobID != jobID) {
			continue
		}
		if !r.Status.IsValid() {
			r.Status = models.StageApplied
		}
		out = append(out, r.Candidate)
	}
	return out, nil
}

// updateCandidate applies fn to the candidate with the given id and
// rewrites the fixture file.
func (s *JSONStore) updateCandidate(id string, fn func(*models.Candidate)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.loadCandidates()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	found := false
	for i := range recs {
		if recs[i].ID == id {
			fn(&recs[i].Candidate)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %w: application %s", ErrWriteFailed, ErrNotFound, id)
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.WriteFile(s.CandidatesPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *JSONStore) UpdateApplicationStatus(ctx context.Context, change models.StatusChange) error {
	return s.updateCandidate(change.ApplicationID, func(c *models.Candidate) {
		c.Status = change.ToStatus
	})
}

func (s *JSONStore) SetFavorite(ctx context.Context, applicationID string, isFavorite bool, actorID string) error {
	return s.updateCandidate(applicationID, func(c *models.Candidate) {
		c.Favorite = isFavorite
	})
}

func (s *JSONStore) UpdateNotes(ctx context.Context, applicationID, notes, actorID string) error {
	return s.updateCandidate(applicationID, func(c *models.Candidate) {
		c.Notes = notes
	})
}

// FetchJobs applies the same status, keyword and location semantics as the
// remote stores, then pages the result.
func (s *JSONStore) FetchJobs(ctx context.Context, q models.JobQuery) (*models.JobPage, error) {
	var jobs []models.Job
	if err := readFixture(s.JobsPath, &jobs); err != nil {
		return nil, fmt.Errorf("%w: jobs fixture: %v", ErrReadFailed, err)
	}

	matched := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if q.Status != "" && j.Status != "" && j.Status != q.Status {
			continue
		}
		matched = append(matched, j)
	}
	matched = jobsearch.ApplyFilters(matched, models.JobFilterState{Keyword: q.Keyword, Location: q.Location})

	page := &models.JobPage{Data: matched, Count: len(matched)}
	if q.Limit > 0 {
		page.Data = jobsearch.Paginate(matched, max(q.Page, 1), q.Limit)
	}
	return page, nil
}

// FetchApplicationCounts reads the counts fixture, or derives counts from
// the candidates fixture when no counts file is configured.
func (s *JSONStore) FetchApplicationCounts(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	if s.CountsPath != "" {
		if err := readFixture(s.CountsPath, &counts); err != nil {
			return nil, fmt.Errorf("%w: counts fixture: %v", ErrReadFailed, err)
		}
		return counts, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.loadCandidates()
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		counts[r.JobID]++
	}
	return counts, nil
}

func (s *JSONStore) SetJobPreference(ctx context.Context, userID, jobID string, kind models.PreferenceKind, enabled bool) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown preference kind %q", ErrWriteFailed, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byKind, ok := s.preferences[userID]
	if !ok {
		byKind = make(map[models.PreferenceKind]map[string]bool)
		s.preferences[userID] = byKind
	}
	if byKind[kind] == nil {
		byKind[kind] = make(map[string]bool)
	}
	if enabled {
		byKind[kind][jobID] = true
	} else {
		delete(byKind[kind], jobID)
	}
	return nil
}
