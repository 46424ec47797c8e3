// Package pipeline implements the employer hiring board: stage transitions,
// favorites and notes with optimistic update and rollback.
package pipeline

import (
	"dental-jobs/internal/models"
)

// StageGroup is one board column.
type StageGroup struct {
	Stage      models.JobStage    `json:"stage"`
	Count      int                `json:"count"`
	Candidates []models.Candidate `json:"candidates"`
}

func indexOf(candidates []models.Candidate, id string) int {
	for i := range candidates {
		if candidates[i].ID == id {
			return i
		}
	}
	return -1
}

// MoveCandidate returns a copy of candidates with id's status replaced.
// It returns the input unchanged and false when id is absent, when the
// stage is not one of the six stages, or when the status already matches.
func MoveCandidate(candidates []models.Candidate, id string, newStatus models.JobStage) ([]models.Candidate, bool) {
	if !newStatus.IsValid() {
		return candidates, false
	}
	i := indexOf(candidates, id)
	if i < 0 || candidates[i].Status == newStatus {
		return candidates, false
	}

	next := models.CloneCandidates(candidates)
	next[i].Status = newStatus
	return next, true
}

// ToggleFavorite flips id's membership in a copy of favorites. Ids that do
// not name a candidate in the list are ignored.
func ToggleFavorite(favorites IDSet, candidates []models.Candidate, id string) (IDSet, bool) {
	if indexOf(candidates, id) < 0 {
		return favorites, false
	}

	next := favorites.Clone()
	if next.Has(id) {
		next.Remove(id)
	} else {
		next.Add(id)
	}
	return next, true
}

// UpdateNotes returns a copy of candidates with id's notes replaced.
func UpdateNotes(candidates []models.Candidate, id, notes string) ([]models.Candidate, bool) {
	i := indexOf(candidates, id)
	if i < 0 || candidates[i].Notes == notes {
		return candidates, false
	}

	next := models.CloneCandidates(candidates)
	next[i].Notes = notes
	return next, true
}

// GroupByStage partitions candidates into the six stage columns in stage
// order. Relative order inside a column follows the input, and empty
// columns are kept.
func GroupByStage(candidates []models.Candidate) []StageGroup {
	byStage := make(map[models.JobStage]int, len(models.Stages))
	groups := make([]StageGroup, len(models.Stages))
	for i, stage := range models.Stages {
		byStage[stage] = i
		groups[i] = StageGroup{Stage: stage, Candidates: []models.Candidate{}}
	}

	for _, c := range candidates {
		i, ok := byStage[c.Status]
		if !ok {
			continue
		}
		groups[i].Candidates = append(groups[i].Candidates, c)
	}
	for i := range groups {
		groups[i].Count = len(groups[i].Candidates)
	}
	return groups
}

// FilterByJobAndFavorite keeps candidates whose job id equals jobID and,
// when favoritesOnly is set, whose id is in favorites.
func FilterByJobAndFavorite(candidates []models.Candidate, jobID string, favorites IDSet, favoritesOnly bool) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.JobID != jobID {
			continue
		}
		if favoritesOnly && !favorites.Has(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// JobRef identifies one job present on a board.
type JobRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DistinctJobs lists the jobs referenced by candidates in first-seen order.
func DistinctJobs(candidates []models.Candidate) []JobRef {
	seen := make(map[string]bool)
	out := []JobRef{}
	for _, c := range candidates {
		if c.JobID == "" || seen[c.JobID] {
			continue
		}
		seen[c.JobID] = true
		out = append(out, JobRef{ID: c.JobID, Title: c.JobTitle})
	}
	return out
}

// WithFavoriteFlags returns a copy of candidates whose favorite flags match
// favorites.
func WithFavoriteFlags(candidates []models.Candidate, favorites IDSet) []models.Candidate {
	out := models.CloneCandidates(candidates)
	for i := range out {
		out[i].Favorite = favorites.Has(out[i].ID)
	}
	return out
}

// Favorites derives the favorite set from the candidates' favorite flags.
func Favorites(candidates []models.Candidate) IDSet {
	s := NewIDSet()
	for _, c := range candidates {
		if c.Favorite {
			s.Add(c.ID)
		}
	}
	return s
}
