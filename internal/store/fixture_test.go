package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/models"
)

const candidatesFixture = `[
  {"orgId": "org-1", "id": "a1", "name": "Aisha", "status": "Applied", "jobId": "j1", "jobTitle": "Dental Nurse", "skills": ["Ortho"]},
  {"orgId": "org-1", "id": "a2", "name": "Ben", "status": "Offer", "jobId": "j2", "jobTitle": "Hygienist", "favorite": true},
  {"orgId": "org-2", "id": "a3", "name": "Chen", "status": "Nope", "jobId": "j9", "jobTitle": "Assistant"}
]`

const jobsFixture = `[
  {"id": "j1", "role": "Dental Nurse", "city": "Kuala Lumpur", "country": "Malaysia", "status": "published"},
  {"id": "j2", "role": "Hygienist", "city": "Penang", "country": "Malaysia", "status": "published"},
  {"id": "j3", "role": "Dentist", "city": "Singapore", "country": "Singapore", "status": "draft"}
]`

func writeFixtures(t *testing.T) *JSONStore {
	t.Helper()
	dir := t.TempDir()
	cands := filepath.Join(dir, "candidates.json")
	jobs := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(cands, []byte(candidatesFixture), 0o644))
	require.NoError(t, os.WriteFile(jobs, []byte(jobsFixture), 0o644))
	return NewJSONStore(jobs, cands, "")
}

func TestJSONStore_FetchCandidates(t *testing.T) {
	s := writeFixtures(t)
	ctx := context.Background()

	all, err := s.FetchCandidates(ctx, "org-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := s.FetchCandidates(ctx, "org-1", "j2")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.True(t, scoped[0].Favorite)

	other, err := s.FetchCandidates(ctx, "org-2", "")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, models.StageApplied, other[0].Status)
}

func TestJSONStore_WritesPersist(t *testing.T) {
	s := writeFixtures(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateApplicationStatus(ctx, models.StatusChange{ApplicationID: "a1", ToStatus: models.StageInterview}))
	require.NoError(t, s.SetFavorite(ctx, "a1", true, "u1"))
	require.NoError(t, s.UpdateNotes(ctx, "a1", "great fit", "u1"))

	reloaded := NewJSONStore(s.JobsPath, s.CandidatesPath, "")
	got, err := reloaded.FetchCandidates(ctx, "org-1", "j1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StageInterview, got[0].Status)
	assert.True(t, got[0].Favorite)
	assert.Equal(t, "great fit", got[0].Notes)
	assert.Equal(t, []string{"Ortho"}, got[0].Skills)

	err = s.SetFavorite(ctx, "missing", true, "u1")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONStore_FetchJobs(t *testing.T) {
	s := writeFixtures(t)
	ctx := context.Background()

	page, err := s.FetchJobs(ctx, models.JobQuery{Status: models.JobStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Len(t, page.Data, 2)

	page, err = s.FetchJobs(ctx, models.JobQuery{Status: models.JobStatusPublished, Location: "malaysia", Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "j2", page.Data[0].ID)
}

func TestJSONStore_CountsAndPreferences(t *testing.T) {
	s := writeFixtures(t)
	ctx := context.Background()

	counts, err := s.FetchApplicationCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"j1": 1, "j2": 1, "j9": 1}, counts)

	require.NoError(t, s.SetJobPreference(ctx, "u1", "j1", models.PreferenceSaved, true))
	assert.True(t, s.preferences["u1"][models.PreferenceSaved]["j1"])
	require.NoError(t, s.SetJobPreference(ctx, "u1", "j1", models.PreferenceSaved, false))
	assert.False(t, s.preferences["u1"][models.PreferenceSaved]["j1"])
	assert.ErrorIs(t, s.SetJobPreference(ctx, "u1", "j1", "starred", true), ErrWriteFailed)
}

func TestJSONStore_MissingFilesAreEmpty(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "none.json"), "", "")
	page, err := s.FetchJobs(context.Background(), models.JobQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	cands, err := s.FetchCandidates(context.Background(), "org-1", "")
	require.NoError(t, err)
	assert.Empty(t, cands)
}
