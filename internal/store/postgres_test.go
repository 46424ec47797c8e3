package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/models"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewPostgresStore(db, logger.NewNoOpLogger())
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

var candidateCols = []string{
	"id", "full_name", "school", "graduation_date", "skills",
	"status", "rating", "city", "notes", "job_id", "role", "favorite",
}

var jobCols = []string{
	"id", "role", "organization_id", "name", "city", "country",
	"specialty_tags", "employment_type", "shift_type",
	"experience_level", "salary_range", "salary_min", "salary_max",
	"benefits", "requirements", "posted_at", "new_grad_welcome", "training_provided",
	"internship_available", "description", "status", "total",
}

// ==========================
// Candidates
// ==========================

func TestFetchCandidates(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM applications a`).
		WithArgs("org-1", "").
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow("a1", "Aisha", "UM", "2024-06", "{Ortho,Scaling}", "Interview", 4.5, "KL", "", "j1", "Dental Nurse", true).
			AddRow("a2", "Ben", "", nil, nil, "limbo", nil, "", "call back", "j2", nil, false))

	got, err := s.FetchCandidates(context.Background(), "org-1", "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"Ortho", "Scaling"}, got[0].Skills)
	assert.Equal(t, models.StageInterview, got[0].Status)
	assert.True(t, got[0].Favorite)
	assert.Equal(t, "Dental Nurse", got[0].JobTitle)

	// Unknown status degrades to Applied, missing arrays to empty.
	assert.Equal(t, models.StageApplied, got[1].Status)
	assert.Equal(t, []string{}, got[1].Skills)
	assert.Zero(t, got[1].Rating)
	assert.Equal(t, "call back", got[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchCandidates_ReadError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`FROM applications a`).WillReturnError(errors.New("connection reset"))

	_, err := s.FetchCandidates(context.Background(), "org-1", "j1")
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestUpdateApplicationStatus(t *testing.T) {
	change := models.StatusChange{
		EventID:       "evt-1",
		ApplicationID: "a1",
		FromStatus:    models.StageApplied,
		ToStatus:      models.StageOffer,
		ActorID:       "u1",
		ActorRole:     models.RoleEmployer,
	}

	t.Run("commits status and event", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs("Offer", fixedNow, "a1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO application_events`).
			WithArgs("evt-1", "a1", "Applied", "Offer", "u1", "employer", fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.UpdateApplicationStatus(context.Background(), change))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("event failure rolls back", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE applications SET status`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO application_events`).WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err := s.UpdateApplicationStatus(context.Background(), change)
		assert.ErrorIs(t, err, ErrWriteFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown application", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE applications SET status`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.UpdateApplicationStatus(context.Background(), change)
		assert.ErrorIs(t, err, ErrWriteFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetFavorite(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO application_favorites`).
		WithArgs("a1", "u1", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM application_favorites`).
		WithArgs("a1").
		WillReturnError(errors.New("rls violation"))

	require.NoError(t, s.SetFavorite(context.Background(), "a1", true, "u1"))
	assert.ErrorIs(t, s.SetFavorite(context.Background(), "a1", false, "u1"), ErrWriteFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotes(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE applications SET notes`).
		WithArgs("strong ortho", "u1", fixedNow, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE applications SET notes`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.UpdateNotes(context.Background(), "a1", "strong ortho", "u1"))

	err := s.UpdateNotes(context.Background(), "missing", "x", "u1")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ==========================
// Jobs
// ==========================

func TestFetchJobs_Paged(t *testing.T) {
	s, mock := newMockStore(t)
	posted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`COUNT\(\*\) OVER\(\)`).
		WithArgs("published", "%ortho%", 2, 2).
		WillReturnRows(sqlmock.NewRows(jobCols).
			AddRow("j3", "Orthodontist", "o1", "Smile Co", "KL", "Malaysia",
				"{Ortho}", "Full-time", "", "Senior", "MYR 9,000", 9000, nil,
				nil, "{DDS}", posted, false, true, false, "", "published", 5))

	page, err := s.FetchJobs(context.Background(), models.JobQuery{
		Status: "published", Keyword: " ortho ", Page: 2, Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	require.Len(t, page.Data, 1)

	job := page.Data[0]
	assert.Equal(t, []string{"Ortho"}, job.SpecialtyTags)
	assert.Equal(t, []string{}, job.Benefits)
	require.NotNil(t, job.SalaryMin)
	assert.Equal(t, 9000, *job.SalaryMin)
	assert.Nil(t, job.SalaryMax)
	assert.Equal(t, posted, job.PostedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchJobs_PastLastPageCounts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`COUNT\(\*\) OVER\(\)`).
		WithArgs("published", 10, 40).
		WillReturnRows(sqlmock.NewRows(jobCols))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs`).
		WithArgs("published").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	page, err := s.FetchJobs(context.Background(), models.JobQuery{Status: "published", Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 12, page.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchJobs_Unpaginated(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`COUNT\(\*\) OVER\(\)`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows(jobCols))

	page, err := s.FetchJobs(context.Background(), models.JobQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobWhere(t *testing.T) {
	where, args := jobWhere(models.JobQuery{Status: "published", Location: "penang"})
	assert.Contains(t, where, "j.status = $1")
	assert.Contains(t, where, `j.city ILIKE $2 ESCAPE '\' OR j.country ILIKE $2 ESCAPE '\'`)
	assert.Equal(t, []interface{}{"published", "%penang%"}, args)

	_, args = jobWhere(models.JobQuery{Keyword: `50%_off\`})
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)

	where, args = jobWhere(models.JobQuery{Keyword: "   "})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFetchApplicationCounts(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`GROUP BY job_id`).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "count"}).AddRow("j1", 4).AddRow("j2", 1))

	counts, err := s.FetchApplicationCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"j1": 4, "j2": 1}, counts)
}

func TestSetJobPreference(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO saved_jobs`).
		WithArgs("u1", "j1", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM hidden_jobs`).
		WithArgs("u1", "j2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.SetJobPreference(context.Background(), "u1", "j1", models.PreferenceSaved, true))
	require.NoError(t, s.SetJobPreference(context.Background(), "u1", "j2", models.PreferenceHidden, false))
	assert.ErrorIs(t, s.SetJobPreference(context.Background(), "u1", "j2", "starred", true), ErrWriteFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
