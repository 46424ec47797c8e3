package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dental-jobs/internal/common/database"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/models"
)

const candidatesQuery = `
	SELECT a.id, p.full_name, COALESCE(p.school, ''), p.graduation_date, p.skills,
	       a.status, p.rating, COALESCE(p.city, ''), COALESCE(a.notes, ''),
	       j.id, j.role, (f.application_id IS NOT NULL) AS favorite
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN seeker_profiles p ON p.user_id = a.seeker_id
	LEFT JOIN application_favorites f ON f.application_id = a.id
	WHERE j.organization_id = $1 AND ($2 = '' OR j.id::text = $2)
	ORDER BY a.created_at DESC`

const jobColumns = `
	j.id, j.role, j.organization_id, COALESCE(o.name, ''), COALESCE(j.city, ''), COALESCE(j.country, ''),
	j.specialty_tags, COALESCE(j.employment_type, ''), COALESCE(j.shift_type, ''),
	COALESCE(j.experience_level, ''), COALESCE(j.salary_range, ''), j.salary_min, j.salary_max,
	j.benefits, j.requirements, j.posted_at, j.new_grad_welcome, j.training_provided,
	j.internship_available, COALESCE(j.description, ''), j.status`

var preferenceTables = map[models.PreferenceKind]string{
	models.PreferenceSaved:  "saved_jobs",
	models.PreferenceHidden: "hidden_jobs",
}

// PostgresStore is the primary record store.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostgresStore) FetchCandidates(ctx context.Context, orgID, jobID string) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, candidatesQuery, orgID, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var (
			c        models.Candidate
			gradDate sql.NullString
			skills   pq.StringArray
			status   string
			rating   sql.NullFloat64
			jobTitle sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.School, &gradDate, &skills,
			&status, &rating, &c.City, &c.Notes,
			&c.JobID, &jobTitle, &c.Favorite,
		); err != nil {
			return nil, fmt.Errorf("%w: scan candidate: %v", ErrReadFailed, err)
		}

		c.GraduationDate = gradDate.String
		c.Skills = []string(skills)
		if c.Skills == nil {
			c.Skills = []string{}
		}
		c.Rating = rating.Float64
		c.JobTitle = jobTitle.String

		stage, err := models.ParseStage(status)
		if err != nil {
			s.logger.Warn("unknown application status, treating as Applied", map[string]interface{}{
				"applicationId": c.ID,
				"status":        status,
			})
			stage = models.StageApplied
		}
		c.Status = stage

		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: candidates: %v", ErrReadFailed, err)
	}
	return candidates, nil
}

// UpdateApplicationStatus writes the new status and its event row in one
// transaction.
func (s *PostgresStore) UpdateApplicationStatus(ctx context.Context, change models.StatusChange) error {
	if change.EventID == "" {
		change.EventID = uuid.NewString()
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = s.now()
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
			string(change.ToStatus), change.ChangedAt, change.ApplicationID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: application %s", ErrNotFound, change.ApplicationID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO application_events (id, application_id, from_status, to_status, actor_id, actor_role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			change.EventID, change.ApplicationID, string(change.FromStatus), string(change.ToStatus),
			change.ActorID, string(change.ActorRole), change.ChangedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: update status: %w", ErrWriteFailed, err)
	}
	return nil
}

func (s *PostgresStore) SetFavorite(ctx context.Context, applicationID string, isFavorite bool, actorID string) error {
	var err error
	if isFavorite {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO application_favorites (application_id, created_by, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (application_id) DO NOTHING`,
			applicationID, actorID, s.now())
	} else {
		_, err = s.db.ExecContext(ctx,
			`DELETE FROM application_favorites WHERE application_id = $1`, applicationID)
	}
	if err != nil {
		return fmt.Errorf("%w: set favorite: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *PostgresStore) UpdateNotes(ctx context.Context, applicationID, notes, actorID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET notes = $1, notes_updated_by = $2, updated_at = $3 WHERE id = $4`,
		notes, actorID, s.now(), applicationID)
	if err != nil {
		return fmt.Errorf("%w: update notes: %v", ErrWriteFailed, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: update notes: %w: application %s", ErrWriteFailed, ErrNotFound, applicationID)
	}
	return nil
}

// FetchJobs filters by status, keyword and location in SQL and returns the
// requested page along with the total match count.
func (s *PostgresStore) FetchJobs(ctx context.Context, q models.JobQuery) (*models.JobPage, error) {
	where, args := jobWhere(q)

	query := "SELECT " + jobColumns + ", COUNT(*) OVER() AS total\n\tFROM jobs j\n\tLEFT JOIN organizations o ON o.id = j.organization_id" +
		where + "\n\tORDER BY j.posted_at DESC"
	if q.Limit > 0 {
		args = append(args, q.Limit, q.Offset())
		query += fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: jobs: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	page := &models.JobPage{Data: []models.Job{}}
	for rows.Next() {
		job, total, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan job: %v", ErrReadFailed, err)
		}
		page.Data = append(page.Data, job)
		page.Count = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: jobs: %v", ErrReadFailed, err)
	}

	// A page past the end carries no window count.
	if len(page.Data) == 0 && q.Offset() > 0 {
		countArgs := args[:len(args)-2]
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM jobs j LEFT JOIN organizations o ON o.id = j.organization_id"+where,
			countArgs...).Scan(&page.Count)
		if err != nil {
			return nil, fmt.Errorf("%w: count jobs: %v", ErrReadFailed, err)
		}
	}
	return page, nil
}

func jobWhere(q models.JobQuery) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	if q.Status != "" {
		args = append(args, q.Status)
		clauses = append(clauses, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		args = append(args, likePattern(kw))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			`(j.role ILIKE $%d ESCAPE '\' OR o.name ILIKE $%d ESCAPE '\' OR array_to_string(j.specialty_tags, ' ') ILIKE $%d ESCAPE '\')`, n, n, n))
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		args = append(args, likePattern(loc))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(`(j.city ILIKE $%d ESCAPE '\' OR j.country ILIKE $%d ESCAPE '\')`, n, n))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "\n\tWHERE " + strings.Join(clauses, " AND "), args
}

func scanJob(rows *sql.Rows) (models.Job, int, error) {
	var (
		j                    models.Job
		tags, benefits, reqs pq.StringArray
		salaryMin, salaryMax sql.NullInt64
		postedAt             sql.NullTime
		status               sql.NullString
		total                int
	)
	err := rows.Scan(
		&j.ID, &j.Role, &j.OrganizationID, &j.OrganizationName, &j.City, &j.Country,
		&tags, &j.EmploymentType, &j.ShiftType,
		&j.ExperienceLevel, &j.SalaryRange, &salaryMin, &salaryMax,
		&benefits, &reqs, &postedAt, &j.NewGradWelcome, &j.TrainingProvided,
		&j.InternshipAvailable, &j.Description, &status, &total,
	)
	if err != nil {
		return j, 0, err
	}

	j.SpecialtyTags = nonNil(tags)
	j.Benefits = nonNil(benefits)
	j.Requirements = nonNil(reqs)
	if salaryMin.Valid {
		v := int(salaryMin.Int64)
		j.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := int(salaryMax.Int64)
		j.SalaryMax = &v
	}
	j.PostedAt = postedAt.Time
	j.Status = status.String
	return j, total, nil
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}

// FetchApplicationCounts returns the number of applications per job id.
func (s *PostgresStore) FetchApplicationCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT job_id, COUNT(*) FROM applications GROUP BY job_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: application counts: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			jobID string
			n     int
		)
		if err := rows.Scan(&jobID, &n); err != nil {
			return nil, fmt.Errorf("%w: scan count: %v", ErrReadFailed, err)
		}
		counts[jobID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: application counts: %v", ErrReadFailed, err)
	}
	return counts, nil
}

func (s *PostgresStore) SetJobPreference(ctx context.Context, userID, jobID string, kind models.PreferenceKind, enabled bool) error {
	table, ok := preferenceTables[kind]
	if !ok {
		return fmt.Errorf("%w: unknown preference kind %q", ErrWriteFailed, kind)
	}

	var err error
	if enabled {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO "+table+" (user_id, job_id, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, job_id) DO NOTHING",
			userID, jobID, s.now())
	} else {
		_, err = s.db.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE user_id = $1 AND job_id = $2", userID, jobID)
	}
	if err != nil {
		return fmt.Errorf("%w: %s preference: %v", ErrWriteFailed, kind, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns term into a literal substring pattern for ILIKE.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
