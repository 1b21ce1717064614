package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID                string         `db:"id"`
	RecruiterID       string         `db:"recruiter_id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	Company           string         `db:"company"`
	Location          string         `db:"location"`
	SalaryMin         *int           `db:"salary_min"`
	SalaryMax         *int           `db:"salary_max"`
	JobType           string         `db:"job_type"`
	ExperienceLevel   string         `db:"experience_level"`
	Skills            pq.StringArray `db:"skills"`
	Status            string         `db:"status"`
	RemoteAllowed     bool           `db:"remote_allowed"`
	PostedDate        time.Time      `db:"posted_date"`
	ClosingDate       *time.Time     `db:"closing_date"`
	ApplicationsCount int            `db:"applications_count"`
	ViewsCount        int            `db:"views_count"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type jobSummaryModel struct {
	jobModel
	RecruiterName string `db:"recruiter_name"`
	CompanyName   string `db:"company_name"`
}

type jobDetailModel struct {
	jobSummaryModel
	IsSaved    bool `db:"is_saved"`
	HasApplied bool `db:"has_applied"`
}

type recruiterJobModel struct {
	jobModel
	ApplicationRows int `db:"application_rows"`
}

type savedJobModel struct {
	jobSummaryModel
	SavedDate time.Time `db:"saved_date"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() job.Job {
	return job.Job{
		ID:                kernel.JobID(m.ID),
		RecruiterID:       kernel.UserID(m.RecruiterID),
		Title:             kernel.JobTitle(m.Title),
		Description:       kernel.JobDescription(m.Description),
		Company:           kernel.CompanyName(m.Company),
		Location:          kernel.Location(m.Location),
		SalaryMin:         m.SalaryMin,
		SalaryMax:         m.SalaryMax,
		JobType:           job.JobType(m.JobType),
		ExperienceLevel:   job.ExperienceLevel(m.ExperienceLevel),
		Skills:            []string(m.Skills),
		Status:            job.JobStatus(m.Status),
		RemoteAllowed:     m.RemoteAllowed,
		PostedDate:        m.PostedDate,
		ClosingDate:       m.ClosingDate,
		ApplicationsCount: m.ApplicationsCount,
		ViewsCount:        m.ViewsCount,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (m *jobSummaryModel) toSummary() job.Summary {
	return job.Summary{
		Job:           m.jobModel.toEntity(),
		RecruiterName: m.RecruiterName,
		CompanyName:   m.CompanyName,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:                string(j.ID),
		RecruiterID:       string(j.RecruiterID),
		Title:             string(j.Title),
		Description:       string(j.Description),
		Company:           string(j.Company),
		Location:          string(j.Location),
		SalaryMin:         j.SalaryMin,
		SalaryMax:         j.SalaryMax,
		JobType:           string(j.JobType),
		ExperienceLevel:   string(j.ExperienceLevel),
		Skills:            pq.StringArray(j.Skills),
		Status:            string(j.Status),
		RemoteAllowed:     j.RemoteAllowed,
		PostedDate:        j.PostedDate,
		ClosingDate:       j.ClosingDate,
		ApplicationsCount: j.ApplicationsCount,
		ViewsCount:        j.ViewsCount,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

const jobColumns = `
	j.id, j.recruiter_id, j.title, j.description, j.company, j.location,
	j.salary_min, j.salary_max, j.job_type, j.experience_level, j.skills,
	j.status, j.remote_allowed, j.posted_date, j.closing_date,
	j.applications_count, j.views_count, j.created_at, j.updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model := fromEntity(jobEntity)

	query := `
		INSERT INTO jobs (
			id, recruiter_id, title, description, company, location,
			salary_min, salary_max, job_type, experience_level, skills,
			status, remote_allowed, posted_date, closing_date,
			applications_count, views_count, created_at, updated_at
		) VALUES (
			:id, :recruiter_id, :title, :description, :company, :location,
			:salary_min, :salary_max, :job_type, :experience_level, :skills,
			:status, :remote_allowed, :posted_date, :closing_date,
			:applications_count, :views_count, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid recruiter_id: %w", err)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by ID regardless of status
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs j WHERE j.id = $1`, jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// GetDetail retrieves a job joined with recruiter info and personalization
// flags for the viewer. An empty viewerID yields false flags.
func (r *PostgresJobRepository) GetDetail(ctx context.Context, id kernel.JobID, viewerID kernel.UserID) (*job.DetailResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS recruiter_name,
			COALESCE(u.company_name, '') AS company_name,
			EXISTS(SELECT 1 FROM saved_jobs s WHERE s.job_id = j.id AND s.user_id = $2) AS is_saved,
			EXISTS(SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.applicant_id = $2) AS has_applied
		FROM jobs j
		JOIN users u ON j.recruiter_id = u.id
		WHERE j.id = $1
	`, jobColumns)

	var viewer any
	if !viewerID.IsEmpty() {
		viewer = string(viewerID)
	}

	var model jobDetailModel
	if err := r.db.GetContext(ctx, &model, query, string(id), viewer); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job detail: %w", err)
	}

	return &job.DetailResponse{
		Job:           model.jobModel.toEntity(),
		RecruiterName: model.RecruiterName,
		CompanyName:   model.CompanyName,
		IsSaved:       model.IsSaved,
		HasApplied:    model.HasApplied,
	}, nil
}

// buildFilterClause translates listing filters into WHERE conditions.
func buildFilterClause(filters job.Filters, args []any) ([]string, []any) {
	conditions := []string{}

	if filters.Location != "" {
		args = append(args, "%"+filters.Location+"%")
		conditions = append(conditions, fmt.Sprintf("j.location ILIKE $%d", len(args)))
	}

	if filters.JobType != "" {
		args = append(args, string(filters.JobType))
		conditions = append(conditions, fmt.Sprintf("j.job_type = $%d", len(args)))
	}

	if filters.ExperienceLevel != "" {
		args = append(args, string(filters.ExperienceLevel))
		conditions = append(conditions, fmt.Sprintf("j.experience_level = $%d", len(args)))
	}

	if filters.SalaryMin != nil {
		args = append(args, *filters.SalaryMin)
		conditions = append(conditions, fmt.Sprintf("j.salary_max >= $%d", len(args)))
	}

	if filters.RemoteAllowed {
		conditions = append(conditions, "j.remote_allowed = true")
	}

	if len(filters.Skills) > 0 {
		args = append(args, pq.StringArray(filters.Skills))
		conditions = append(conditions, fmt.Sprintf("j.skills && $%d::text[]", len(args)))
	}

	return conditions, args
}

// ListActive retrieves active jobs matching filters, newest first
func (r *PostgresJobRepository) ListActive(ctx context.Context, filters job.Filters, pagination kernel.PaginationOptions) ([]job.Summary, int, error) {
	whereClause := "WHERE j.status = 'active'"
	conditions, args := buildFilterClause(filters, nil)
	for _, cond := range conditions {
		whereClause += " AND " + cond
	}

	// Count total matching rows
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j %s`, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	args = append(args, pagination.PageSize, pagination.Offset())
	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS recruiter_name,
			COALESCE(u.company_name, '') AS company_name
		FROM jobs j
		JOIN users u ON j.recruiter_id = u.id
		%s
		ORDER BY j.posted_date DESC
		LIMIT $%d OFFSET $%d
	`, jobColumns, whereClause, len(args)-1, len(args))

	var models []jobSummaryModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	summaries := make([]job.Summary, 0, len(models))
	for i := range models {
		summaries = append(summaries, models[i].toSummary())
	}

	return summaries, total, nil
}

// ListAllActive retrieves every active job for bulk reindexing
func (r *PostgresJobRepository) ListAllActive(ctx context.Context) ([]job.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs j WHERE j.status = 'active'`, jobColumns)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	entities := make([]job.Job, 0, len(models))
	for i := range models {
		entities = append(entities, models[i].toEntity())
	}

	return entities, nil
}

// GetSummariesByIDs retrieves listing rows for the given IDs
func (r *PostgresJobRepository) GetSummariesByIDs(ctx context.Context, ids []kernel.JobID) ([]job.Summary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}

	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS recruiter_name,
			COALESCE(u.company_name, '') AS company_name
		FROM jobs j
		JOIN users u ON j.recruiter_id = u.id
		WHERE j.id = ANY($1)
	`, jobColumns)

	var models []jobSummaryModel
	if err := r.db.SelectContext(ctx, &models, query, pq.StringArray(raw)); err != nil {
		return nil, fmt.Errorf("failed to get jobs by ids: %w", err)
	}

	summaries := make([]job.Summary, 0, len(models))
	for i := range models {
		summaries = append(summaries, models[i].toSummary())
	}

	return summaries, nil
}

// UpdateFields applies a partial update scoped to (id, recruiterID)
func (r *PostgresJobRepository) UpdateFields(ctx context.Context, id kernel.JobID, recruiterID kernel.UserID, update job.UpdateJobRequest) (*job.Job, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		addSet("title", string(*update.Title))
	}
	if update.Description != nil {
		addSet("description", string(*update.Description))
	}
	if update.Company != nil {
		addSet("company", string(*update.Company))
	}
	if update.Location != nil {
		addSet("location", string(*update.Location))
	}
	if update.SalaryMin != nil {
		addSet("salary_min", *update.SalaryMin)
	}
	if update.SalaryMax != nil {
		addSet("salary_max", *update.SalaryMax)
	}
	if update.JobType != nil {
		addSet("job_type", string(*update.JobType))
	}
	if update.ExperienceLevel != nil {
		addSet("experience_level", string(*update.ExperienceLevel))
	}
	if update.Skills != nil {
		addSet("skills", pq.StringArray(*update.Skills))
	}
	if update.RemoteAllowed != nil {
		addSet("remote_allowed", *update.RemoteAllowed)
	}
	if update.ClosingDate != nil {
		addSet("closing_date", *update.ClosingDate)
	}
	if update.Status != nil {
		addSet("status", string(*update.Status))
	}

	if len(sets) == 0 {
		return nil, job.ErrValidationFailed().WithDetail("reason", "no fields to update")
	}

	addSet("updated_at", time.Now())

	args = append(args, string(id))
	args = append(args, string(recruiterID))

	query := fmt.Sprintf(`
		UPDATE jobs j SET %s
		WHERE j.id = $%d AND j.recruiter_id = $%d
		RETURNING %s
	`, joinSets(sets), len(args)-1, len(args), jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if err == sql.ErrNoRows {
			// Missing and not-owned are indistinguishable on purpose
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for i := 1; i < len(sets); i++ {
		out += ", " + sets[i]
	}
	return out
}

// SetStatus changes a job's status scoped to (id, recruiterID)
func (r *PostgresJobRepository) SetStatus(ctx context.Context, id kernel.JobID, recruiterID kernel.UserID, status job.JobStatus) (*job.Job, error) {
	query := fmt.Sprintf(`
		UPDATE jobs j SET status = $1, updated_at = $2
		WHERE j.id = $3 AND j.recruiter_id = $4
		RETURNING %s
	`, jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, string(status), time.Now(), string(id), string(recruiterID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to set job status: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// IncrementCounter adjusts an advisory counter by delta
func (r *PostgresJobRepository) IncrementCounter(ctx context.Context, id kernel.JobID, field job.CounterField, delta int) error {
	var column string
	switch field {
	case job.CounterApplications:
		column = "applications_count"
	case job.CounterViews:
		column = "views_count"
	default:
		return fmt.Errorf("unknown counter field: %s", field)
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s = %s + $1 WHERE id = $2`, column, column)
	if _, err := r.db.ExecContext(ctx, query, delta, string(id)); err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	return nil
}

// ListByRecruiter retrieves a recruiter's own jobs with live application counts
func (r *PostgresJobRepository) ListByRecruiter(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]job.RecruiterJobSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(a.id) AS application_rows
		FROM jobs j
		LEFT JOIN applications a ON j.id = a.job_id
		WHERE j.recruiter_id = $1
		GROUP BY j.id
		ORDER BY j.posted_date DESC
		LIMIT $2 OFFSET $3
	`, jobColumns)

	var models []recruiterJobModel
	if err := r.db.SelectContext(ctx, &models, query, string(recruiterID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list recruiter jobs: %w", err)
	}

	summaries := make([]job.RecruiterJobSummary, 0, len(models))
	for i := range models {
		summaries = append(summaries, job.RecruiterJobSummary{
			Job:             models[i].toEntity(),
			ApplicationRows: models[i].ApplicationRows,
		})
	}

	return summaries, nil
}

// SaveJob bookmarks a job for a user
func (r *PostgresJobRepository) SaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	query := `
		INSERT INTO saved_jobs (user_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, string(userID), string(jobID)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return job.ErrJobNotFound()
		}
		return fmt.Errorf("failed to save job: %w", err)
	}

	return nil
}

// UnsaveJob removes a bookmark
func (r *PostgresJobRepository) UnsaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	query := `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`

	if _, err := r.db.ExecContext(ctx, query, string(userID), string(jobID)); err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}

	return nil
}

// ListSaved retrieves a user's bookmarked jobs, most recently saved first
func (r *PostgresJobRepository) ListSaved(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) ([]job.SavedJobSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS recruiter_name,
			COALESCE(u.company_name, '') AS company_name,
			s.saved_date
		FROM saved_jobs s
		JOIN jobs j ON s.job_id = j.id
		JOIN users u ON j.recruiter_id = u.id
		WHERE s.user_id = $1
		ORDER BY s.saved_date DESC
		LIMIT $2 OFFSET $3
	`, jobColumns)

	var models []savedJobModel
	if err := r.db.SelectContext(ctx, &models, query, string(userID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	saved := make([]job.SavedJobSummary, 0, len(models))
	for i := range models {
		saved = append(saved, job.SavedJobSummary{
			Summary:   models[i].toSummary(),
			SavedDate: models[i].SavedDate,
		})
	}

	return saved, nil
}
