package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresApplicationRepository implements application.Repository using
// PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application
// repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

// The raw embedding column is write-only from Go's side: the pipeline stores
// it and the match query consumes it in SQL, so entities never carry it.
type applicationModel struct {
	ID            string         `db:"id"`
	JobID         string         `db:"job_id"`
	ApplicantID   string         `db:"applicant_id"`
	Status        string         `db:"status"`
	CoverLetter   sql.NullString `db:"cover_letter"`
	ResumeURL     sql.NullString `db:"resume_url"`
	ResumeSummary sql.NullString `db:"resume_summary"`
	AppliedDate   time.Time      `db:"applied_date"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m *applicationModel) toEntity() application.Application {
	return application.Application{
		ID:            kernel.ApplicationID(m.ID),
		JobID:         kernel.JobID(m.JobID),
		ApplicantID:   kernel.UserID(m.ApplicantID),
		Status:        application.ApplicationStatus(m.Status),
		CoverLetter:   m.CoverLetter.String,
		ResumeURL:     kernel.BucketURL(m.ResumeURL.String),
		ResumeSummary: kernel.ResumeSummary(m.ResumeSummary.String),
		AppliedDate:   m.AppliedDate,
		UpdatedAt:     m.UpdatedAt,
	}
}

const applicationColumns = `
	a.id, a.job_id, a.applicant_id, a.status, a.cover_letter, a.resume_url,
	a.resume_summary, a.applied_date, a.updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Apply inserts an application and bumps the job's counter in one
// transaction. The counter update doubles as the job-active check, and the
// unique (job_id, applicant_id) constraint is the only duplicate guard.
func (r *PostgresApplicationRepository) Apply(ctx context.Context, app *application.Application) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin apply transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE jobs SET applications_count = applications_count + 1
		WHERE id = $1 AND status = 'active'
	`, string(app.JobID))
	if err != nil {
		return fmt.Errorf("failed to increment applications counter: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return application.ErrJobNotAvailable().WithDetail("job_id", app.JobID.String())
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applications (
			id, job_id, applicant_id, status, cover_letter, resume_url,
			applied_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		string(app.ID),
		string(app.JobID),
		string(app.ApplicantID),
		string(app.Status),
		nullableString(app.CoverLetter),
		nullableString(string(app.ResumeURL)),
		app.AppliedDate,
		app.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return application.ErrAlreadyApplied().WithDetail("job_id", app.JobID.String())
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit apply transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an application visible to the viewer: its applicant or
// the recruiter owning its job
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID, viewerID kernel.UserID) (*application.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1 AND (a.applicant_id = $2 OR j.recruiter_id = $2)
	`, applicationColumns)

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, string(id), string(viewerID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

type mineModel struct {
	applicationModel
	JobTitle  string `db:"job_title"`
	Company   string `db:"company"`
	JobStatus string `db:"job_status"`
}

// ListMine retrieves the applicant's applications with job context
func (r *PostgresApplicationRepository) ListMine(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) ([]application.MineSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			j.title AS job_title,
			j.company AS company,
			j.status AS job_status
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_date DESC
		LIMIT $2 OFFSET $3
	`, applicationColumns)

	var models []mineModel
	if err := r.db.SelectContext(ctx, &models, query, string(applicantID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	out := make([]application.MineSummary, 0, len(models))
	for i := range models {
		out = append(out, application.MineSummary{
			Application: models[i].toEntity(),
			JobTitle:    kernel.JobTitle(models[i].JobTitle),
			Company:     kernel.CompanyName(models[i].Company),
			JobStatus:   models[i].JobStatus,
		})
	}

	return out, nil
}

type applicantModel struct {
	applicationModel
	ApplicantName  string `db:"applicant_name"`
	ApplicantEmail string `db:"applicant_email"`
}

func (m *applicantModel) toSummary() application.ApplicantSummary {
	return application.ApplicantSummary{
		Application:    m.applicationModel.toEntity(),
		ApplicantName:  m.ApplicantName,
		ApplicantEmail: kernel.Email(m.ApplicantEmail),
	}
}

// ListForJob retrieves a job's applications, scoped to the owning recruiter.
// An empty result does not distinguish a missing job from an unowned one.
func (r *PostgresApplicationRepository) ListForJob(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]application.ApplicantSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS applicant_name,
			u.email AS applicant_email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $1 AND j.recruiter_id = $2
		ORDER BY a.applied_date DESC
		LIMIT $3 OFFSET $4
	`, applicationColumns)

	var models []applicantModel
	if err := r.db.SelectContext(ctx, &models, query, string(jobID), string(recruiterID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}

	out := make([]application.ApplicantSummary, 0, len(models))
	for i := range models {
		out = append(out, models[i].toSummary())
	}

	return out, nil
}

// ListForRecruiter retrieves applications across all the recruiter's jobs
func (r *PostgresApplicationRepository) ListForRecruiter(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]application.ApplicantSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			u.full_name AS applicant_name,
			u.email AS applicant_email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON a.applicant_id = u.id
		WHERE j.recruiter_id = $1
		ORDER BY a.applied_date DESC
		LIMIT $2 OFFSET $3
	`, applicationColumns)

	var models []applicantModel
	if err := r.db.SelectContext(ctx, &models, query, string(recruiterID), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list recruiter applications: %w", err)
	}

	out := make([]application.ApplicantSummary, 0, len(models))
	for i := range models {
		out = append(out, models[i].toSummary())
	}

	return out, nil
}

// UpdateStatus sets an application's status via a join predicate on the
// owning recruiter
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, recruiterID kernel.UserID, status application.ApplicationStatus) (*application.Application, error) {
	query := fmt.Sprintf(`
		UPDATE applications a SET status = $1, updated_at = $2
		FROM jobs j
		WHERE a.id = $3 AND a.job_id = j.id AND j.recruiter_id = $4
		RETURNING %s
	`, applicationColumns)

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, string(status), time.Now(), string(id), string(recruiterID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	entity := model.toEntity()
	return &entity, nil
}

// Withdraw deletes a pending application and decrements the job's counter in
// one transaction. Returns the job ID so the caller can invalidate caches.
func (r *PostgresApplicationRepository) Withdraw(ctx context.Context, id kernel.ApplicationID, applicantID kernel.UserID) (kernel.JobID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin withdraw transaction: %w", err)
	}
	defer tx.Rollback()

	var jobID string
	err = tx.GetContext(ctx, &jobID, `
		DELETE FROM applications
		WHERE id = $1 AND applicant_id = $2 AND status = 'pending'
		RETURNING job_id
	`, string(id), string(applicantID))
	if err == sql.ErrNoRows {
		// Either not ours/missing, or on record past pending
		var status string
		probeErr := tx.GetContext(ctx, &status, `
			SELECT status FROM applications
			WHERE id = $1 AND applicant_id = $2
		`, string(id), string(applicantID))
		if probeErr == nil {
			return "", application.ErrCannotWithdraw().WithDetail("status", status)
		}
		return "", application.ErrApplicationNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to withdraw application: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE jobs SET applications_count = GREATEST(applications_count - 1, 0)
		WHERE id = $1
	`, jobID)
	if err != nil {
		return "", fmt.Errorf("failed to decrement applications counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit withdraw transaction: %w", err)
	}

	return kernel.JobID(jobID), nil
}

// SetResumeAnalysis stores the pipeline's summary and embedding
func (r *PostgresApplicationRepository) SetResumeAnalysis(ctx context.Context, id kernel.ApplicationID, summary kernel.ResumeSummary, embedding kernel.ResumeEmbedding) error {
	query := `
		UPDATE applications
		SET resume_summary = $1, resume_embedding = $2, updated_at = $3
		WHERE id = $4
	`

	res, err := r.db.ExecContext(ctx, query, string(summary), pgvector.NewVector(embedding), time.Now(), string(id))
	if err != nil {
		return fmt.Errorf("failed to store resume analysis: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		// Application withdrawn while the pipeline was running
		return application.ErrApplicationNotFound()
	}

	return nil
}

// MatchApplicants ranks a job's applicants by cosine similarity of their
// resume embedding to the job embedding. Applications without a processed
// resume are excluded.
func (r *PostgresApplicationRepository) MatchApplicants(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, jobEmbedding kernel.ResumeEmbedding, limit int) ([]application.MatchedApplicant, error) {
	query := `
		SELECT
			a.id AS application_id,
			a.applicant_id,
			u.full_name AS applicant_name,
			u.email AS applicant_email,
			a.status,
			a.resume_summary,
			1 - (a.resume_embedding <=> $1) AS similarity,
			a.applied_date
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $2 AND j.recruiter_id = $3 AND a.resume_embedding IS NOT NULL
		ORDER BY a.resume_embedding <=> $1
		LIMIT $4
	`

	type matchModel struct {
		ApplicationID  string         `db:"application_id"`
		ApplicantID    string         `db:"applicant_id"`
		ApplicantName  string         `db:"applicant_name"`
		ApplicantEmail string         `db:"applicant_email"`
		Status         string         `db:"status"`
		ResumeSummary  sql.NullString `db:"resume_summary"`
		Similarity     float64        `db:"similarity"`
		AppliedDate    time.Time      `db:"applied_date"`
	}

	var models []matchModel
	if err := r.db.SelectContext(ctx, &models, query, pgvector.NewVector(jobEmbedding), string(jobID), string(recruiterID), limit); err != nil {
		return nil, fmt.Errorf("failed to match applicants: %w", err)
	}

	matches := make([]application.MatchedApplicant, 0, len(models))
	for _, m := range models {
		matches = append(matches, application.MatchedApplicant{
			ApplicationID:  kernel.ApplicationID(m.ApplicationID),
			ApplicantID:    kernel.UserID(m.ApplicantID),
			ApplicantName:  m.ApplicantName,
			ApplicantEmail: kernel.Email(m.ApplicantEmail),
			Status:         application.ApplicationStatus(m.Status),
			ResumeSummary:  kernel.ResumeSummary(m.ResumeSummary.String),
			Similarity:     m.Similarity,
			AppliedDate:    m.AppliedDate,
		})
	}

	return matches, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
