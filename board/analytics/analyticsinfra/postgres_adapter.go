package analyticsinfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/analytics"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// PostgresAnalyticsRepository implements analytics.Repository using
// PostgreSQL aggregate queries
type PostgresAnalyticsRepository struct {
	db *sqlx.DB
}

// NewPostgresAnalyticsRepository creates a new PostgreSQL analytics
// repository
func NewPostgresAnalyticsRepository(db *sqlx.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{
		db: db,
	}
}

// Overview computes the headline counters in one round-trip
func (r *PostgresAnalyticsRepository) Overview(ctx context.Context) (*analytics.OverviewStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'job_seeker') AS total_job_seekers,
			(SELECT COUNT(*) FROM users WHERE role = 'recruiter') AS total_recruiters,
			(SELECT COUNT(*) FROM jobs WHERE status = 'active') AS active_jobs,
			(SELECT COUNT(*) FROM jobs) AS total_jobs,
			(SELECT COUNT(*) FROM applications) AS total_applications,
			(SELECT COUNT(*) FROM applications WHERE status = 'pending') AS pending_applications,
			(SELECT COUNT(*) FROM applications WHERE status = 'accepted') AS accepted_applications,
			(SELECT AVG(applications_count) FROM jobs WHERE status = 'active') AS avg_applications_per_job
	`

	var stats analytics.OverviewStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to compute overview stats: %w", err)
	}

	return &stats, nil
}

// JobStats aggregates active jobs by type and level within a range
func (r *PostgresAnalyticsRepository) JobStats(ctx context.Context, dateRange analytics.DateRange) ([]analytics.JobStatsRow, error) {
	query := `
		SELECT
			job_type,
			experience_level,
			COUNT(*) AS count,
			AVG(salary_min) AS avg_salary_min,
			AVG(salary_max) AS avg_salary_max,
			AVG(applications_count) AS avg_applications
		FROM jobs
		WHERE status = 'active'
	`

	args := []any{}
	if !dateRange.Start.IsZero() {
		args = append(args, dateRange.Start)
		query += fmt.Sprintf(" AND posted_date >= $%d", len(args))
	}
	if !dateRange.End.IsZero() {
		args = append(args, dateRange.End)
		query += fmt.Sprintf(" AND posted_date <= $%d", len(args))
	}

	query += " GROUP BY job_type, experience_level ORDER BY count DESC"

	var rows []analytics.JobStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to compute job stats: %w", err)
	}

	return rows, nil
}

// ApplicationStats counts applications per day and status within a range
func (r *PostgresAnalyticsRepository) ApplicationStats(ctx context.Context, dateRange analytics.DateRange) ([]analytics.ApplicationStatsRow, error) {
	query := `
		SELECT
			DATE_TRUNC('day', applied_date) AS date,
			status,
			COUNT(*) AS count
		FROM applications
		WHERE 1=1
	`

	args := []any{}
	if !dateRange.Start.IsZero() {
		args = append(args, dateRange.Start)
		query += fmt.Sprintf(" AND applied_date >= $%d", len(args))
	}
	if !dateRange.End.IsZero() {
		args = append(args, dateRange.End)
		query += fmt.Sprintf(" AND applied_date <= $%d", len(args))
	}

	query += " GROUP BY DATE_TRUNC('day', applied_date), status ORDER BY date DESC"

	var rows []analytics.ApplicationStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to compute application stats: %w", err)
	}

	return rows, nil
}

// TopJobs ranks active jobs by applications, then views
func (r *PostgresAnalyticsRepository) TopJobs(ctx context.Context, limit int) ([]analytics.TopJob, error) {
	query := `
		SELECT
			j.id,
			j.title,
			j.company,
			j.location,
			j.posted_date,
			j.applications_count,
			j.views_count,
			u.full_name AS recruiter_name
		FROM jobs j
		JOIN users u ON j.recruiter_id = u.id
		WHERE j.status = 'active'
		ORDER BY j.applications_count DESC, j.views_count DESC
		LIMIT $1
	`

	var rows []analytics.TopJob
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to compute top jobs: %w", err)
	}

	return rows, nil
}

// TopRecruiters ranks recruiters by active postings, then applications
func (r *PostgresAnalyticsRepository) TopRecruiters(ctx context.Context, limit int) ([]analytics.TopRecruiter, error) {
	query := `
		SELECT
			u.id,
			u.full_name,
			u.company_name,
			u.email,
			COUNT(j.id) AS jobs_posted,
			SUM(j.applications_count) AS total_applications,
			AVG(j.views_count) AS avg_views
		FROM users u
		JOIN jobs j ON u.id = j.recruiter_id
		WHERE u.role = 'recruiter' AND j.status = 'active'
		GROUP BY u.id, u.full_name, u.company_name, u.email
		ORDER BY jobs_posted DESC, total_applications DESC
		LIMIT $1
	`

	var rows []analytics.TopRecruiter
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to compute top recruiters: %w", err)
	}

	return rows, nil
}

// UserGrowth counts signups per day and role over the trailing window
func (r *PostgresAnalyticsRepository) UserGrowth(ctx context.Context, days int) ([]analytics.UserGrowthRow, error) {
	query := `
		SELECT
			DATE_TRUNC('day', created_at) AS date,
			role,
			COUNT(*) AS count
		FROM users
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY DATE_TRUNC('day', created_at), role
		ORDER BY date DESC
	`

	var rows []analytics.UserGrowthRow
	if err := r.db.SelectContext(ctx, &rows, query, days); err != nil {
		return nil, fmt.Errorf("failed to compute user growth: %w", err)
	}

	return rows, nil
}

// LocationStats aggregates active postings per location
func (r *PostgresAnalyticsRepository) LocationStats(ctx context.Context) ([]analytics.LocationStat, error) {
	query := `
		SELECT
			location,
			COUNT(*) AS job_count,
			AVG(salary_min) AS avg_salary_min,
			AVG(salary_max) AS avg_salary_max
		FROM jobs
		WHERE status = 'active' AND location IS NOT NULL
		GROUP BY location
		ORDER BY job_count DESC
		LIMIT 15
	`

	var rows []analytics.LocationStat
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to compute location stats: %w", err)
	}

	return rows, nil
}

// ConversionRates ranks viewed active jobs by view-to-application rate
func (r *PostgresAnalyticsRepository) ConversionRates(ctx context.Context) ([]analytics.ConversionRow, error) {
	query := `
		SELECT
			j.id,
			j.title,
			j.views_count,
			j.applications_count,
			CASE
				WHEN j.views_count > 0
				THEN ROUND((j.applications_count::numeric / j.views_count::numeric) * 100, 2)
				ELSE 0
			END AS conversion_rate
		FROM jobs j
		WHERE j.status = 'active' AND j.views_count > 0
		ORDER BY conversion_rate DESC
		LIMIT 20
	`

	var rows []analytics.ConversionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to compute conversion rates: %w", err)
	}

	return rows, nil
}

// RecruiterPerformance sums one recruiter's postings and breaks each down
// by pipeline stage
func (r *PostgresAnalyticsRepository) RecruiterPerformance(ctx context.Context, recruiterID kernel.UserID) (*analytics.RecruiterPerformance, error) {
	overviewQuery := `
		SELECT
			COUNT(*) AS total_jobs,
			SUM(applications_count) AS total_applications,
			AVG(applications_count) AS avg_applications_per_job,
			SUM(views_count) AS total_views
		FROM jobs
		WHERE recruiter_id = $1
	`

	var performance analytics.RecruiterPerformance
	if err := r.db.GetContext(ctx, &performance.Overview, overviewQuery, recruiterID.String()); err != nil {
		return nil, fmt.Errorf("failed to compute recruiter overview: %w", err)
	}

	jobsQuery := `
		SELECT
			j.id,
			j.title,
			j.posted_date,
			j.status,
			j.applications_count,
			j.views_count,
			COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'pending') AS pending_count,
			COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'shortlisted') AS shortlisted_count,
			COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'accepted') AS accepted_count
		FROM jobs j
		LEFT JOIN applications a ON j.id = a.job_id
		WHERE j.recruiter_id = $1
		GROUP BY j.id, j.title, j.posted_date, j.status, j.applications_count, j.views_count
		ORDER BY j.posted_date DESC
	`

	if err := r.db.SelectContext(ctx, &performance.Jobs, jobsQuery, recruiterID.String()); err != nil {
		return nil, fmt.Errorf("failed to compute recruiter job breakdown: %w", err)
	}

	return &performance, nil
}

// SkillsInDemand counts active postings per skill
func (r *PostgresAnalyticsRepository) SkillsInDemand(ctx context.Context, limit int) ([]analytics.SkillDemand, error) {
	query := `
		SELECT
			UNNEST(skills) AS skill,
			COUNT(*) AS job_count,
			AVG(salary_max) AS avg_salary
		FROM jobs
		WHERE status = 'active'
		GROUP BY skill
		ORDER BY job_count DESC
		LIMIT $1
	`

	var rows []analytics.SkillDemand
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to compute skills in demand: %w", err)
	}

	return rows, nil
}
