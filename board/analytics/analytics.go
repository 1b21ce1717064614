package analytics

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// OverviewStats is the admin dashboard headline row.
type OverviewStats struct {
	TotalJobSeekers      int      `db:"total_job_seekers" json:"total_job_seekers"`
	TotalRecruiters      int      `db:"total_recruiters" json:"total_recruiters"`
	ActiveJobs           int      `db:"active_jobs" json:"active_jobs"`
	TotalJobs            int      `db:"total_jobs" json:"total_jobs"`
	TotalApplications    int      `db:"total_applications" json:"total_applications"`
	PendingApplications  int      `db:"pending_applications" json:"pending_applications"`
	AcceptedApplications int      `db:"accepted_applications" json:"accepted_applications"`
	AvgApplicationsPerJob *float64 `db:"avg_applications_per_job" json:"avg_applications_per_job"`
}

// JobStatsRow aggregates active jobs by type and level.
type JobStatsRow struct {
	JobType         string   `db:"job_type" json:"job_type"`
	ExperienceLevel string   `db:"experience_level" json:"experience_level"`
	Count           int      `db:"count" json:"count"`
	AvgSalaryMin    *float64 `db:"avg_salary_min" json:"avg_salary_min"`
	AvgSalaryMax    *float64 `db:"avg_salary_max" json:"avg_salary_max"`
	AvgApplications *float64 `db:"avg_applications" json:"avg_applications"`
}

// ApplicationStatsRow counts applications per day and status.
type ApplicationStatsRow struct {
	Date   time.Time `db:"date" json:"date"`
	Status string    `db:"status" json:"status"`
	Count  int       `db:"count" json:"count"`
}

// TopJob is one entry in the most-applied-to ranking.
type TopJob struct {
	ID                kernel.JobID `db:"id" json:"id"`
	Title             string       `db:"title" json:"title"`
	Company           string       `db:"company" json:"company"`
	Location          string       `db:"location" json:"location"`
	PostedDate        time.Time    `db:"posted_date" json:"posted_date"`
	ApplicationsCount int          `db:"applications_count" json:"applications_count"`
	ViewsCount        int          `db:"views_count" json:"views_count"`
	RecruiterName     string       `db:"recruiter_name" json:"recruiter_name"`
}

// UserGrowthRow counts signups per day and role.
type UserGrowthRow struct {
	Date  time.Time `db:"date" json:"date"`
	Role  string    `db:"role" json:"role"`
	Count int       `db:"count" json:"count"`
}

// TopRecruiter is one entry in the most-active-recruiters ranking.
type TopRecruiter struct {
	ID                kernel.UserID `db:"id" json:"id"`
	FullName          string        `db:"full_name" json:"full_name"`
	CompanyName       *string       `db:"company_name" json:"company_name"`
	Email             string        `db:"email" json:"email"`
	JobsPosted        int           `db:"jobs_posted" json:"jobs_posted"`
	TotalApplications *int          `db:"total_applications" json:"total_applications"`
	AvgViews          *float64      `db:"avg_views" json:"avg_views"`
}

// LocationStat aggregates active postings per location.
type LocationStat struct {
	Location     string   `db:"location" json:"location"`
	JobCount     int      `db:"job_count" json:"job_count"`
	AvgSalaryMin *float64 `db:"avg_salary_min" json:"avg_salary_min"`
	AvgSalaryMax *float64 `db:"avg_salary_max" json:"avg_salary_max"`
}

// ConversionRow is the view-to-application rate for one active job.
type ConversionRow struct {
	ID                kernel.JobID `db:"id" json:"id"`
	Title             string       `db:"title" json:"title"`
	ViewsCount        int          `db:"views_count" json:"views_count"`
	ApplicationsCount int          `db:"applications_count" json:"applications_count"`
	ConversionRate    float64      `db:"conversion_rate" json:"conversion_rate"`
}

// RecruiterOverview sums one recruiter's postings across every status.
type RecruiterOverview struct {
	TotalJobs             int      `db:"total_jobs" json:"total_jobs"`
	TotalApplications     *int     `db:"total_applications" json:"total_applications"`
	AvgApplicationsPerJob *float64 `db:"avg_applications_per_job" json:"avg_applications_per_job"`
	TotalViews            *int     `db:"total_views" json:"total_views"`
}

// RecruiterJobRow is one posting in a recruiter's performance breakdown,
// with applications split by pipeline stage.
type RecruiterJobRow struct {
	ID                kernel.JobID `db:"id" json:"id"`
	Title             string       `db:"title" json:"title"`
	PostedDate        time.Time    `db:"posted_date" json:"posted_date"`
	Status            string       `db:"status" json:"status"`
	ApplicationsCount int          `db:"applications_count" json:"applications_count"`
	ViewsCount        int          `db:"views_count" json:"views_count"`
	PendingCount      int          `db:"pending_count" json:"pending_count"`
	ShortlistedCount  int          `db:"shortlisted_count" json:"shortlisted_count"`
	AcceptedCount     int          `db:"accepted_count" json:"accepted_count"`
}

// RecruiterPerformance pairs the recruiter's totals with the per-job
// breakdown behind them.
type RecruiterPerformance struct {
	Overview RecruiterOverview `json:"overview"`
	Jobs     []RecruiterJobRow `json:"jobs"`
}

// SkillDemand counts active postings asking for a skill.
type SkillDemand struct {
	Skill     string   `db:"skill" json:"skill"`
	JobCount  int      `db:"job_count" json:"job_count"`
	AvgSalary *float64 `db:"avg_salary" json:"avg_salary"`
}

// DateRange bounds an aggregate query; either end may be zero.
type DateRange struct {
	Start time.Time
	End   time.Time
}
