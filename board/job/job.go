package job

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// JobStatus represents the lifecycle status of a job posting
type JobStatus string

const (
	JobStatusActive JobStatus = "active" // Accepting applications, listed and searchable
	JobStatusClosed JobStatus = "closed" // Soft-deleted: unlisted and unsearchable, still fetchable by id
)

// JobType represents the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

// IsValid checks the job type against the known set
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

// ExperienceLevel represents the seniority a posting targets
type ExperienceLevel string

const (
	ExperienceLevelEntry     ExperienceLevel = "entry"
	ExperienceLevelMid       ExperienceLevel = "mid"
	ExperienceLevelSenior    ExperienceLevel = "senior"
	ExperienceLevelLead      ExperienceLevel = "lead"
	ExperienceLevelExecutive ExperienceLevel = "executive"
)

// IsValid checks the experience level against the known set
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceLevelEntry, ExperienceLevelMid, ExperienceLevelSenior, ExperienceLevelLead, ExperienceLevelExecutive:
		return true
	}
	return false
}

// CounterField names the advisory counters on a job. They are display-only and
// never used for authorization or correctness decisions.
type CounterField string

const (
	CounterApplications CounterField = "applications_count"
	CounterViews        CounterField = "views_count"
)

type Job struct {
	ID                kernel.JobID          `db:"id" json:"id"`
	RecruiterID       kernel.UserID         `db:"recruiter_id" json:"recruiter_id"`
	Title             kernel.JobTitle       `db:"title" json:"title"`
	Description       kernel.JobDescription `db:"description" json:"description"`
	Company           kernel.CompanyName    `db:"company" json:"company"`
	Location          kernel.Location       `db:"location" json:"location"`
	SalaryMin         *int                  `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax         *int                  `db:"salary_max" json:"salary_max,omitempty"`
	JobType           JobType               `db:"job_type" json:"job_type"`
	ExperienceLevel   ExperienceLevel       `db:"experience_level" json:"experience_level"`
	Skills            []string              `db:"skills" json:"skills"`
	Status            JobStatus             `db:"status" json:"status"`
	RemoteAllowed     bool                  `db:"remote_allowed" json:"remote_allowed"`
	PostedDate        time.Time             `db:"posted_date" json:"posted_date"`
	ClosingDate       *time.Time            `db:"closing_date" json:"closing_date,omitempty"`
	ApplicationsCount int                   `db:"applications_count" json:"applications_count"`
	ViewsCount        int                   `db:"views_count" json:"views_count"`
	CreatedAt         time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the job is accepting applications
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}

// IsClosed checks if the job has been closed
func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// Close marks the job as closed
func (j *Job) Close() {
	j.Status = JobStatusClosed
	j.UpdatedAt = time.Now()
}

// ValidateSalaryRange checks that min <= max when both bounds are present
func (j *Job) ValidateSalaryRange() bool {
	if j.SalaryMin != nil && j.SalaryMax != nil {
		return *j.SalaryMin <= *j.SalaryMax
	}
	return true
}
