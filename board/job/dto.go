package job

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// CreateJobRequest - DTO for posting a new job
type CreateJobRequest struct {
	Title           kernel.JobTitle       `json:"title" validate:"required"`
	Description     kernel.JobDescription `json:"description" validate:"required"`
	Company         kernel.CompanyName    `json:"company" validate:"required"`
	Location        kernel.Location       `json:"location" validate:"required"`
	SalaryMin       *int                  `json:"salary_min,omitempty"`
	SalaryMax       *int                  `json:"salary_max,omitempty"`
	JobType         JobType               `json:"job_type" validate:"required"`
	ExperienceLevel ExperienceLevel       `json:"experience_level" validate:"required"`
	Skills          []string              `json:"skills,omitempty"`
	RemoteAllowed   bool                  `json:"remote_allowed"`
	ClosingDate     *time.Time            `json:"closing_date,omitempty"`
}

// UpdateJobRequest - DTO for a partial job update. Nil fields are left
// untouched.
type UpdateJobRequest struct {
	Title           *kernel.JobTitle       `json:"title,omitempty"`
	Description     *kernel.JobDescription `json:"description,omitempty"`
	Company         *kernel.CompanyName    `json:"company,omitempty"`
	Location        *kernel.Location       `json:"location,omitempty"`
	SalaryMin       *int                   `json:"salary_min,omitempty"`
	SalaryMax       *int                   `json:"salary_max,omitempty"`
	JobType         *JobType               `json:"job_type,omitempty"`
	ExperienceLevel *ExperienceLevel       `json:"experience_level,omitempty"`
	Skills          *[]string              `json:"skills,omitempty"`
	RemoteAllowed   *bool                  `json:"remote_allowed,omitempty"`
	ClosingDate     *time.Time             `json:"closing_date,omitempty"`
	Status          *JobStatus             `json:"status,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Company == nil &&
		r.Location == nil && r.SalaryMin == nil && r.SalaryMax == nil &&
		r.JobType == nil && r.ExperienceLevel == nil && r.Skills == nil &&
		r.RemoteAllowed == nil && r.ClosingDate == nil && r.Status == nil
}

// Filters describes the listing/search filter set.
type Filters struct {
	Location        string          `json:"location,omitempty"`
	JobType         JobType         `json:"job_type,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	SalaryMin       *int            `json:"salary_min,omitempty"`
	RemoteAllowed   bool            `json:"remote_allowed,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
}

// DetailResponse - a job joined with recruiter info and the viewer's
// personalization flags. Flags default to false for anonymous viewers.
type DetailResponse struct {
	Job
	RecruiterName string `db:"recruiter_name" json:"recruiter_name"`
	CompanyName   string `db:"company_name" json:"company_name"`
	IsSaved       bool   `db:"is_saved" json:"is_saved"`
	HasApplied    bool   `db:"has_applied" json:"has_applied"`
}

// Summary - the row shape returned in listings: job plus recruiter info.
type Summary struct {
	Job
	RecruiterName string `db:"recruiter_name" json:"recruiter_name"`
	CompanyName   string `db:"company_name" json:"company_name"`
}

// ListResponse - the public paginated listing payload.
type ListResponse struct {
	Jobs       []Summary `json:"jobs"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// RecruiterJobSummary - a recruiter's own job with its live application count
// aggregated from application rows rather than the advisory counter.
type RecruiterJobSummary struct {
	Job
	ApplicationRows int `db:"application_rows" json:"applications"`
}

// SavedJobSummary - a saved job with the time it was saved.
type SavedJobSummary struct {
	Summary
	SavedDate time.Time `db:"saved_date" json:"saved_date"`
}
