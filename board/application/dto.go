package application

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// ApplyRequest - DTO for submitting an application
type ApplyRequest struct {
	JobID       kernel.JobID     `json:"job_id" validate:"required"`
	CoverLetter string           `json:"cover_letter,omitempty"`
	ResumeURL   kernel.BucketURL `json:"resume_url,omitempty"`
}

// UpdateStatusRequest - DTO for a recruiter's status decision
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
}

// ApplicantSummary - an application joined with applicant identity, the shape
// recruiters see
type ApplicantSummary struct {
	Application
	ApplicantName  string       `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail kernel.Email `db:"applicant_email" json:"applicant_email"`
}

// MineSummary - an application joined with its job, the shape applicants see
type MineSummary struct {
	Application
	JobTitle kernel.JobTitle    `db:"job_title" json:"job_title"`
	Company  kernel.CompanyName `db:"company" json:"company"`
	JobStatus string            `db:"job_status" json:"job_status"`
}

// MatchedApplicant - an applicant ranked by resume relevance to the job
// description
type MatchedApplicant struct {
	ApplicationID  kernel.ApplicationID `db:"application_id" json:"application_id"`
	ApplicantID    kernel.UserID        `db:"applicant_id" json:"applicant_id"`
	ApplicantName  string               `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail kernel.Email         `db:"applicant_email" json:"applicant_email"`
	Status         ApplicationStatus    `db:"status" json:"status"`
	ResumeSummary  kernel.ResumeSummary `db:"resume_summary" json:"resume_summary,omitempty"`
	Similarity     float64              `db:"similarity" json:"similarity"`
	AppliedDate    time.Time            `db:"applied_date" json:"applied_date"`
}

// ResumeJob is the queued payload for the async resume pipeline
type ResumeJob struct {
	ApplicationID kernel.ApplicationID `json:"application_id"`
	ResumeURL     kernel.BucketURL     `json:"resume_url"`
	AttemptCount  int                  `json:"attempt_count"`
	MaxAttempts   int                  `json:"max_attempts"`
	EnqueuedAt    time.Time            `json:"enqueued_at"`
}
