package application

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// ApplicationStatus represents where an application sits in the hiring
// funnel. Only the owning recruiter advances it past pending.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// IsValid checks the status against the known set
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID              kernel.ApplicationID   `db:"id" json:"id"`
	JobID           kernel.JobID           `db:"job_id" json:"job_id"`
	ApplicantID     kernel.UserID          `db:"applicant_id" json:"applicant_id"`
	Status          ApplicationStatus      `db:"status" json:"status"`
	CoverLetter     string                 `db:"cover_letter" json:"cover_letter,omitempty"`
	ResumeURL       kernel.BucketURL       `db:"resume_url" json:"resume_url,omitempty"`
	ResumeSummary   kernel.ResumeSummary   `db:"resume_summary" json:"resume_summary,omitempty"`
	ResumeEmbedding kernel.ResumeEmbedding `db:"resume_embedding" json:"-"`
	AppliedDate     time.Time              `db:"applied_date" json:"applied_date"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPending checks if the application is still awaiting review
func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// CanWithdraw checks if the applicant may still withdraw. Once a recruiter
// has acted on an application it stays on record.
func (a *Application) CanWithdraw() bool {
	return a.IsPending()
}
