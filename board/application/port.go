package application

import (
	"context"
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type Repository interface {
	// Apply inserts an application and bumps the job's applications counter
	// in one transaction. The unique (job_id, applicant_id) constraint is the
	// sole duplicate guard; a violation surfaces as ErrAlreadyApplied. A
	// missing or inactive job surfaces as ErrJobNotAvailable.
	Apply(ctx context.Context, app *Application) error

	// GetByID retrieves an application visible to the viewer: its applicant
	// or the recruiter owning its job
	GetByID(ctx context.Context, id kernel.ApplicationID, viewerID kernel.UserID) (*Application, error)

	// ListMine retrieves the applicant's applications with job context,
	// newest first
	ListMine(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) ([]MineSummary, error)

	// ListForJob retrieves a job's applications, scoped to the owning
	// recruiter
	ListForJob(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]ApplicantSummary, error)

	// ListForRecruiter retrieves applications across all the recruiter's jobs
	ListForRecruiter(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]ApplicantSummary, error)

	// UpdateStatus sets an application's status, scoped to the recruiter
	// owning its job
	UpdateStatus(ctx context.Context, id kernel.ApplicationID, recruiterID kernel.UserID, status ApplicationStatus) (*Application, error)

	// Withdraw deletes a pending application scoped to its applicant and
	// decrements the job's applications counter in one transaction
	Withdraw(ctx context.Context, id kernel.ApplicationID, applicantID kernel.UserID) (kernel.JobID, error)

	// SetResumeAnalysis stores the pipeline's summary and embedding
	SetResumeAnalysis(ctx context.Context, id kernel.ApplicationID, summary kernel.ResumeSummary, embedding kernel.ResumeEmbedding) error

	// MatchApplicants ranks a job's applicants by resume similarity to the
	// job embedding, scoped to the owning recruiter
	MatchApplicants(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, jobEmbedding kernel.ResumeEmbedding, limit int) ([]MatchedApplicant, error)
}

// JobQueue is the async hand-off between apply and the resume pipeline
type JobQueue interface {
	// Enqueue pushes a job onto the ready queue
	Enqueue(ctx context.Context, job *ResumeJob) error

	// Dequeue pops a job, blocking up to timeout. A nil result with nil
	// error means the queue stayed empty.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a retry for later
	EnqueueDelayed(ctx context.Context, job *ResumeJob, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed jobs onto the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}
