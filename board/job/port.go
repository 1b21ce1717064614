package job

import (
	"context"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type Repository interface {
	// Create inserts a new job
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID regardless of status
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetDetail retrieves a job joined with recruiter info and the viewer's
	// personalization flags. An empty viewerID means anonymous.
	GetDetail(ctx context.Context, id kernel.JobID, viewerID kernel.UserID) (*DetailResponse, error)

	// ListActive retrieves active jobs matching filters, newest first, with
	// the total matching count
	ListActive(ctx context.Context, filters Filters, pagination kernel.PaginationOptions) ([]Summary, int, error)

	// ListAllActive retrieves every active job (used for bulk reindexing)
	ListAllActive(ctx context.Context) ([]Job, error)

	// GetSummariesByIDs retrieves listing rows for the given IDs, in no
	// particular order
	GetSummariesByIDs(ctx context.Context, ids []kernel.JobID) ([]Summary, error)

	// UpdateFields applies a partial update scoped to (id, recruiterID).
	// A nil job with ErrJobNotFound means no row matched the compound
	// predicate - the caller cannot tell a missing job from one it does
	// not own.
	UpdateFields(ctx context.Context, id kernel.JobID, recruiterID kernel.UserID, update UpdateJobRequest) (*Job, error)

	// SetStatus changes a job's status scoped to (id, recruiterID)
	SetStatus(ctx context.Context, id kernel.JobID, recruiterID kernel.UserID, status JobStatus) (*Job, error)

	// IncrementCounter adjusts an advisory counter by delta
	IncrementCounter(ctx context.Context, id kernel.JobID, field CounterField, delta int) error

	// ListByRecruiter retrieves a recruiter's own jobs with live application
	// counts
	ListByRecruiter(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]RecruiterJobSummary, error)

	// SaveJob bookmarks a job for a user; saving twice is a no-op
	SaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error

	// UnsaveJob removes a bookmark
	UnsaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error

	// ListSaved retrieves a user's bookmarked jobs, most recently saved first
	ListSaved(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) ([]SavedJobSummary, error)
}
