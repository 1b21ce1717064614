package applicationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/job/jobsrv"
	"github.com/jobpulse/jobpulse/internal/ai/embeddings"
	"github.com/jobpulse/jobpulse/pkg/cachex"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const (
	resumeJobMaxAttempts = 3
	sideEffectTimeout    = 5 * time.Second
	defaultMatchLimit    = 20
)

// ApplicationService provides business operations for applications
type ApplicationService struct {
	appRepo  application.Repository
	jobRepo  job.Repository
	queue    application.JobQueue
	cache    cachex.Cache
	recorder activity.Recorder
	embedGen *embeddings.Generator
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	appRepo application.Repository,
	jobRepo job.Repository,
	queue application.JobQueue,
	cache cachex.Cache,
	recorder activity.Recorder,
	embedGen *embeddings.Generator,
) *ApplicationService {
	return &ApplicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		queue:    queue,
		cache:    cache,
		recorder: recorder,
		embedGen: embedGen,
	}
}

// Apply submits an application. Duplicate detection rides entirely on the
// unique (job_id, applicant_id) constraint, so concurrent duplicates cannot
// both land.
func (s *ApplicationService) Apply(ctx context.Context, applicantID kernel.UserID, req application.ApplyRequest) (*application.Application, error) {
	if req.JobID.IsEmpty() {
		return nil, application.ErrValidationFailed().WithDetail("job_id", "missing or empty")
	}

	now := time.Now()
	app := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       req.JobID,
		ApplicantID: applicantID,
		Status:      application.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		AppliedDate: now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Apply(ctx, app); err != nil {
		return nil, err
	}

	s.invalidateJobCaches(ctx, req.JobID)
	s.enqueueResume(ctx, app)
	s.recordApply(applicantID, req.JobID)

	return app, nil
}

// GetApplication retrieves an application visible to the viewer
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID, viewerID kernel.UserID) (*application.Application, error) {
	return s.appRepo.GetByID(ctx, id, viewerID)
}

// ListMyApplications retrieves the applicant's applications with job context
func (s *ApplicationService) ListMyApplications(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) ([]application.MineSummary, error) {
	apps, err := s.appRepo.ListMine(ctx, applicantID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListJobApplications retrieves a job's applications for its owning recruiter
func (s *ApplicationService) ListJobApplications(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]application.ApplicantSummary, error) {
	apps, err := s.appRepo.ListForJob(ctx, jobID, recruiterID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list job applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListRecruiterApplications retrieves applications across all the
// recruiter's jobs
func (s *ApplicationService) ListRecruiterApplications(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]application.ApplicantSummary, error) {
	apps, err := s.appRepo.ListForRecruiter(ctx, recruiterID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list recruiter applications", errx.TypeInternal)
	}
	return apps, nil
}

// UpdateStatus advances an application through the funnel. Only the
// recruiter owning its job may do so; pending is applicant-only territory
// and cannot be re-entered.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, recruiterID kernel.UserID, status application.ApplicationStatus) (*application.Application, error) {
	if !status.IsValid() || status == application.ApplicationStatusPending {
		return nil, application.ErrInvalidStatus().WithDetail("status", string(status))
	}

	return s.appRepo.UpdateStatus(ctx, id, recruiterID, status)
}

// Withdraw deletes the applicant's own pending application
func (s *ApplicationService) Withdraw(ctx context.Context, id kernel.ApplicationID, applicantID kernel.UserID) error {
	jobID, err := s.appRepo.Withdraw(ctx, id, applicantID)
	if err != nil {
		return err
	}

	s.invalidateJobCaches(ctx, jobID)
	return nil
}

// MatchApplicants ranks a job's applicants by resume similarity to the job
// posting. The embedding of the posting text is computed on demand.
func (s *ApplicationService) MatchApplicants(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, limit int) ([]application.MatchedApplicant, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if jobEntity.RecruiterID != recruiterID {
		return nil, job.ErrJobNotFound()
	}

	if limit < 1 || limit > 100 {
		limit = defaultMatchLimit
	}

	text := fmt.Sprintf("%s\n%s\nSkills: %v", jobEntity.Title, jobEntity.Description, jobEntity.Skills)
	jobEmbedding, err := s.embedGen.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, errx.Wrap(err, "failed to embed job posting", errx.TypeExternal)
	}

	matches, err := s.appRepo.MatchApplicants(ctx, jobID, recruiterID, jobEmbedding, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to match applicants", errx.TypeInternal)
	}

	return matches, nil
}

// ============================================================================
// Side Effects
// ============================================================================

// invalidateJobCaches evicts the job's detail entries (has_applied flag,
// counter) and every listing page (counters appear there too)
func (s *ApplicationService) invalidateJobCaches(ctx context.Context, jobID kernel.JobID) {
	if err := s.cache.DeleteByPattern(ctx, jobsrv.DetailKeyPattern(jobID)); err != nil {
		logx.Warnf("job detail cache invalidation failed: %v", err)
	}
	if err := s.cache.DeleteByPattern(ctx, jobsrv.ListKeyPattern()); err != nil {
		logx.Warnf("job listing cache invalidation failed: %v", err)
	}
}

// enqueueResume hands the resume off to the async pipeline. Best-effort: an
// application without an analyzed resume is still a valid application.
func (s *ApplicationService) enqueueResume(ctx context.Context, app *application.Application) {
	if app.ResumeURL == "" {
		return
	}

	err := s.queue.Enqueue(ctx, &application.ResumeJob{
		ApplicationID: app.ID,
		ResumeURL:     app.ResumeURL,
		AttemptCount:  0,
		MaxAttempts:   resumeJobMaxAttempts,
		EnqueuedAt:    time.Now(),
	})
	if err != nil {
		logx.Warnf("failed to enqueue resume for application %s: %v", app.ID, err)
	}
}

func (s *ApplicationService) recordApply(applicantID kernel.UserID, jobID kernel.JobID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.recorder.RecordJobActivity(ctx, applicantID, jobID, activity.ActivityApply); err != nil {
			logx.Warnf("failed to record apply activity: %v", err)
		}
	}()
}
