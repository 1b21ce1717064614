package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/search"
	"github.com/jobpulse/jobpulse/pkg/cachex"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const (
	detailTTL = 5 * time.Minute
	listTTL   = 5 * time.Minute

	sideEffectTimeout = 5 * time.Second
)

// JobService provides business operations for job postings
type JobService struct {
	jobRepo  job.Repository
	cache    cachex.Cache
	index    search.Index
	recorder activity.Recorder
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	cache cachex.Cache,
	index search.Index,
	recorder activity.Recorder,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		cache:    cache,
		index:    index,
		recorder: recorder,
	}
}

// CreateJob creates a new active job posting owned by the recruiter
func (s *JobService) CreateJob(ctx context.Context, recruiterID kernel.UserID, req job.CreateJobRequest) (*job.Job, error) {
	if !req.JobType.IsValid() {
		return nil, job.ErrInvalidJobType().WithDetail("job_type", string(req.JobType))
	}
	if !req.ExperienceLevel.IsValid() {
		return nil, job.ErrInvalidExperience().WithDetail("experience_level", string(req.ExperienceLevel))
	}

	now := time.Now()
	newJob := &job.Job{
		ID:              kernel.NewJobID(uuid.NewString()),
		RecruiterID:     recruiterID,
		Title:           req.Title,
		Description:     req.Description,
		Company:         req.Company,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Skills:          req.Skills,
		Status:          job.JobStatusActive,
		RemoteAllowed:   req.RemoteAllowed,
		PostedDate:      now,
		ClosingDate:     req.ClosingDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if !newJob.ValidateSalaryRange() {
		return nil, job.ErrInvalidSalaryRange()
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	s.invalidateListings(ctx)
	s.indexUpsert(newJob)

	return newJob, nil
}

// GetJob retrieves a single job as seen by the viewer. An empty viewerID
// means anonymous. Every successful read counts as a view.
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID, viewerID kernel.UserID) (*job.DetailResponse, error) {
	key := DetailKey(jobID, viewerID)

	var cached job.DetailResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logx.Warnf("job detail cache read failed: %v", err)
	}
	if hit {
		s.recordView(jobID, viewerID)
		return &cached, nil
	}

	detail, err := s.jobRepo.GetDetail(ctx, jobID, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, detail, detailTTL); err != nil {
		logx.Warnf("job detail cache write failed: %v", err)
	}

	s.recordView(jobID, viewerID)
	return detail, nil
}

// ListJobs retrieves a page of active jobs matching the filters
func (s *JobService) ListJobs(ctx context.Context, filters job.Filters, pagination kernel.PaginationOptions) (*job.ListResponse, error) {
	pagination = pagination.Normalize()
	key := ListKey(filters, pagination)

	var cached job.ListResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logx.Warnf("job listing cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	summaries, total, err := s.jobRepo.ListActive(ctx, filters, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	resp := &job.ListResponse{
		Jobs:       summaries,
		Total:      total,
		Page:       pagination.Page,
		TotalPages: kernel.NewPage(pagination, total).Pages,
	}

	if err := s.cache.Set(ctx, key, resp, listTTL); err != nil {
		logx.Warnf("job listing cache write failed: %v", err)
	}

	return resp, nil
}

// UpdateJob applies a partial update to a job the recruiter owns
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID, req job.UpdateJobRequest) (*job.Job, error) {
	if req.IsEmpty() {
		return nil, job.ErrValidationFailed().WithDetail("reason", "no fields to update")
	}
	if req.JobType != nil && !req.JobType.IsValid() {
		return nil, job.ErrInvalidJobType().WithDetail("job_type", string(*req.JobType))
	}
	if req.ExperienceLevel != nil && !req.ExperienceLevel.IsValid() {
		return nil, job.ErrInvalidExperience().WithDetail("experience_level", string(*req.ExperienceLevel))
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, job.ErrInvalidSalaryRange()
	}

	updated, err := s.jobRepo.UpdateFields(ctx, jobID, recruiterID, req)
	if err != nil {
		return nil, err
	}

	s.invalidateJob(ctx, jobID)

	if updated.IsActive() {
		s.indexUpsert(updated)
	} else {
		s.indexDelete(updated.ID)
	}

	return updated, nil
}

// CloseJob closes a job the recruiter owns. Closed jobs disappear from
// listings and search but stay fetchable by id.
func (s *JobService) CloseJob(ctx context.Context, jobID kernel.JobID, recruiterID kernel.UserID) (*job.Job, error) {
	closed, err := s.jobRepo.SetStatus(ctx, jobID, recruiterID, job.JobStatusClosed)
	if err != nil {
		return nil, err
	}

	s.invalidateJob(ctx, jobID)
	s.indexDelete(jobID)

	return closed, nil
}

// ListRecruiterJobs retrieves the recruiter's own jobs with live application
// counts
func (s *JobService) ListRecruiterJobs(ctx context.Context, recruiterID kernel.UserID, pagination kernel.PaginationOptions) ([]job.RecruiterJobSummary, error) {
	jobs, err := s.jobRepo.ListByRecruiter(ctx, recruiterID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list recruiter jobs", errx.TypeInternal)
	}
	return jobs, nil
}

// SaveJob bookmarks a job for the user. Saving an already-saved job is a
// no-op, not an error.
func (s *JobService) SaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	if err := s.jobRepo.SaveJob(ctx, userID, jobID); err != nil {
		return err
	}

	// The viewer's cached detail carries a stale is_saved flag until evicted
	if err := s.cache.DeleteByPattern(ctx, DetailKeyPattern(jobID)); err != nil {
		logx.Warnf("job detail cache invalidation failed: %v", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.recorder.RecordJobActivity(ctx, userID, jobID, activity.ActivitySave); err != nil {
			logx.Warnf("failed to record save activity: %v", err)
		}
	}()

	return nil
}

// UnsaveJob removes a bookmark
func (s *JobService) UnsaveJob(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	if err := s.jobRepo.UnsaveJob(ctx, userID, jobID); err != nil {
		return err
	}

	if err := s.cache.DeleteByPattern(ctx, DetailKeyPattern(jobID)); err != nil {
		logx.Warnf("job detail cache invalidation failed: %v", err)
	}

	return nil
}

// ListSavedJobs retrieves the user's bookmarked jobs
func (s *JobService) ListSavedJobs(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) ([]job.SavedJobSummary, error) {
	saved, err := s.jobRepo.ListSaved(ctx, userID, pagination.Normalize())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list saved jobs", errx.TypeInternal)
	}
	return saved, nil
}

// ============================================================================
// Side Effects
// ============================================================================

// invalidateJob evicts every cached copy of one job plus all listing pages
func (s *JobService) invalidateJob(ctx context.Context, jobID kernel.JobID) {
	if err := s.cache.DeleteByPattern(ctx, DetailKeyPattern(jobID)); err != nil {
		logx.Warnf("job detail cache invalidation failed: %v", err)
	}
	s.invalidateListings(ctx)
}

func (s *JobService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, ListKeyPattern()); err != nil {
		logx.Warnf("job listing cache invalidation failed: %v", err)
	}
}

// recordView bumps the advisory view counter and, for authenticated viewers,
// records the view activity. Runs off the request path: a read never fails
// because its side effects did.
func (s *JobService) recordView(jobID kernel.JobID, viewerID kernel.UserID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()

		if err := s.jobRepo.IncrementCounter(ctx, jobID, job.CounterViews, 1); err != nil {
			logx.Warnf("failed to increment view counter: %v", err)
		}

		if viewerID.IsEmpty() {
			return
		}
		if err := s.recorder.RecordJobActivity(ctx, viewerID, jobID, activity.ActivityView); err != nil {
			logx.Warnf("failed to record view activity: %v", err)
		}
	}()
}

// indexUpsert mirrors a job into the search index. Best-effort: the store is
// authoritative and a reindex repairs any drift.
func (s *JobService) indexUpsert(j *job.Job) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.index.Upsert(ctx, j.ID, search.DocumentFromJob(j)); err != nil {
			logx.Warnf("failed to index job %s: %v", j.ID, err)
		}
	}()
}

func (s *JobService) indexDelete(jobID kernel.JobID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.index.Delete(ctx, jobID); err != nil {
			logx.Warnf("failed to remove job %s from index: %v", jobID, err)
		}
	}()
}
