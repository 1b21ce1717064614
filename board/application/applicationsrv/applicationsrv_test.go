package applicationsrv

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/job/jobsrv"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type fakeAppRepo struct {
	application.Repository

	mu          sync.Mutex
	applied     []*application.Application
	applyErr    error
	withdrawJob kernel.JobID
	withdrawErr error
	updated     *application.Application
}

func (r *fakeAppRepo) Apply(_ context.Context, app *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applied = append(r.applied, app)
	return nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, _ kernel.ApplicationID, _ kernel.UserID, status application.ApplicationStatus) (*application.Application, error) {
	if r.updated == nil {
		return nil, application.ErrApplicationNotFound()
	}
	r.updated.Status = status
	return r.updated, nil
}

func (r *fakeAppRepo) Withdraw(_ context.Context, _ kernel.ApplicationID, _ kernel.UserID) (kernel.JobID, error) {
	return r.withdrawJob, r.withdrawErr
}

type fakeJobRepo struct {
	job.Repository

	jobs map[kernel.JobID]*job.Job
}

func (r *fakeJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return j, nil
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []*application.ResumeJob
}

func (q *fakeQueue) Enqueue(_ context.Context, rj *application.ResumeJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, rj)
	return nil
}

func (q *fakeQueue) Dequeue(_ context.Context, _ time.Duration) ([]byte, error) {
	return nil, nil
}

func (q *fakeQueue) EnqueueDelayed(_ context.Context, _ *application.ResumeJob, _ time.Duration) error {
	return nil
}

func (q *fakeQueue) MoveDelayedToReady(_ context.Context) (int, error) {
	return 0, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type fakeRecorder struct {
	mu sync.Mutex
}

func (r *fakeRecorder) RecordJobActivity(_ context.Context, _ kernel.UserID, _ kernel.JobID, _ activity.ActivityType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return nil
}

func (r *fakeRecorder) RecordSearch(_ context.Context, _ kernel.UserID, _ string) error {
	return nil
}

func newTestService(appRepo *fakeAppRepo, jobRepo *fakeJobRepo, queue *fakeQueue, cache *fakeCache) *ApplicationService {
	if jobRepo == nil {
		jobRepo = &fakeJobRepo{}
	}
	if queue == nil {
		queue = &fakeQueue{}
	}
	if cache == nil {
		cache = newFakeCache()
	}
	return NewApplicationService(appRepo, jobRepo, queue, cache, &fakeRecorder{}, nil)
}

func TestApplyRequiresJobID(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeAppRepo{}, nil, nil, nil)

	_, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{})
	if !errx.IsCode(err, application.CodeValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyStartsPending(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{}
	svc := newTestService(repo, nil, nil, nil)

	app, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{
		JobID:       kernel.NewJobID("j1"),
		CoverLetter: "hello",
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if app.Status != application.ApplicationStatusPending {
		t.Fatalf("new applications should be pending, got %q", app.Status)
	}
	if app.ID.IsEmpty() {
		t.Fatalf("expected a generated id")
	}
}

func TestApplyPropagatesDuplicateConflict(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{applyErr: application.ErrAlreadyApplied()}
	svc := newTestService(repo, nil, nil, nil)

	_, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{
		JobID: kernel.NewJobID("j1"),
	})
	if !errx.IsCode(err, application.CodeAlreadyApplied) {
		t.Fatalf("expected already-applied conflict, got %v", err)
	}
}

func TestApplyToClosedJobIsRejected(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{applyErr: application.ErrJobNotAvailable()}
	svc := newTestService(repo, nil, nil, nil)

	_, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{
		JobID: kernel.NewJobID("closed-job"),
	})
	if !errx.IsCode(err, application.CodeJobNotAvailable) {
		t.Fatalf("expected job-not-available, got %v", err)
	}
}

func TestApplyEnqueuesResumeOnlyWhenPresent(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{}
	svc := newTestService(&fakeAppRepo{}, nil, queue, nil)

	if _, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{
		JobID: kernel.NewJobID("j1"),
	}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	queue.mu.Lock()
	if len(queue.enqueued) != 0 {
		t.Fatalf("no resume, nothing to enqueue; got %d jobs", len(queue.enqueued))
	}
	queue.mu.Unlock()

	if _, err := svc.Apply(context.Background(), kernel.NewUserID("u2"), application.ApplyRequest{
		JobID:     kernel.NewJobID("j1"),
		ResumeURL: "s3://bucket/resume.pdf",
	}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	queue.mu.Lock()
	defer queue.mu.Unlock()
	if len(queue.enqueued) != 1 {
		t.Fatalf("expected one queued resume job, got %d", len(queue.enqueued))
	}
	rj := queue.enqueued[0]
	if rj.MaxAttempts != resumeJobMaxAttempts || rj.AttemptCount != 0 {
		t.Fatalf("unexpected attempt budget %+v", rj)
	}
}

func TestApplyEvictsJobCaches(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	svc := newTestService(&fakeAppRepo{}, nil, nil, cache)

	detailKey := jobsrv.DetailKey(kernel.NewJobID("j1"), kernel.NewUserID("u1"))
	listKey := jobsrv.ListKey(job.Filters{}, kernel.PaginationOptions{Page: 1, PageSize: 20})
	cache.Set(context.Background(), detailKey, "stale", time.Minute)
	cache.Set(context.Background(), listKey, "stale", time.Minute)

	if _, err := svc.Apply(context.Background(), kernel.NewUserID("u1"), application.ApplyRequest{
		JobID: kernel.NewJobID("j1"),
	}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if cache.has(detailKey) || cache.has(listKey) {
		t.Fatalf("applying should evict the job's cached copies")
	}
}

func TestUpdateStatusRejectsInvalidTargets(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{updated: &application.Application{ID: kernel.NewApplicationID("a1")}}
	svc := newTestService(repo, nil, nil, nil)

	for _, status := range []application.ApplicationStatus{"archived", application.ApplicationStatusPending} {
		_, err := svc.UpdateStatus(context.Background(), kernel.NewApplicationID("a1"), kernel.NewUserID("rec-1"), status)
		if !errx.IsCode(err, application.CodeInvalidStatus) {
			t.Fatalf("status %q: expected invalid status error, got %v", status, err)
		}
	}
}

func TestUpdateStatusAdvancesFunnel(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{updated: &application.Application{
		ID:     kernel.NewApplicationID("a1"),
		Status: application.ApplicationStatusPending,
	}}
	svc := newTestService(repo, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), kernel.NewApplicationID("a1"), kernel.NewUserID("rec-1"), application.ApplicationStatusShortlisted)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if updated.Status != application.ApplicationStatusShortlisted {
		t.Fatalf("expected shortlisted, got %q", updated.Status)
	}
}

func TestWithdrawEvictsJobCaches(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	repo := &fakeAppRepo{withdrawJob: kernel.NewJobID("j1")}
	svc := newTestService(repo, nil, nil, cache)

	detailKey := jobsrv.DetailKey(kernel.NewJobID("j1"), kernel.NewUserID("u1"))
	cache.Set(context.Background(), detailKey, "stale", time.Minute)

	if err := svc.Withdraw(context.Background(), kernel.NewApplicationID("a1"), kernel.NewUserID("u1")); err != nil {
		t.Fatalf("Withdraw error: %v", err)
	}
	if cache.has(detailKey) {
		t.Fatalf("withdrawing should evict the job's cached copies")
	}
}

func TestWithdrawPropagatesBusinessRejection(t *testing.T) {
	t.Parallel()

	repo := &fakeAppRepo{withdrawErr: application.ErrCannotWithdraw()}
	svc := newTestService(repo, nil, nil, nil)

	err := svc.Withdraw(context.Background(), kernel.NewApplicationID("a1"), kernel.NewUserID("u1"))
	if !errx.IsCode(err, application.CodeCannotWithdraw) {
		t.Fatalf("expected cannot-withdraw, got %v", err)
	}
}

func TestMatchApplicantsHidesForeignJobs(t *testing.T) {
	t.Parallel()

	jobRepo := &fakeJobRepo{jobs: map[kernel.JobID]*job.Job{
		"j1": {ID: kernel.NewJobID("j1"), RecruiterID: kernel.NewUserID("owner")},
	}}
	svc := newTestService(&fakeAppRepo{}, jobRepo, nil, nil)

	_, err := svc.MatchApplicants(context.Background(), kernel.NewJobID("j1"), kernel.NewUserID("intruder"), 10)
	if !errx.IsCode(err, job.CodeJobNotFound) {
		t.Fatalf("foreign jobs must look missing, got %v", err)
	}
}
