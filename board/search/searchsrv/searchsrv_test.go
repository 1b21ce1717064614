package searchsrv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/search"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type fakeIndex struct {
	search.Index

	result       *search.Result
	searchErr    error
	suggestions  []string
	suggestErr   error
	suggestCalls int
	bulkDocs     map[kernel.JobID]search.IndexDocument
}

func (i *fakeIndex) Search(_ context.Context, _ string, _ job.Filters, _, _ int) (*search.Result, error) {
	if i.searchErr != nil {
		return nil, i.searchErr
	}
	return i.result, nil
}

func (i *fakeIndex) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	i.suggestCalls++
	return i.suggestions, i.suggestErr
}

func (i *fakeIndex) BulkUpsert(_ context.Context, docs map[kernel.JobID]search.IndexDocument) error {
	i.bulkDocs = docs
	return nil
}

type fakeJobRepo struct {
	job.Repository

	summaries    []job.Summary
	active       []job.Job
	hydrateCalls int
}

func (r *fakeJobRepo) GetSummariesByIDs(_ context.Context, _ []kernel.JobID) ([]job.Summary, error) {
	r.hydrateCalls++
	return r.summaries, nil
}

func (r *fakeJobRepo) ListAllActive(_ context.Context) ([]job.Job, error) {
	return r.active, nil
}

type fakeRecorder struct {
	mu sync.Mutex
}

func (r *fakeRecorder) RecordJobActivity(_ context.Context, _ kernel.UserID, _ kernel.JobID, _ activity.ActivityType) error {
	return nil
}

func (r *fakeRecorder) RecordSearch(_ context.Context, _ kernel.UserID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return nil
}

func activeSummary(id string) job.Summary {
	return job.Summary{Job: job.Job{ID: kernel.NewJobID(id), Status: job.JobStatusActive}}
}

func TestSearchPreservesIndexRankOrder(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{result: &search.Result{
		RankedIDs: []kernel.JobID{"j3", "j1", "j2"},
		Total:     3,
	}}
	// The store hands rows back in its own order
	repo := &fakeJobRepo{summaries: []job.Summary{
		activeSummary("j1"), activeSummary("j2"), activeSummary("j3"),
	}}
	svc := NewSearchService(index, repo, &fakeRecorder{})

	resp, err := svc.SearchJobs(context.Background(), "golang", job.Filters{}, kernel.PaginationOptions{}, "")
	if err != nil {
		t.Fatalf("SearchJobs error: %v", err)
	}

	got := []string{}
	for _, hit := range resp.Jobs {
		got = append(got, hit.ID.String())
	}
	want := []string{"j3", "j1", "j2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank order lost: got %v, want %v", got, want)
		}
	}
}

func TestSearchDropsVanishedAndInactiveHits(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{result: &search.Result{
		RankedIDs: []kernel.JobID{"gone", "closed", "j1"},
		Total:     3,
	}}
	closed := job.Summary{Job: job.Job{ID: kernel.NewJobID("closed"), Status: job.JobStatusClosed}}
	repo := &fakeJobRepo{summaries: []job.Summary{closed, activeSummary("j1")}}
	svc := NewSearchService(index, repo, &fakeRecorder{})

	resp, err := svc.SearchJobs(context.Background(), "golang", job.Filters{}, kernel.PaginationOptions{}, "")
	if err != nil {
		t.Fatalf("SearchJobs error: %v", err)
	}

	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != kernel.JobID("j1") {
		t.Fatalf("expected only the live active hit, got %+v", resp.Jobs)
	}
	// The index total is reported as-is; drift is repaired by reindexing,
	// not hidden by recounting
	if resp.Total != 3 {
		t.Fatalf("expected index-reported total 3, got %d", resp.Total)
	}
}

func TestSearchAttachesHighlights(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{result: &search.Result{
		RankedIDs: []kernel.JobID{"j1"},
		Total:     1,
		Highlights: map[kernel.JobID]search.Highlights{
			"j1": {"title": []string{"<em>Go</em> Developer"}},
		},
	}}
	repo := &fakeJobRepo{summaries: []job.Summary{activeSummary("j1")}}
	svc := NewSearchService(index, repo, &fakeRecorder{})

	resp, err := svc.SearchJobs(context.Background(), "go", job.Filters{}, kernel.PaginationOptions{}, "")
	if err != nil {
		t.Fatalf("SearchJobs error: %v", err)
	}

	frags := resp.Jobs[0].Highlights["title"]
	if len(frags) != 1 || frags[0] != "<em>Go</em> Developer" {
		t.Fatalf("unexpected highlights %+v", resp.Jobs[0].Highlights)
	}
}

func TestSearchSkipsHydrationWhenIndexIsEmpty(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{result: &search.Result{RankedIDs: nil, Total: 0}}
	repo := &fakeJobRepo{}
	svc := NewSearchService(index, repo, &fakeRecorder{})

	resp, err := svc.SearchJobs(context.Background(), "nothing", job.Filters{}, kernel.PaginationOptions{}, "")
	if err != nil {
		t.Fatalf("SearchJobs error: %v", err)
	}
	if len(resp.Jobs) != 0 {
		t.Fatalf("expected no hits, got %+v", resp.Jobs)
	}
	if repo.hydrateCalls != 0 {
		t.Fatalf("store should not be queried for zero hits")
	}
}

func TestSearchPropagatesIndexFailure(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{searchErr: search.ErrSearchUnavailable().WithCause(errors.New("connection refused"))}
	svc := NewSearchService(index, &fakeJobRepo{}, &fakeRecorder{})

	_, err := svc.SearchJobs(context.Background(), "golang", job.Filters{}, kernel.PaginationOptions{}, "")
	if err == nil {
		t.Fatalf("expected index failure to propagate")
	}
}

func TestSuggestRequiresTwoCharacters(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{suggestions: []string{"golang developer"}}
	svc := NewSearchService(index, &fakeJobRepo{}, &fakeRecorder{})

	if got := svc.Suggest(context.Background(), "g"); len(got) != 0 {
		t.Fatalf("expected empty suggestions for one-char prefix, got %v", got)
	}
	// A single multibyte rune is still one character even though it is
	// several bytes long.
	if got := svc.Suggest(context.Background(), "開"); len(got) != 0 {
		t.Fatalf("expected empty suggestions for one-rune prefix, got %v", got)
	}
	if index.suggestCalls != 0 {
		t.Fatalf("index should not be queried below the prefix minimum")
	}
	if got := svc.Suggest(context.Background(), "開発"); len(got) != 1 {
		t.Fatalf("expected a two-rune prefix to reach the index, got %v", got)
	}
}

func TestSuggestSwallowsIndexErrors(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{suggestErr: errors.New("timeout")}
	svc := NewSearchService(index, &fakeJobRepo{}, &fakeRecorder{})

	got := svc.Suggest(context.Background(), "gol")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", got)
	}
}

func TestReindexPushesEveryActiveJob(t *testing.T) {
	t.Parallel()

	repo := &fakeJobRepo{active: []job.Job{
		{ID: kernel.NewJobID("j1"), Title: "One", Status: job.JobStatusActive},
		{ID: kernel.NewJobID("j2"), Title: "Two", Status: job.JobStatusActive},
	}}
	index := &fakeIndex{}
	svc := NewSearchService(index, repo, &fakeRecorder{})

	count, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 indexed jobs, got %d", count)
	}
	if len(index.bulkDocs) != 2 {
		t.Fatalf("expected 2 bulk documents, got %d", len(index.bulkDocs))
	}
	if doc, ok := index.bulkDocs["j1"]; !ok || doc.Title != "One" {
		t.Fatalf("unexpected document for j1: %+v", doc)
	}
}
