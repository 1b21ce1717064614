package searchsrv

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/search"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const recordTimeout = 5 * time.Second

// SearchService runs full-text queries against the index and hydrates the
// ranked hits from the store
type SearchService struct {
	index    search.Index
	jobRepo  job.Repository
	recorder activity.Recorder
}

// NewSearchService creates a new search service
func NewSearchService(
	index search.Index,
	jobRepo job.Repository,
	recorder activity.Recorder,
) *SearchService {
	return &SearchService{
		index:    index,
		jobRepo:  jobRepo,
		recorder: recorder,
	}
}

// SearchJobs runs a relevance-ranked search. Hits are hydrated from the
// store and returned in the index's rank order; a hit whose row has vanished
// or gone inactive since indexing is silently dropped. userID may be empty.
func (s *SearchService) SearchJobs(ctx context.Context, query string, filters job.Filters, pagination kernel.PaginationOptions, userID kernel.UserID) (*search.SearchJobsResponse, error) {
	pagination = pagination.Normalize()

	result, err := s.index.Search(ctx, query, filters, pagination.Offset(), pagination.PageSize)
	if err != nil {
		return nil, err
	}

	if query != "" {
		s.recordSearch(userID, query)
	}

	resp := &search.SearchJobsResponse{
		Jobs:       []search.SearchHit{},
		Total:      result.Total,
		Page:       pagination.Page,
		TotalPages: kernel.NewPage(pagination, result.Total).Pages,
	}

	if len(result.RankedIDs) == 0 {
		return resp, nil
	}

	summaries, err := s.jobRepo.GetSummariesByIDs(ctx, result.RankedIDs)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hydrate search hits", errx.TypeInternal)
	}

	// The store returns rows in arbitrary order; relevance order comes from
	// the index
	byID := make(map[kernel.JobID]job.Summary, len(summaries))
	for i := range summaries {
		byID[summaries[i].ID] = summaries[i]
	}

	for _, id := range result.RankedIDs {
		summary, ok := byID[id]
		if !ok || !summary.IsActive() {
			continue
		}
		resp.Jobs = append(resp.Jobs, search.SearchHit{
			Summary:    summary,
			Highlights: result.Highlights[id],
		})
	}

	return resp, nil
}

// Suggest returns title completions for a prefix. Prefixes shorter than two
// characters and index failures both yield an empty list: suggestions are
// never worth an error.
func (s *SearchService) Suggest(ctx context.Context, prefix string) []string {
	if utf8.RuneCountInString(prefix) < 2 {
		return []string{}
	}

	suggestions, err := s.index.Suggest(ctx, prefix, 5)
	if err != nil {
		logx.Warnf("suggest failed for prefix %q: %v", prefix, err)
		return []string{}
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	return suggestions
}

// Reindex rebuilds the index from every active job in the store. The store
// is authoritative, so this repairs any drift from lost best-effort writes.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	jobs, err := s.jobRepo.ListAllActive(ctx)
	if err != nil {
		return 0, errx.Wrap(err, "failed to load jobs for reindex", errx.TypeInternal)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	docs := make(map[kernel.JobID]search.IndexDocument, len(jobs))
	for i := range jobs {
		docs[jobs[i].ID] = search.DocumentFromJob(&jobs[i])
	}

	if err := s.index.BulkUpsert(ctx, docs); err != nil {
		return 0, search.ErrReindexFailed().WithCause(err)
	}

	return len(docs), nil
}

// recordSearch logs the query off the request path
func (s *SearchService) recordSearch(userID kernel.UserID, query string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.recorder.RecordSearch(ctx, userID, query); err != nil {
			logx.Warnf("failed to record search activity: %v", err)
		}
	}()
}
