package search

import "github.com/jobpulse/jobpulse/board/job"

// SearchHit is one hydrated search result: the listing row plus the index's
// highlighted fragments, when any.
type SearchHit struct {
	job.Summary
	Highlights Highlights `json:"highlights,omitempty"`
}

// SearchJobsResponse is the paginated search payload. Jobs are ordered by
// relevance; Total is the index-reported match count.
type SearchJobsResponse struct {
	Jobs       []SearchHit `json:"jobs"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}
