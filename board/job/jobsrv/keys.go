package jobsrv

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Cache key derivation. Keys are canonical: two requests that are equal after
// normalization always produce the same key, so equivalent lookups share one
// cache entry.

// DetailKey is the cache key for a single job as seen by one viewer. The
// viewer segment matters because is_saved/has_applied are viewer-specific.
func DetailKey(jobID kernel.JobID, viewerID kernel.UserID) string {
	viewer := "anonymous"
	if !viewerID.IsEmpty() {
		viewer = viewerID.String()
	}
	return fmt.Sprintf("job:%s:%s", jobID.String(), viewer)
}

// DetailKeyPattern matches every viewer's cached copy of one job.
func DetailKeyPattern(jobID kernel.JobID) string {
	return fmt.Sprintf("job:%s:*", jobID.String())
}

// ListKey is the cache key for one page of the public listing. Filters are
// serialized in a fixed field order and skills are sorted, so filter sets
// that are equal as sets map to the same key. Every value is query-escaped
// before assembly so the "|" and "," separators cannot occur inside a value
// and distinct filter sets never collide.
func ListKey(filters job.Filters, pagination kernel.PaginationOptions) string {
	skills := make([]string, len(filters.Skills))
	for i, skill := range filters.Skills {
		skills[i] = url.QueryEscape(skill)
	}
	sort.Strings(skills)

	salaryMin := ""
	if filters.SalaryMin != nil {
		salaryMin = fmt.Sprintf("%d", *filters.SalaryMin)
	}

	return fmt.Sprintf("jobs:all:loc=%s|type=%s|exp=%s|sal=%s|remote=%t|skills=%s|page=%d|size=%d",
		url.QueryEscape(filters.Location),
		url.QueryEscape(string(filters.JobType)),
		url.QueryEscape(string(filters.ExperienceLevel)),
		salaryMin,
		filters.RemoteAllowed,
		strings.Join(skills, ","),
		pagination.Page,
		pagination.PageSize,
	)
}

// ListKeyPattern matches every cached listing page.
func ListKeyPattern() string {
	return "jobs:all:*"
}
