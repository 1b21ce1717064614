package search

import (
	"time"

	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// IndexDocument is the denormalized projection of a job held by the search
// index. The index holds documents for active jobs only and is never
// authoritative: on any conflict the job row in the store wins.
type IndexDocument struct {
	Title           kernel.JobTitle       `json:"title"`
	Description     kernel.JobDescription `json:"description"`
	Company         kernel.CompanyName    `json:"company"`
	Location        kernel.Location       `json:"location"`
	SalaryMin       *int                  `json:"salary_min"`
	SalaryMax       *int                  `json:"salary_max"`
	JobType         job.JobType           `json:"job_type"`
	ExperienceLevel job.ExperienceLevel   `json:"experience_level"`
	Skills          []string              `json:"skills"`
	PostedDate      time.Time             `json:"posted_date"`
	Status          job.JobStatus         `json:"status"`
}

// DocumentFromJob builds the index projection of a job.
func DocumentFromJob(j *job.Job) IndexDocument {
	return IndexDocument{
		Title:           j.Title,
		Description:     j.Description,
		Company:         j.Company,
		Location:        j.Location,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Skills:          j.Skills,
		PostedDate:      j.PostedDate,
		Status:          j.Status,
	}
}

// Highlights maps a field name to its highlighted fragments.
type Highlights map[string][]string

// Result is the raw outcome of an index query: ranked job IDs plus the
// index-reported total and per-document highlights.
type Result struct {
	RankedIDs  []kernel.JobID
	Total      int
	Highlights map[kernel.JobID]Highlights
}
