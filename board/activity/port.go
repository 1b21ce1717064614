package activity

import (
	"context"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Recorder persists user activity.
type Recorder interface {
	// RecordJobActivity records an interaction with a specific job
	RecordJobActivity(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, activityType ActivityType) error

	// RecordSearch records a search query
	RecordSearch(ctx context.Context, userID kernel.UserID, query string) error
}
