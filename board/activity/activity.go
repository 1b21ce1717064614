package activity

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// ActivityType labels what a user did.
type ActivityType string

const (
	ActivityView   ActivityType = "view"
	ActivitySave   ActivityType = "save"
	ActivityApply  ActivityType = "apply"
	ActivitySearch ActivityType = "search"
)

// Activity is a single user-activity record. Recording is always
// best-effort: no caller treats a failed write as an error.
type Activity struct {
	ID        int64         `db:"id" json:"id"`
	UserID    kernel.UserID `db:"user_id" json:"user_id"`
	JobID     *kernel.JobID `db:"job_id" json:"job_id,omitempty"`
	Type      ActivityType  `db:"activity_type" json:"activity_type"`
	Query     *string       `db:"query" json:"query,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
