package activityinfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/activity"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// PostgresRecorder implements activity.Recorder using PostgreSQL
type PostgresRecorder struct {
	db *sqlx.DB
}

// NewPostgresRecorder creates a new PostgreSQL activity recorder
func NewPostgresRecorder(db *sqlx.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// RecordJobActivity inserts a job-interaction row
func (r *PostgresRecorder) RecordJobActivity(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, activityType activity.ActivityType) error {
	query := `
		INSERT INTO user_activity (user_id, job_id, activity_type)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, string(userID), string(jobID), string(activityType)); err != nil {
		return fmt.Errorf("failed to record job activity: %w", err)
	}

	return nil
}

// RecordSearch inserts a search-query row
func (r *PostgresRecorder) RecordSearch(ctx context.Context, userID kernel.UserID, query string) error {
	stmt := `
		INSERT INTO user_activity (user_id, activity_type, query)
		VALUES ($1, $2, $3)
	`

	var uid any
	if !userID.IsEmpty() {
		uid = string(userID)
	}

	if _, err := r.db.ExecContext(ctx, stmt, uid, string(activity.ActivitySearch), query); err != nil {
		return fmt.Errorf("failed to record search activity: %w", err)
	}

	return nil
}
