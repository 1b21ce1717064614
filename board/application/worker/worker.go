package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/board/application/applicationsrv"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const (
	dequeueTimeout    = 5 * time.Second
	delayedMovePeriod = 30 * time.Second
)

// ResumeWorker drains the resume queue with a pool of goroutines
type ResumeWorker struct {
	processor *applicationsrv.ResumeProcessor
	queue     application.JobQueue
	workers   int
}

func NewResumeWorker(processor *applicationsrv.ResumeProcessor, queue application.JobQueue, workers int) *ResumeWorker {
	return &ResumeWorker{
		processor: processor,
		queue:     queue,
		workers:   workers,
	}
}

// Start launches the pool and the delayed-job mover. Workers stop when ctx
// is cancelled.
func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.workers)

	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Resume worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Resume worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Resume worker %d dequeue error: %v", workerID, err)
				continue
			}
			if len(data) == 0 {
				continue
			}

			var resumeJob application.ResumeJob
			if err := json.Unmarshal(data, &resumeJob); err != nil {
				logx.Errorf("Resume worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			if err := w.processor.Process(ctx, &resumeJob); err != nil {
				logx.Errorf("Resume worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *ResumeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(delayedMovePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed resume jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed resume jobs to ready queue", count)
			}
		}
	}
}
