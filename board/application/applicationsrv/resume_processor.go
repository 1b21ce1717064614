package applicationsrv

import (
	"context"
	"time"

	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/internal/ai/embeddings"
	"github.com/jobpulse/jobpulse/internal/ai/summarizer"
	"github.com/jobpulse/jobpulse/internal/pdf"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/fsx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const retryBaseDelay = 30 * time.Second

// ResumeProcessor runs the async resume pipeline: download, extract,
// summarize, embed, store. Failures retry with linear backoff until the
// attempt budget runs out; the application itself is untouched by failure.
type ResumeProcessor struct {
	appRepo    application.Repository
	fileReader fsx.FileReader
	summarizer *summarizer.Summarizer
	embedGen   *embeddings.Generator
	queue      application.JobQueue
}

// NewResumeProcessor creates a new resume processor
func NewResumeProcessor(
	appRepo application.Repository,
	fileReader fsx.FileReader,
	sum *summarizer.Summarizer,
	embedGen *embeddings.Generator,
	queue application.JobQueue,
) *ResumeProcessor {
	return &ResumeProcessor{
		appRepo:    appRepo,
		fileReader: fileReader,
		summarizer: sum,
		embedGen:   embedGen,
		queue:      queue,
	}
}

// Process runs one queued resume job end to end
func (p *ResumeProcessor) Process(ctx context.Context, resumeJob *application.ResumeJob) error {
	logx.Infof("Processing resume for application %s (attempt %d/%d)",
		resumeJob.ApplicationID, resumeJob.AttemptCount+1, resumeJob.MaxAttempts)

	fileData, err := p.fileReader.ReadFile(ctx, string(resumeJob.ResumeURL))
	if err != nil {
		return p.handleFailure(ctx, resumeJob, "file_read", err)
	}

	text, err := pdf.ExtractText(fileData)
	if err != nil {
		return p.handleFailure(ctx, resumeJob, "pdf_extract", err)
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return p.handleFailure(ctx, resumeJob, "summarize", err)
	}

	embedding, err := p.embedGen.GenerateEmbedding(ctx, text)
	if err != nil {
		return p.handleFailure(ctx, resumeJob, "embed", err)
	}

	err = p.appRepo.SetResumeAnalysis(ctx, resumeJob.ApplicationID,
		kernel.ResumeSummary(summary), kernel.ResumeEmbedding(embedding))
	if err != nil {
		if errx.IsCode(err, application.CodeApplicationNotFound) {
			// Withdrawn mid-flight; nothing to retry
			logx.Infof("Application %s gone before resume analysis landed", resumeJob.ApplicationID)
			return nil
		}
		return p.handleFailure(ctx, resumeJob, "store", err)
	}

	logx.Infof("Resume processed for application %s", resumeJob.ApplicationID)
	return nil
}

// handleFailure schedules a retry or gives up once attempts are exhausted
func (p *ResumeProcessor) handleFailure(ctx context.Context, resumeJob *application.ResumeJob, step string, cause error) error {
	resumeJob.AttemptCount++

	if resumeJob.AttemptCount >= resumeJob.MaxAttempts {
		logx.Errorf("Resume processing for application %s failed at %s after %d attempts: %v",
			resumeJob.ApplicationID, step, resumeJob.AttemptCount, cause)
		return errx.Wrap(cause, "resume processing exhausted retries", errx.TypeExternal)
	}

	delay := retryBaseDelay * time.Duration(resumeJob.AttemptCount)
	if err := p.queue.EnqueueDelayed(ctx, resumeJob, delay); err != nil {
		logx.Errorf("Failed to schedule resume retry for application %s: %v", resumeJob.ApplicationID, err)
		return errx.Wrap(err, "failed to schedule resume retry", errx.TypeInternal)
	}

	logx.Warnf("Resume processing for application %s failed at %s, retrying in %s: %v",
		resumeJob.ApplicationID, step, delay, cause)
	return nil
}
