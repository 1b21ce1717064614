package search

import (
	"context"

	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Index is the full-text search engine holding the active-jobs projection.
type Index interface {
	// Upsert writes a document, fully replacing any previous version
	Upsert(ctx context.Context, id kernel.JobID, doc IndexDocument) error

	// Delete removes a document. An already-absent document is success,
	// not an error.
	Delete(ctx context.Context, id kernel.JobID) error

	// Search runs a relevance-ranked query restricted to active documents.
	// query may be empty, in which case only the filters apply.
	Search(ctx context.Context, query string, filters job.Filters, from, size int) (*Result, error)

	// Suggest returns up to size distinct title completions for a prefix
	Suggest(ctx context.Context, prefix string, size int) ([]string, error)

	// BulkUpsert writes many documents in one round-trip
	BulkUpsert(ctx context.Context, docs map[kernel.JobID]IndexDocument) error
}
