package search

import (
	"net/http"

	"github.com/jobpulse/jobpulse/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SEARCH")

// Error codes
var (
	CodeSearchUnavailable = ErrRegistry.Register("UNAVAILABLE", errx.TypeUnavailable, http.StatusBadGateway, "Search is temporarily unavailable")
	CodeReindexFailed     = ErrRegistry.Register("REINDEX_FAILED", errx.TypeExternal, http.StatusBadGateway, "Reindexing failed")
)

// Helper functions
func ErrSearchUnavailable() *errx.Error {
	return ErrRegistry.New(CodeSearchUnavailable)
}

func ErrReindexFailed() *errx.Error {
	return ErrRegistry.New(CodeReindexFailed)
}
