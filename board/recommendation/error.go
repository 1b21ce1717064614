package recommendation

import (
	"net/http"

	"github.com/jobpulse/jobpulse/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("RECOMMENDATION")

// Error codes. UNAVAILABLE is deliberately distinct from an empty result:
// callers degrade both to an empty list, but only one is worth alerting on.
var (
	CodeUnavailable   = ErrRegistry.Register("UNAVAILABLE", errx.TypeUnavailable, http.StatusBadGateway, "Recommendation service is unavailable")
	CodeInvalidMethod = ErrRegistry.Register("INVALID_METHOD", errx.TypeValidation, http.StatusBadRequest, "Invalid recommendation method")
	CodeTrainFailed   = ErrRegistry.Register("TRAIN_FAILED", errx.TypeExternal, http.StatusBadGateway, "Model training failed")
)

// Helper functions
func ErrUnavailable() *errx.Error {
	return ErrRegistry.New(CodeUnavailable)
}

func ErrInvalidMethod() *errx.Error {
	return ErrRegistry.New(CodeInvalidMethod)
}

func ErrTrainFailed() *errx.Error {
	return ErrRegistry.New(CodeTrainFailed)
}
