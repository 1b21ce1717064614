package job

import (
	"net/http"

	"github.com/jobpulse/jobpulse/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes. NOT_FOUND deliberately covers "exists but not owned by the
// caller" too, so owner-scoped mutations never confirm a job's existence to
// an unauthorized caller.
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeInvalidJobType     = ErrRegistry.Register("INVALID_JOB_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid job type")
	CodeInvalidExperience  = ErrRegistry.Register("INVALID_EXPERIENCE_LEVEL", errx.TypeValidation, http.StatusBadRequest, "Invalid experience level")
	CodeInvalidSalaryRange = ErrRegistry.Register("INVALID_SALARY_RANGE", errx.TypeValidation, http.StatusBadRequest, "Minimum salary cannot exceed maximum salary")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrInvalidJobType() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobType)
}

func ErrInvalidExperience() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperience)
}

func ErrInvalidSalaryRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalaryRange)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}
