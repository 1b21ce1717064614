package application

import (
	"net/http"

	"github.com/jobpulse/jobpulse/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes. NOT_FOUND covers "exists but not yours" for the same reason
// the job module collapses them.
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied      = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusConflict, "You have already applied to this job")
	CodeJobNotAvailable     = ErrRegistry.Register("JOB_NOT_AVAILABLE", errx.TypeBusiness, http.StatusBadRequest, "Job is not available for applications")
	CodeCannotWithdraw      = ErrRegistry.Register("CANNOT_WITHDRAW", errx.TypeBusiness, http.StatusBadRequest, "Only pending applications can be withdrawn")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid application status")
	CodeValidationFailed    = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrJobNotAvailable() *errx.Error {
	return ErrRegistry.New(CodeJobNotAvailable)
}

func ErrCannotWithdraw() *errx.Error {
	return ErrRegistry.New(CodeCannotWithdraw)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}
