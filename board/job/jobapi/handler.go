package jobapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/job/jobsrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs retrieves the public active-jobs listing
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	filters := parseFilters(c)
	pagination := parsePaginationOptions(c)

	resp, err := h.service.ListJobs(c.Context(), filters, pagination)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetJob retrieves a single job. Anonymous viewers get false
// personalization flags.
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var viewerID kernel.UserID
	if authCtx, ok := auth.GetAuthContext(c); ok {
		viewerID = authCtx.UserID
	}

	detail, err := h.service.GetJob(c.Context(), jobID, viewerID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// UpdateJob applies a partial update to a job the caller owns
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), jobID, authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// CloseJob soft-closes a job the caller owns
// DELETE /api/jobs/:id
func (h *Handlers) CloseJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if _, err := h.service.CloseJob(c.Context(), jobID, authCtx.UserID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job closed successfully",
	})
}

// ListMyJobs retrieves the caller's own postings with live application counts
// GET /api/jobs/my
func (h *Handlers) ListMyJobs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobs, err := h.service.ListRecruiterJobs(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// SaveJob bookmarks a job for the caller
// POST /api/jobs/:id/save
func (h *Handlers) SaveJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.SaveJob(c.Context(), authCtx.UserID, jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job saved successfully",
	})
}

// UnsaveJob removes a bookmark
// DELETE /api/jobs/:id/save
func (h *Handlers) UnsaveJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.UnsaveJob(c.Context(), authCtx.UserID, jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job removed from saved jobs",
	})
}

// ListSavedJobs retrieves the caller's bookmarked jobs
// GET /api/jobs/saved
func (h *Handlers) ListSavedJobs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	saved, err := h.service.ListSavedJobs(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"jobs": saved,
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// parseFilters extracts listing filters from query parameters
func parseFilters(c *fiber.Ctx) job.Filters {
	filters := job.Filters{
		Location:        c.Query("location"),
		JobType:         job.JobType(c.Query("job_type")),
		ExperienceLevel: job.ExperienceLevel(c.Query("experience_level")),
		RemoteAllowed:   c.QueryBool("remote"),
	}

	if salaryMin := c.QueryInt("salary_min", -1); salaryMin >= 0 {
		filters.SalaryMin = &salaryMin
	}

	if skills := c.Query("skills"); skills != "" {
		for _, s := range strings.Split(skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Skills = append(filters.Skills, s)
			}
		}
	}

	return filters
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	// Public reads. The detail route personalizes for signed-in viewers.
	api.Get("/", handlers.ListJobs)

	// Static segments must register before /:id
	api.Get("/my",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.ListMyJobs,
	)

	api.Get("/saved",
		authMiddleware.Authenticate(),
		handlers.ListSavedJobs,
	)

	api.Get("/:id",
		authMiddleware.OptionalAuth(),
		handlers.GetJob,
	)

	// Recruiter writes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.UpdateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.CloseJob,
	)

	// Bookmarks
	api.Post("/:id/save",
		authMiddleware.Authenticate(),
		handlers.SaveJob,
	)

	api.Delete("/:id/save",
		authMiddleware.Authenticate(),
		handlers.UnsaveJob,
	)
}
