package applicationapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/application"
	"github.com/jobpulse/jobpulse/board/application/applicationsrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits an application to a job
// POST /api/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Apply(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplication retrieves one application the caller may see
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	appID := kernel.ApplicationID(c.Params("id"))
	if appID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplication(c.Context(), appID, authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// ListMyApplications retrieves the caller's applications
// GET /api/applications/my
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	apps, err := h.service.ListMyApplications(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"applications": apps,
	})
}

// ListJobApplications retrieves a job's applications for its owner
// GET /api/applications/job/:jobId
func (h *Handlers) ListJobApplications(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID == "" {
		return application.ErrValidationFailed().WithDetail("job_id", "missing or empty")
	}

	apps, err := h.service.ListJobApplications(c.Context(), jobID, authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"applications": apps,
	})
}

// ListRecruiterApplications retrieves the caller's cross-job inbox
// GET /api/applications/recruiter
func (h *Handlers) ListRecruiterApplications(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	apps, err := h.service.ListRecruiterApplications(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"applications": apps,
	})
}

// UpdateStatus advances an application through the funnel
// PUT /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	appID := kernel.ApplicationID(c.Params("id"))
	if appID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.UpdateStatus(c.Context(), appID, authCtx.UserID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// Withdraw deletes the caller's own pending application
// DELETE /api/applications/:id
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	appID := kernel.ApplicationID(c.Params("id"))
	if appID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.Withdraw(c.Context(), appID, authCtx.UserID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Application withdrawn successfully",
	})
}

// MatchApplicants ranks a job's applicants by resume relevance
// GET /api/applications/job/:jobId/match
func (h *Handlers) MatchApplicants(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID == "" {
		return application.ErrValidationFailed().WithDetail("job_id", "missing or empty")
	}

	matches, err := h.service.MatchApplicants(c.Context(), jobID, authCtx.UserID, c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"matches": matches,
	})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}.Normalize()
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	api.Post("/",
		authMiddleware.RequireRole(auth.RoleJobSeeker),
		handlers.Apply,
	)

	// Static segments must register before /:id
	api.Get("/my",
		authMiddleware.RequireRole(auth.RoleJobSeeker),
		handlers.ListMyApplications,
	)

	api.Get("/recruiter",
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.ListRecruiterApplications,
	)

	api.Get("/job/:jobId/match",
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.MatchApplicants,
	)

	api.Get("/job/:jobId",
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.ListJobApplications,
	)

	api.Get("/:id", handlers.GetApplication)

	api.Put("/:id/status",
		authMiddleware.RequireRole(auth.RoleRecruiter, auth.RoleAdmin),
		handlers.UpdateStatus,
	)

	api.Delete("/:id",
		authMiddleware.RequireRole(auth.RoleJobSeeker),
		handlers.Withdraw,
	)
}
