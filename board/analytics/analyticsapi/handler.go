package analyticsapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/analytics"
	"github.com/jobpulse/jobpulse/board/analytics/analyticssrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Handlers provides HTTP handlers for admin analytics
type Handlers struct {
	service *analyticssrv.AnalyticsService
}

// NewHandlers creates a new analytics handlers instance
func NewHandlers(service *analyticssrv.AnalyticsService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Overview returns the headline counters
// GET /api/admin/stats/overview
func (h *Handlers) Overview(c *fiber.Ctx) error {
	stats, err := h.service.Overview(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// JobStats aggregates active jobs by type and level
// GET /api/admin/stats/jobs?start_date=&end_date=
func (h *Handlers) JobStats(c *fiber.Ctx) error {
	rows, err := h.service.JobStats(c.Context(), parseDateRange(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stats": rows,
	})
}

// ApplicationStats counts applications per day and status
// GET /api/admin/stats/applications?start_date=&end_date=
func (h *Handlers) ApplicationStats(c *fiber.Ctx) error {
	rows, err := h.service.ApplicationStats(c.Context(), parseDateRange(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stats": rows,
	})
}

// TopJobs ranks active jobs by applications, then views
// GET /api/admin/stats/top-jobs?limit=
func (h *Handlers) TopJobs(c *fiber.Ctx) error {
	rows, err := h.service.TopJobs(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"jobs": rows,
	})
}

// TopRecruiters ranks recruiters by active postings, then applications
// GET /api/admin/stats/top-recruiters?limit=
func (h *Handlers) TopRecruiters(c *fiber.Ctx) error {
	rows, err := h.service.TopRecruiters(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"recruiters": rows,
	})
}

// UserGrowth counts signups per day and role over the trailing window
// GET /api/admin/stats/user-growth?days=
func (h *Handlers) UserGrowth(c *fiber.Ctx) error {
	rows, err := h.service.UserGrowth(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"growth": rows,
	})
}

// LocationStats aggregates active postings per location
// GET /api/admin/stats/locations
func (h *Handlers) LocationStats(c *fiber.Ctx) error {
	rows, err := h.service.LocationStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"locations": rows,
	})
}

// ConversionRates ranks viewed active jobs by view-to-application rate
// GET /api/admin/stats/conversion
func (h *Handlers) ConversionRates(c *fiber.Ctx) error {
	rows, err := h.service.ConversionRates(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"conversion": rows,
	})
}

// RecruiterPerformance reports a recruiter's postings broken down by
// pipeline stage. Recruiters see their own numbers; admins may name any
// recruiter via the query string.
// GET /api/admin/performance?recruiter_id=
func (h *Handlers) RecruiterPerformance(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	recruiterID := authCtx.UserID
	if authCtx.Role == auth.RoleAdmin {
		if requested := c.Query("recruiter_id"); requested != "" {
			recruiterID = kernel.NewUserID(requested)
		}
	}

	performance, err := h.service.RecruiterPerformance(c.Context(), recruiterID)
	if err != nil {
		return err
	}

	return c.JSON(performance)
}

// SkillsInDemand counts active postings per skill
// GET /api/admin/stats/skills?limit=
func (h *Handlers) SkillsInDemand(c *fiber.Ctx) error {
	rows, err := h.service.SkillsInDemand(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"skills": rows,
	})
}

// parseDateRange reads optional RFC 3339 date bounds; unparseable values are
// treated as absent
func parseDateRange(c *fiber.Ctx) analytics.DateRange {
	var dateRange analytics.DateRange
	if start, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		dateRange.Start = start
	}
	if end, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		dateRange.End = end
	}
	return dateRange
}

// RegisterRoutes registers all analytics routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	admin := app.Group("/api/admin", authMiddleware.Authenticate())

	stats := admin.Group("/stats", authMiddleware.RequireRole(auth.RoleAdmin))
	stats.Get("/overview", handlers.Overview)
	stats.Get("/jobs", handlers.JobStats)
	stats.Get("/applications", handlers.ApplicationStats)
	stats.Get("/user-growth", handlers.UserGrowth)
	stats.Get("/top-jobs", handlers.TopJobs)
	stats.Get("/top-recruiters", handlers.TopRecruiters)
	stats.Get("/skills", handlers.SkillsInDemand)
	stats.Get("/locations", handlers.LocationStats)
	stats.Get("/conversion", handlers.ConversionRates)

	admin.Get("/performance",
		authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleRecruiter),
		handlers.RecruiterPerformance,
	)
}
