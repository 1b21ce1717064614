package searchapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/search/searchsrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Handlers provides HTTP handlers for search operations
type Handlers struct {
	service *searchsrv.SearchService
}

// NewHandlers creates a new search handlers instance
func NewHandlers(service *searchsrv.SearchService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchJobs runs a full-text job search
// GET /api/search?q=&location=&job_type=&experience_level=&salary_min=&skills=
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	var userID kernel.UserID
	if authCtx, ok := auth.GetAuthContext(c); ok {
		userID = authCtx.UserID
	}

	resp, err := h.service.SearchJobs(
		c.Context(),
		c.Query("q"),
		parseFilters(c),
		parsePaginationOptions(c),
		userID,
	)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Suggest returns title completions for a prefix
// GET /api/search/suggest?q=
func (h *Handlers) Suggest(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"suggestions": h.service.Suggest(c.Context(), c.Query("q")),
	})
}

// Reindex rebuilds the index from the store
// POST /api/search/reindex
func (h *Handlers) Reindex(c *fiber.Ctx) error {
	indexed, err := h.service.Reindex(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Reindex completed",
		"indexed": indexed,
	})
}

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

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}.Normalize()
}

// RegisterRoutes registers all search routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/search")

	api.Get("/",
		authMiddleware.OptionalAuth(),
		handlers.SearchJobs,
	)

	api.Get("/suggest", handlers.Suggest)

	api.Post("/reindex",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.Reindex,
	)
}
