package recommendationapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/recommendation"
	"github.com/jobpulse/jobpulse/board/recommendation/recommendationsrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
)

// Handlers provides HTTP handlers for recommendation operations
type Handlers struct {
	service *recommendationsrv.RecommendationService
}

// NewHandlers creates a new recommendation handlers instance
func NewHandlers(service *recommendationsrv.RecommendationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetRecommendations returns scored jobs for the caller
// GET /api/recommendations?method=&limit=
func (h *Handlers) GetRecommendations(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	recs, err := h.service.GetRecommendations(
		c.Context(),
		authCtx.UserID,
		recommendation.Method(c.Query("method")),
		c.QueryInt("limit", 0),
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"recommendations": recs,
	})
}

// Train triggers a model retraining run
// POST /api/recommendations/train
func (h *Handlers) Train(c *fiber.Ctx) error {
	result, err := h.service.Train(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RegisterRoutes registers all recommendation routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/recommendations", authMiddleware.Authenticate())

	api.Get("/", handlers.GetRecommendations)

	api.Post("/train",
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.Train,
	)
}
