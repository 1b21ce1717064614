package userapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/board/user"
	"github.com/jobpulse/jobpulse/board/user/usersrv"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
)

// Handlers provides HTTP handlers for auth and profile operations
type Handlers struct {
	service *usersrv.UserService
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates an account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and issues a token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Me retrieves the caller's profile
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	profile, err := h.service.GetProfile(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// UpdateProfile applies a partial update to the caller's profile
// PUT /api/auth/me
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.UpdateProfile(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// RegisterRoutes registers all auth routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/me",
		authMiddleware.Authenticate(),
		handlers.Me,
	)

	api.Put("/me",
		authMiddleware.Authenticate(),
		handlers.UpdateProfile,
	)
}
