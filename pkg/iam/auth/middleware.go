package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated identity attached to a request.
type AuthContext struct {
	UserID kernel.UserID
	Email  kernel.Email
	Role   Role
}

// TokenMiddleware authenticates requests using bearer access tokens.
type TokenMiddleware struct {
	tokenService TokenService
}

// NewTokenMiddleware creates the auth middleware.
func NewTokenMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Authenticate requires a valid bearer token.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		return c.Next()
	}
}

// OptionalAuth attaches an auth context when a valid token is present but
// lets anonymous requests through. Used on public reads that personalize
// their response for signed-in users.
func (m *TokenMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.claimsFromHeader(c)
		if err == nil {
			c.Locals(authContextKey, &AuthContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
		}
		return c.Next()
	}
}

// RequireRole requires the authenticated user to hold one of the given roles.
// Must run after Authenticate.
func (m *TokenMiddleware) RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}

		for _, role := range roles {
			if authCtx.Role == role {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
	}
}

func (m *TokenMiddleware) claimsFromHeader(c *fiber.Ctx) (*TokenClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
	}

	claims, err := m.tokenService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	return claims, nil
}

// GetAuthContext extracts the auth context from a request, if any.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
