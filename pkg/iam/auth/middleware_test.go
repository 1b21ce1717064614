package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

func testApp(t *testing.T) (*fiber.App, TokenService) {
	t.Helper()

	tokens := NewJWTService("test-secret", time.Hour, "test")
	mw := NewTokenMiddleware(tokens)
	app := fiber.New()

	app.Get("/protected", mw.Authenticate(), func(c *fiber.Ctx) error {
		authCtx, _ := GetAuthContext(c)
		return c.SendString(authCtx.UserID.String())
	})
	app.Get("/admin", mw.Authenticate(), mw.RequireRole(RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/public", mw.OptionalAuth(), func(c *fiber.Ctx) error {
		if authCtx, ok := GetAuthContext(c); ok {
			return c.SendString(authCtx.UserID.String())
		}
		return c.SendString("anonymous")
	})

	return app, tokens
}

func bearer(t *testing.T, tokens TokenService, userID string, role Role) string {
	t.Helper()
	token, err := tokens.GenerateAccessToken(kernel.NewUserID(userID), kernel.Email(userID+"@example.com"), role)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	return "Bearer " + token
}

func TestAuthenticateRejectsMissingAndMalformedHeaders(t *testing.T) {
	t.Parallel()

	app, _ := testApp(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc123"},
		{"no token", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test error: %v", tc.name, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
	}
}

func TestAuthenticateAttachesAuthContext(t *testing.T) {
	t.Parallel()

	app, tokens := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "user-7", RoleJobSeeker))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	t.Parallel()

	app, tokens := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "user-7", RoleJobSeeker))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "admin-1", RoleAdmin))

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	t.Parallel()

	app, tokens := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("anonymous request should pass, got %d", resp.StatusCode)
	}

	// An invalid token is ignored rather than rejected
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("invalid token on optional route should pass, got %d", resp.StatusCode)
	}

	// A valid one attaches the identity
	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "user-7", RoleJobSeeker))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
