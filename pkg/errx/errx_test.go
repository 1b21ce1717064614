package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestRegistryPrefixesCodes(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	if code != Code("WIDGET_NOT_FOUND") {
		t.Fatalf("expected prefixed code, got %q", code)
	}

	err := reg.New(code)
	if err.Type != TypeNotFound {
		t.Fatalf("expected type %q, got %q", TypeNotFound, err.Type)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", err.HTTPStatus)
	}
	if err.Message != "Widget not found" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("WIDGET")
	err := reg.New(Code("WIDGET_NEVER_REGISTERED"))

	if err.Type != TypeInternal {
		t.Fatalf("expected internal type, got %q", err.Type)
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", err.HTTPStatus)
	}
}

func TestWithCauseUnwraps(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("WIDGET")
	code := reg.Register("BROKEN", TypeInternal, http.StatusInternalServerError, "Widget broke")

	cause := fmt.Errorf("disk on fire")
	err := reg.New(code).WithCause(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
	if got := err.Error(); got != "[WIDGET_BROKEN] Widget broke: disk on fire" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestIsCodeAndIsType(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("WIDGET")
	code := reg.Register("TAKEN", TypeConflict, http.StatusConflict, "Widget name taken")
	err := reg.New(code)

	if !IsCode(err, code) {
		t.Fatalf("IsCode should match the registered code")
	}
	if IsCode(err, Code("WIDGET_OTHER")) {
		t.Fatalf("IsCode should not match a different code")
	}
	if !IsType(err, TypeConflict) {
		t.Fatalf("IsType should match conflict")
	}
	if IsType(errors.New("plain"), TypeConflict) {
		t.Fatalf("IsType should reject non-errx errors")
	}

	// Wrapped once more, errors.As still digs it out
	wrapped := fmt.Errorf("outer: %w", err)
	if !IsCode(wrapped, code) {
		t.Fatalf("IsCode should see through fmt.Errorf wrapping")
	}
}

func TestWrapMapsTypeToStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		errType Type
		status  int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeNotFound, http.StatusNotFound},
		{TypeConflict, http.StatusConflict},
		{TypeAuthentication, http.StatusUnauthorized},
		{TypeAuthorization, http.StatusForbidden},
		{TypeUnavailable, http.StatusBadGateway},
		{TypeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		wrapped := Wrap(errors.New("boom"), "something failed", tc.errType)
		if wrapped.HTTPStatus != tc.status {
			t.Fatalf("type %s: expected status %d, got %d", tc.errType, tc.status, wrapped.HTTPStatus)
		}
	}
}

func TestToHTTPResponseIncludesDetails(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("WIDGET")
	code := reg.Register("INVALID", TypeValidation, http.StatusBadRequest, "Invalid widget")

	plain := reg.New(code).ToHTTPResponse()
	if _, ok := plain["details"]; ok {
		t.Fatalf("details should be omitted when empty")
	}

	detailed := reg.New(code).WithDetail("field", "name").ToHTTPResponse()
	details, ok := detailed["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", detailed["details"])
	}
	if details["field"] != "name" {
		t.Fatalf("unexpected details %v", details)
	}
}
