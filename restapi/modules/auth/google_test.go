package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestGoogleLoginUnconfigured(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")

	app := fiber.New()
	app.Get("/auth/google/login", auth.GoogleLogin())

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/google/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGoogleLoginRedirectsToConsent(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id-123")

	app := fiber.New()
	app.Get("/auth/google/login", auth.GoogleLogin())

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/google/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "https://accounts.google.com/o/oauth2/v2/auth?"))
	require.Contains(t, location, "client_id=client-id-123")
	require.Contains(t, location, "state=")

	// The state cookie must be pinned for the callback check
	require.Contains(t, resp.Header.Get("Set-Cookie"), "oauth_state=")
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	app := fiber.New()
	app.Get("/auth/google/callback", auth.GoogleCallback(database.DBConnection{}))

	req := httptest.NewRequest("GET", "/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "error=invalid_state")
}

func TestGoogleCallbackRejectsProviderDenial(t *testing.T) {
	app := fiber.New()
	app.Get("/auth/google/callback", auth.GoogleCallback(database.DBConnection{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "error=google_denied")
}
