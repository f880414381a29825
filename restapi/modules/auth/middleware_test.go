package auth_test

import (
	"net/http/httptest"
	"testing"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// withUser injects a user into request locals, standing in for RequireAuth
func withUser(user *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("is_authenticated", true)
		c.Locals("user", user)
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func TestRequireAuthMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/private", auth.RequireAuth(database.DBConnection{}), okHandler)

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	app := fiber.New()
	app.Get("/private", auth.RequireAuth(database.DBConnection{}), okHandler)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthPassesGuests(t *testing.T) {
	app := fiber.New()
	app.Get("/public", auth.OptionalAuth(database.DBConnection{}), func(c *fiber.Ctx) error {
		authenticated, _ := c.Locals("is_authenticated").(bool)
		require.False(t, authenticated)
		require.Nil(t, auth.CurrentUser(c))
		return okHandler(c)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/public", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuthTreatsInvalidTokenAsGuest(t *testing.T) {
	app := fiber.New()
	app.Get("/public", auth.OptionalAuth(database.DBConnection{}), func(c *fiber.Ctx) error {
		require.Nil(t, auth.CurrentUser(c))
		return okHandler(c)
	})

	req := httptest.NewRequest("GET", "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	regular := model.NewUser("user@campus.edu", "User", model.ProviderEmail)
	admin := model.NewUser("admin@campus.edu", "Admin", model.ProviderEmail)
	admin.IsAdmin = true

	cases := []struct {
		name   string
		user   *model.User
		status int
	}{
		{"no user", nil, fiber.StatusUnauthorized},
		{"regular user", regular, fiber.StatusForbidden},
		{"admin", admin, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			if tc.user != nil {
				app.Use(withUser(tc.user))
			}
			app.Get("/admin", auth.RequireAdmin(), okHandler)

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	admin := model.NewUser("admin@campus.edu", "Admin", model.ProviderEmail)
	admin.IsAdmin = true
	super := model.NewUser("head@campus.edu", "Head", model.ProviderEmail)
	super.IsAdmin = true
	super.IsSuperAdmin = true

	cases := []struct {
		name   string
		user   *model.User
		status int
	}{
		{"no user", nil, fiber.StatusUnauthorized},
		{"plain admin", admin, fiber.StatusForbidden},
		{"super admin", super, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			if tc.user != nil {
				app.Use(withUser(tc.user))
			}
			app.Get("/super", auth.RequireSuperAdmin(), okHandler)

			resp, err := app.Test(httptest.NewRequest("GET", "/super", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
