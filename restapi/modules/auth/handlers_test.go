package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	app := fiber.New()
	app.Post("/register", auth.Register(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("POST", "/register", "{not json"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	app := fiber.New()
	app.Post("/register", auth.Register(database.DBConnection{}))

	cases := []string{
		`{}`,
		`{"name":"A","email":"a@campus.edu"}`,
		`{"name":"A","password":"longenough"}`,
		`{"name":"A","email":"not-an-email","password":"longenough"}`,
		`{"name":"X","email":"a@campus.edu","password":"longenough"}`,
	}
	for _, body := range cases {
		resp, err := app.Test(jsonRequest("POST", "/register", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app := fiber.New()
	app.Post("/register", auth.Register(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("POST", "/register",
		`{"name":"Alice","email":"alice@campus.edu","password":"short"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	app := fiber.New()
	app.Post("/login", auth.Login(database.DBConnection{}))

	for _, body := range []string{`{}`, `{"email":"a@campus.edu"}`, `{"password":"secret123"}`} {
		resp, err := app.Test(jsonRequest("POST", "/login", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestMeReturnsUnauthenticatedForGuests(t *testing.T) {
	app := fiber.New()
	app.Get("/me", auth.OptionalAuth(database.DBConnection{}), auth.Me())

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["authenticated"])
}

func TestSetPasswordRequiresAuth(t *testing.T) {
	app := fiber.New()
	app.Post("/password", auth.SetPassword(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("POST", "/password", `{"new_password":"longenough"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSetPasswordRejectsWeakPassword(t *testing.T) {
	user := model.NewUser("alice@campus.edu", "Alice", model.ProviderGoogle)

	app := fiber.New()
	app.Use(withUser(user))
	app.Post("/password", auth.SetPassword(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("POST", "/password", `{"new_password":"short"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSetPasswordRequiresCurrentWhenSet(t *testing.T) {
	hash, err := auth.HashPassword("oldpassword")
	require.NoError(t, err)
	user := model.NewUser("alice@campus.edu", "Alice", model.ProviderEmail)
	user.SetPassword(hash)

	app := fiber.New()
	app.Use(withUser(user))
	app.Post("/password", auth.SetPassword(database.DBConnection{}))

	// Missing current password
	resp, err := app.Test(jsonRequest("POST", "/password", `{"new_password":"newpassword"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Wrong current password
	resp, err = app.Test(jsonRequest("POST", "/password",
		`{"current_password":"wrongpassword","new_password":"newpassword"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSetUserRoleProtectsSuperAdmin(t *testing.T) {
	auth.SetSuperAdminEmail("head@campus.edu")
	defer auth.SetSuperAdminEmail("")

	app := fiber.New()
	app.Put("/users/:email/role", auth.SetUserRole(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("PUT", "/users/head@campus.edu/role", `{"is_admin":false}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteUserProtectsSuperAdminAndSelf(t *testing.T) {
	auth.SetSuperAdminEmail("head@campus.edu")
	defer auth.SetSuperAdminEmail("")

	caller := model.NewUser("head2@campus.edu", "Deputy", model.ProviderEmail)
	caller.IsSuperAdmin = true

	app := fiber.New()
	app.Use(withUser(caller))
	app.Delete("/users/:email", auth.DeleteUser(database.DBConnection{}))

	// Super admin target
	resp, err := app.Test(httptest.NewRequest("DELETE", "/users/head@campus.edu", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Self deletion
	resp, err = app.Test(httptest.NewRequest("DELETE", "/users/head2@campus.edu", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteAllUsersRequiresConfirmation(t *testing.T) {
	app := fiber.New()
	app.Delete("/users/", auth.DeleteAllUsers(database.DBConnection{}))

	resp, err := app.Test(httptest.NewRequest("DELETE", "/users/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
