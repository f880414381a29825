package articles_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/articles"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func withUser(user *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("is_authenticated", true)
		c.Locals("user", user)
		return c.Next()
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitRequiresAuth(t *testing.T) {
	app := fiber.New()
	app.Post("/articles", articles.Submit(database.DBConnection{}))

	resp, err := app.Test(jsonRequest("POST", "/articles",
		`{"title":"Big Game","body":"The campus team won again.","category":"sports"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitRejectsInvalidBody(t *testing.T) {
	user := model.NewUser("writer@campus.edu", "Writer", model.ProviderEmail)

	app := fiber.New()
	app.Use(withUser(user))
	app.Post("/articles", articles.Submit(database.DBConnection{}))

	cases := []string{
		"{not json",
		`{}`,
		`{"title":"Hi","body":"too short","category":"sports"}`,
		`{"title":"A valid title","category":"sports"}`,
		`{"title":"A valid title","body":"A long enough article body."}`,
	}
	for _, body := range cases {
		resp, err := app.Test(jsonRequest("POST", "/articles", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestModerateRejectsUnknownStatus(t *testing.T) {
	admin := model.NewUser("admin@campus.edu", "Admin", model.ProviderEmail)
	admin.IsAdmin = true

	app := fiber.New()
	app.Use(withUser(admin))
	app.Post("/articles/:key/status", articles.Moderate(database.DBConnection{}, nil))

	for _, body := range []string{`{}`, `{"status":"pending"}`, `{"status":"published"}`} {
		resp, err := app.Test(jsonRequest("POST", "/articles/123/status", body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	admin := model.NewUser("admin@campus.edu", "Admin", model.ProviderEmail)
	admin.IsAdmin = true

	app := fiber.New()
	app.Use(withUser(admin))
	app.Get("/articles", articles.List(database.DBConnection{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/articles?status=published", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
