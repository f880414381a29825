// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"os"

	"github.com/campusnews/campusnews-backend/database"
	events "github.com/campusnews/campusnews-backend/events/modules/articles"
	"github.com/campusnews/campusnews-backend/restapi/modules/articles"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/campusnews/campusnews-backend/restapi/modules/media"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, db database.DBConnection, schema graphql.Schema) {

	// Background initialization tasks
	go func() {
		if err := auth.HealSuperAdmin(db); err != nil {
			database.Logger().Sugar().Warnf("Failed to heal super admin: %v", err)
		}
	}()

	go func() {
		if err := auth.ApplyRolesConfigFromFile(db); err != nil {
			database.Logger().Sugar().Warnf("Failed to apply roles config: %v", err)
		}
	}()

	mediaSvc := media.NewServiceFromEnv()
	producer := events.NewArticleProducerFromEnv(os.Getenv("KAFKA_BROKERS"))

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route
	api.Post("/graphql", auth.OptionalAuth(db), GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register(db))
	authGroup.Post("/login", auth.Login(db))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.OptionalAuth(db), auth.Me())
	authGroup.Post("/password", auth.RequireAuth(db), auth.SetPassword(db))

	// Google Auth Routes
	authGroup.Get("/google/login", auth.GoogleLogin())
	authGroup.Get("/google/callback", auth.GoogleCallback(db))

	// User Management (Super Admin)
	userGroup := api.Group("/users", auth.RequireAuth(db), auth.RequireSuperAdmin())
	userGroup.Get("/", auth.ListUsers(db))
	userGroup.Put("/:email/role", auth.SetUserRole(db))
	userGroup.Delete("/:email", auth.DeleteUser(db))
	userGroup.Delete("/", auth.DeleteAllUsers(db))

	// Article Routes
	articleGroup := api.Group("/articles")
	articleGroup.Get("/", auth.OptionalAuth(db), articles.List(db))
	articleGroup.Get("/:key", auth.OptionalAuth(db), articles.Get(db))
	articleGroup.Post("/", auth.RequireAuth(db), articles.Submit(db))
	articleGroup.Put("/:key", auth.RequireAuth(db), articles.Update(db))
	articleGroup.Delete("/:key", auth.RequireAuth(db), articles.Delete(db, mediaSvc))
	articleGroup.Post("/:key/status", auth.RequireAuth(db), auth.RequireAdmin(), articles.Moderate(db, producer))

	// Media Routes
	mediaGroup := api.Group("/media", auth.RequireAuth(db))
	mediaGroup.Post("/upload", media.UploadImage(mediaSvc))
	mediaGroup.Delete("/", auth.RequireAdmin(), media.DeleteImage(mediaSvc))
}
