// Package main provides the entry point for the campusnews-backend
// microservice: article submission, browsing and moderation for the campus
// news site, with email and Google sign-in.
package main

import (
	"log"
	"os"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/internal/api"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	auth.SetJWTSecret(secret)
	auth.SetSuperAdminEmail(os.Getenv("SUPER_ADMIN_EMAIL"))

	// Initialize database connection
	db := database.InitializeDatabase()

	app := api.NewFiberApp(db)

	// Get port from environment or default to 3000
	port := os.Getenv("MS_PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
