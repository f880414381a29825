package auth

import (
	"strings"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/gofiber/fiber/v2"
)

type contextKey string

// Context keys for propagating identity into GraphQL resolvers
const (
	UserKey      contextKey = "user_email"
	ModeratorKey contextKey = "is_moderator"
)

// tokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the auth cookie
func tokenFromRequest(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("auth_token")
}

// RequireAuth validates the bearer token and blocks guests. The user record
// is re-fetched on every request, so a deleted user loses access immediately
// without any token blacklist.
func RequireAuth(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		ctx := c.Context()
		user, err := getUserByEmail(ctx, db, claims.Email)
		if err != nil {
			if err == ErrUserNotFound {
				// Fail closed: the account was deleted after the token was issued
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Account no longer exists",
				})
			}
			if IsTimeout(err) {
				return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
					"error": "Database timed out, please try again later",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Database unavailable, please try again later",
			})
		}

		ResolveRoles(ctx, db, user)

		c.Locals("is_authenticated", true)
		c.Locals("user", user)
		c.Locals("is_admin", user.IsAdmin)
		c.Locals("is_super_admin", user.IsSuperAdmin)

		return c.Next()
	}
}

// OptionalAuth identifies the user if a token is present but does not block
// guests. This allows a single endpoint to serve both public and private data.
func OptionalAuth(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			c.Locals("is_authenticated", false)
			return c.Next()
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			// Treat invalid/expired tokens as guest access
			c.Locals("is_authenticated", false)
			return c.Next()
		}

		ctx := c.Context()
		user, err := getUserByEmail(ctx, db, claims.Email)
		if err != nil {
			// Deleted accounts fall back to guest, matching RequireAuth's fail-closed rule
			c.Locals("is_authenticated", false)
			return c.Next()
		}

		ResolveRoles(ctx, db, user)

		c.Locals("is_authenticated", true)
		c.Locals("user", user)
		c.Locals("is_admin", user.IsAdmin)
		c.Locals("is_super_admin", user.IsSuperAdmin)

		return c.Next()
	}
}

// RequireAdmin passes admins and the super admin
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*model.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !user.CanModerate() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}

// RequireSuperAdmin passes only the allowlisted super admin
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*model.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !user.IsSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Super admin access required",
			})
		}

		return c.Next()
	}
}

// CurrentUser returns the authenticated user from request locals, or nil
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}
