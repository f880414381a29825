package auth

import (
	"time"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// userJSON shapes a user record for API responses. The password hash never
// leaves the server.
func userJSON(user *model.User) fiber.Map {
	return fiber.Map{
		"email":                user.Email,
		"name":                 user.Name,
		"provider":             user.Provider,
		"is_admin":             user.IsAdmin,
		"is_super_admin":       user.IsSuperAdmin,
		"needs_password_setup": user.NeedsPasswordSetup(),
		"created_at":           user.CreatedAt,
	}
}

// SetAuthCookie attaches the session token as an HTTP-only cookie
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// storeError maps a user-store failure onto the API error taxonomy
func storeError(c *fiber.Ctx, err error) error {
	if IsTimeout(err) {
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Database timed out, please try again later",
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "Database unavailable, please try again later",
	})
}

// ============================================================================
// REGISTRATION AND LOGIN
// ============================================================================

// Register handles POST /auth/register
func Register(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Name, email and password are required",
			})
		}

		if err := ValidatePasswordStrength(req.Password); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx := c.Context()
		email := model.NormalizeEmail(req.Email)

		_, err := getUserByEmail(ctx, db, email)
		if err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An account with that email already exists",
			})
		}
		if err != ErrUserNotFound {
			return storeError(c, err)
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process password",
			})
		}

		user := model.NewUser(email, req.Name, model.ProviderEmail)
		user.SetPassword(hash)

		if err := createUser(ctx, db, user); err != nil {
			return storeError(c, err)
		}

		ResolveRoles(ctx, db, user)

		token, err := GenerateJWT(user.Email, user.Name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create session",
			})
		}
		SetAuthCookie(c, token)

		database.Logger().Sugar().Infof("Registered user %s", user.Email)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":  userJSON(user),
			"token": token,
		})
	}
}

// Login handles POST /auth/login. Unknown emails and wrong passwords get
// distinct responses so the client can direct the user to register.
func Login(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email and password are required",
			})
		}

		ctx := c.Context()
		user, err := getUserByEmail(ctx, db, req.Email)
		if err != nil {
			if err == ErrUserNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "No account found with that email",
				})
			}
			return storeError(c, err)
		}

		if !user.HasLocalPassword() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "This account has no password set. Sign in with Google, then set a password from your profile.",
			})
		}

		if !CheckPasswordHash(req.Password, *user.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Incorrect password",
			})
		}

		ResolveRoles(ctx, db, user)

		token, err := GenerateJWT(user.Email, user.Name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create session",
			})
		}
		SetAuthCookie(c, token)

		return c.JSON(fiber.Map{
			"user":  userJSON(user),
			"token": token,
		})
	}
}

// Logout handles POST /auth/logout
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clearAuthCookie(c)
		return c.JSON(fiber.Map{"message": "Logged out"})
	}
}

// Me handles GET /auth/me. Runs behind OptionalAuth so guests get a clean
// unauthenticated response instead of a 401.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{
			"authenticated": true,
			"user":          userJSON(user),
		})
	}
}

// SetPassword handles PUT /auth/password. Serves both first-time setup for
// OAuth accounts and a regular password change.
func SetPassword(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		var req SetPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := ValidatePasswordStrength(req.NewPassword); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if user.HasLocalPassword() {
			if req.CurrentPassword == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Current password is required",
				})
			}
			if !CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Current password is incorrect",
				})
			}
		}

		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process password",
			})
		}
		user.SetPassword(hash)

		if err := updateUser(c.Context(), db, user); err != nil {
			return storeError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Password updated",
			"user":    userJSON(user),
		})
	}
}

// ============================================================================
// USER MANAGEMENT (super admin)
// ============================================================================

// ListUsers handles GET /users
func ListUsers(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := listUsers(c.Context(), db)
		if err != nil {
			return storeError(c, err)
		}

		out := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			out = append(out, userJSON(u))
		}
		return c.JSON(fiber.Map{
			"users": out,
			"count": len(out),
		})
	}
}

// SetUserRole handles PUT /users/:email/role. The super admin's own role is
// fixed by the allowlist and cannot be changed here.
func SetUserRole(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := model.NormalizeEmail(c.Params("email"))
		if email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is required",
			})
		}

		var req SetRoleRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if IsSuperAdminEmail(email) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "The super admin role cannot be changed",
			})
		}

		ctx := c.Context()
		user, err := getUserByEmail(ctx, db, email)
		if err != nil {
			if err == ErrUserNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "User not found",
				})
			}
			return storeError(c, err)
		}

		user.IsAdmin = req.IsAdmin
		user.UpdatedAt = time.Now()
		if err := updateUser(ctx, db, user); err != nil {
			return storeError(c, err)
		}

		database.Logger().Sugar().Infof("Set is_admin=%v for %s", req.IsAdmin, user.Email)

		return c.JSON(fiber.Map{
			"message": "Role updated",
			"user":    userJSON(user),
		})
	}
}

// DeleteUser handles DELETE /users/:email
func DeleteUser(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := model.NormalizeEmail(c.Params("email"))
		if email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is required",
			})
		}

		if IsSuperAdminEmail(email) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "The super admin account cannot be deleted",
			})
		}

		if caller := CurrentUser(c); caller != nil && caller.Email == email {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You cannot delete your own account",
			})
		}

		count, err := deleteUserByEmail(c.Context(), db, email)
		if err != nil {
			return storeError(c, err)
		}
		if count == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		database.Logger().Sugar().Infof("Deleted user %s", email)

		return c.JSON(fiber.Map{"message": "User deleted"})
	}
}

// DeleteAllUsers handles DELETE /users. The super admin account survives,
// so the panel is never locked out after a purge.
func DeleteAllUsers(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("all") != "true" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Pass all=true to confirm deleting every user",
			})
		}

		count, err := deleteAllUsers(c.Context(), db, SuperAdminEmail())
		if err != nil {
			return storeError(c, err)
		}

		database.Logger().Sugar().Warnf("Deleted %d users", count)

		return c.JSON(fiber.Map{
			"message": "All users deleted",
			"count":   count,
		})
	}
}
