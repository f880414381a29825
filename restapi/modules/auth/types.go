// Package auth provides authentication and authorization types for the REST API.
package auth

// RegisterRequest defines the body for public registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the body for password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetPasswordRequest handles both first-time setup and password change.
// CurrentPassword is required only when the account already has one.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetRoleRequest defines the body for admin promotion/demotion
type SetRoleRequest struct {
	IsAdmin bool `json:"is_admin"`
}
