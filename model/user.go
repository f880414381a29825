// Package model provides data models for the campus news system.
package model

import (
	"strings"
	"time"
)

// Auth providers recognized in user records
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User represents a user in the system. Email is the natural key and is
// always stored normalized (lowercased, trimmed).
type User struct {
	Key          string    `json:"_key,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"password_hash,omitempty"` // nil means no local password set (OAuth-only account)
	Provider     string    `json:"provider"`                // email, google
	GoogleID     string    `json:"google_id,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with default values
func NewUser(email, name, provider string) *User {
	now := time.Now()
	return &User{
		Email:     NormalizeEmail(email),
		Name:      name,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail canonicalizes an email for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasLocalPassword reports whether the user can log in with a password
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// NeedsPasswordSetup reports whether the user must set a password before
// password login is possible (true for fresh OAuth accounts)
func (u *User) NeedsPasswordSetup() bool {
	return !u.HasLocalPassword()
}

// CanModerate returns true if user can moderate articles
func (u *User) CanModerate() bool {
	return u.IsAdmin || u.IsSuperAdmin
}

// SetPassword stores a new password hash on the record
func (u *User) SetPassword(hash string) {
	u.PasswordHash = &hash
	u.UpdatedAt = time.Now()
}
