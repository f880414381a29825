// Package auth provides role resolution for the campus news backend.
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"gopkg.in/yaml.v2"
)

// The single allowlisted super-admin email, normalized. Empty disables the
// super-admin escalation path entirely.
var superAdminEmail = ""

// SetSuperAdminEmail configures the allowlist (call this on startup with env var)
func SetSuperAdminEmail(email string) {
	superAdminEmail = model.NormalizeEmail(email)
}

// SuperAdminEmail returns the configured allowlisted email
func SuperAdminEmail() string {
	return superAdminEmail
}

// IsSuperAdminEmail reports whether email matches the allowlist entry
func IsSuperAdminEmail(email string) bool {
	return superAdminEmail != "" && model.NormalizeEmail(email) == superAdminEmail
}

// ResolveRoles computes the effective role flags for a user. The allowlisted
// email always resolves to super admin; a stale stored flag is repaired in
// place and persisted. The repair is idempotent, so a concurrent write races
// harmlessly (last-write-wins produces the same value).
func ResolveRoles(ctx context.Context, db database.DBConnection, user *model.User) {
	if !IsSuperAdminEmail(user.Email) {
		return
	}
	if user.IsSuperAdmin && user.IsAdmin {
		return
	}

	user.IsSuperAdmin = true
	user.IsAdmin = true
	user.UpdatedAt = time.Now()

	// Best effort: the computed flags are authoritative for this request
	// even if the persist fails
	if err := updateUser(ctx, db, user); err != nil {
		database.Logger().Sugar().Warnf("Failed to persist super-admin repair for %s: %v", user.Email, err)
	}
}

// HealSuperAdmin repairs the stored super-admin flags on startup, so the
// allowlisted account is correct even before its first login
func HealSuperAdmin(db database.DBConnection) error {
	if superAdminEmail == "" {
		return nil
	}

	ctx := context.Background()
	user, err := getUserByEmail(ctx, db, superAdminEmail)
	if err != nil {
		if err == ErrUserNotFound {
			// Created on first registration or OAuth exchange
			return nil
		}
		return err
	}

	ResolveRoles(ctx, db, user)
	return nil
}

// ============================================================================
// ROLES CONFIG (startup allowlist seeding)
// ============================================================================

// RolesConfig seeds admin promotions from a YAML allowlist at startup
type RolesConfig struct {
	Admins []string `yaml:"admins"`
}

// LoadRolesConfig loads and validates a roles config from YAML
func LoadRolesConfig(yamlContent string) (*RolesConfig, error) {
	var config RolesConfig
	if err := yaml.Unmarshal([]byte(yamlContent), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, email := range config.Admins {
		if model.NormalizeEmail(email) == "" {
			return nil, fmt.Errorf("admin at index %d has empty email", i)
		}
	}

	return &config, nil
}

// ApplyRolesConfig promotes every allowlisted email that has a user record.
// Unknown emails are skipped; they are promoted when the account appears.
func ApplyRolesConfig(db database.DBConnection, config *RolesConfig) error {
	ctx := context.Background()

	for _, email := range config.Admins {
		user, err := getUserByEmail(ctx, db, email)
		if err != nil {
			if err == ErrUserNotFound {
				continue
			}
			return fmt.Errorf("failed to look up %s: %w", email, err)
		}

		if user.IsAdmin {
			continue
		}

		user.IsAdmin = true
		user.UpdatedAt = time.Now()
		if err := updateUser(ctx, db, user); err != nil {
			return fmt.Errorf("failed to promote %s: %w", email, err)
		}
		database.Logger().Sugar().Infof("Promoted %s to admin from roles config", user.Email)
	}

	return nil
}

// ApplyRolesConfigFromFile reads ROLES_CONFIG_PATH (if set) and applies it
func ApplyRolesConfigFromFile(db database.DBConnection) error {
	path := os.Getenv("ROLES_CONFIG_PATH")
	if path == "" {
		return nil
	}

	yamlContent, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read roles config: %w", err)
	}

	config, err := LoadRolesConfig(string(yamlContent))
	if err != nil {
		return err
	}

	return ApplyRolesConfig(db, config)
}
