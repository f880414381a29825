package model_test

import (
	"testing"

	"github.com/campusnews/campusnews-backend/model"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "alice@campus.edu", model.NormalizeEmail("  Alice@Campus.EDU "))
	require.Equal(t, "", model.NormalizeEmail("   "))
}

func TestNewUserNormalizesEmail(t *testing.T) {
	u := model.NewUser("Bob@Campus.EDU", "Bob", model.ProviderEmail)
	require.Equal(t, "bob@campus.edu", u.Email)
	require.Equal(t, model.ProviderEmail, u.Provider)
	require.False(t, u.IsAdmin)
	require.False(t, u.IsSuperAdmin)
	require.False(t, u.CreatedAt.IsZero())
}

func TestHasLocalPassword(t *testing.T) {
	u := model.NewUser("a@campus.edu", "A", model.ProviderGoogle)
	require.False(t, u.HasLocalPassword())
	require.True(t, u.NeedsPasswordSetup())

	empty := ""
	u.PasswordHash = &empty
	require.False(t, u.HasLocalPassword())

	u.SetPassword("$2a$10$somehash")
	require.True(t, u.HasLocalPassword())
	require.False(t, u.NeedsPasswordSetup())
}

func TestCanModerate(t *testing.T) {
	u := model.NewUser("a@campus.edu", "A", model.ProviderEmail)
	require.False(t, u.CanModerate())

	u.IsAdmin = true
	require.True(t, u.CanModerate())

	u.IsAdmin = false
	u.IsSuperAdmin = true
	require.True(t, u.CanModerate())
}
