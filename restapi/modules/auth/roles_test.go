package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSuperAdminEmail(t *testing.T) {
	orig := superAdminEmail
	defer func() { superAdminEmail = orig }()

	SetSuperAdminEmail("Head.Editor@Campus.EDU")
	require.Equal(t, "head.editor@campus.edu", SuperAdminEmail())

	require.True(t, IsSuperAdminEmail("head.editor@campus.edu"))
	require.True(t, IsSuperAdminEmail("  HEAD.EDITOR@campus.edu "))
	require.False(t, IsSuperAdminEmail("someone.else@campus.edu"))
}

func TestIsSuperAdminEmailDisabledWhenUnset(t *testing.T) {
	orig := superAdminEmail
	defer func() { superAdminEmail = orig }()

	SetSuperAdminEmail("")
	require.False(t, IsSuperAdminEmail(""))
	require.False(t, IsSuperAdminEmail("anyone@campus.edu"))
}

func TestLoadRolesConfig(t *testing.T) {
	config, err := LoadRolesConfig(`
admins:
  - editor@campus.edu
  - reviewer@campus.edu
`)
	require.NoError(t, err)
	require.Len(t, config.Admins, 2)
	require.Equal(t, "editor@campus.edu", config.Admins[0])
}

func TestLoadRolesConfigEmpty(t *testing.T) {
	config, err := LoadRolesConfig("")
	require.NoError(t, err)
	require.Empty(t, config.Admins)
}

func TestLoadRolesConfigRejectsBlankEmail(t *testing.T) {
	_, err := LoadRolesConfig(`
admins:
  - editor@campus.edu
  - "   "
`)
	require.Error(t, err)
}

func TestLoadRolesConfigRejectsMalformedYAML(t *testing.T) {
	_, err := LoadRolesConfig("admins: [unclosed")
	require.Error(t, err)
}
