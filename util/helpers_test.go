package util_test

import (
	"testing"

	"github.com/campusnews/campusnews-backend/util"
	"github.com/stretchr/testify/require"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("HELPER_TEST_KEY", "configured")
	require.Equal(t, "configured", util.GetEnvDefault("HELPER_TEST_KEY", "fallback"))
	require.Equal(t, "fallback", util.GetEnvDefault("HELPER_TEST_MISSING", "fallback"))
}

func TestIsEmpty(t *testing.T) {
	require.True(t, util.IsEmpty(""))
	require.True(t, util.IsEmpty("   "))
	require.False(t, util.IsEmpty("x"))
	require.True(t, util.IsNotEmpty(" x "))
}

func TestContains(t *testing.T) {
	require.True(t, util.Contains([]string{"a", "b"}, "b"))
	require.False(t, util.Contains([]string{"a", "b"}, "c"))
	require.False(t, util.Contains(nil, "a"))
}

func TestGetStringOrDefault(t *testing.T) {
	require.Equal(t, "value", util.GetStringOrDefault("value", "default"))
	require.Equal(t, "default", util.GetStringOrDefault("", "default"))
}
