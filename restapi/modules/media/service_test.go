package media

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignParamsSortsAndHashes(t *testing.T) {
	params := map[string]string{
		"timestamp": "1700000000",
		"folder":    "campusnews/articles",
	}
	got := signParams(params, "secret")

	sum := sha1.Sum([]byte("folder=campusnews/articles&timestamp=1700000000secret"))
	require.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestSignParamsDependsOnSecret(t *testing.T) {
	params := map[string]string{"timestamp": "1700000000"}
	require.NotEqual(t, signParams(params, "secret-a"), signParams(params, "secret-b"))
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{
			"https://res.cloudinary.com/demo/image/upload/v1700000000/campusnews/articles/abc123.jpg",
			"campusnews/articles/abc123",
		},
		{
			"https://res.cloudinary.com/demo/image/upload/campusnews/articles/abc123.png",
			"campusnews/articles/abc123",
		},
		{
			"https://res.cloudinary.com/demo/image/upload/v42/photo.webp",
			"photo",
		},
	}
	for _, tc := range cases {
		got, err := publicIDFromURL(tc.url)
		require.NoError(t, err, tc.url)
		require.Equal(t, tc.want, got, tc.url)
	}
}

func TestPublicIDFromURLRejectsForeignURLs(t *testing.T) {
	for _, bad := range []string{
		"https://example.com/images/photo.jpg",
		"https://res.cloudinary.com/demo/image/upload/",
		"://bad-url",
	} {
		_, err := publicIDFromURL(bad)
		require.Error(t, err, bad)
	}
}

func TestNewServiceFromEnvUnconfigured(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	t.Setenv("CLOUDINARY_API_KEY", "")
	t.Setenv("CLOUDINARY_API_SECRET", "")
	require.Nil(t, NewServiceFromEnv())
}

func TestNewServiceFromEnvConfigured(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	svc := NewServiceFromEnv()
	require.NotNil(t, svc)
	require.Equal(t, "demo", svc.CloudName)
}
