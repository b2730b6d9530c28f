package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "   ")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MAX_TITLE_LENGTH", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 50, cfg.MaxTitleLength)
	require.Equal(t, 1000, cfg.MaxDescriptionLength)
	require.Equal(t, 100000, cfg.MaxBodyLength)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, int64(10), cfg.MaxUploadMB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MAX_TITLE_LENGTH", "80")
	t.Setenv("TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 80, cfg.MaxTitleLength)
	require.Equal(t, "15m0s", cfg.TokenTTL.String())
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL_MINUTES", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
