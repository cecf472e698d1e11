package fake

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FallsBackToSuiteCredentials(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "PETFRIENDS_FAKE_EMAIL", "PETFRIENDS_FAKE_PASSWORD", "GIN_DEBUG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("PETFRIENDS_EMAIL", "suite@example.com")
	t.Setenv("PETFRIENDS_PASSWORD", "suite-pw")
	t.Setenv("PETFRIENDS_FAKE_PASSWORD", "fake-pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.PostgresDSN)
	require.Equal(t, "suite@example.com", cfg.Account.Email)
	require.Equal(t, "fake-pw", cfg.Account.Password)
	require.False(t, cfg.GinDebug)
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", " YES "} {
		require.True(t, isTruthy(v), v)
	}
	require.False(t, isTruthy("0"))
	require.False(t, isTruthy(""))
}
