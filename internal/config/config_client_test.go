package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetClientConfig_ReadsEnvironment verifies that CLIENT_-prefixed
// environment variables populate the client config.
func TestGetClientConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("CLIENT_ADAPTER_ADDRESS", "http://locker:8080")
	t.Setenv("CLIENT_ADAPTER_REQUEST_TIMEOUT", "45s")
	t.Setenv("CLIENT_APP_IDENTITY", "owner-key")
	t.Setenv("CLIENT_APP_STATE_PATH", "/home/owner/.privy-locker.db")

	cfg, _, err := GetClientConfig("client-test", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://locker:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "owner-key", cfg.App.Identity)
	assert.Equal(t, "/home/owner/.privy-locker.db", cfg.App.StatePath)
}

// TestGetClientConfig_FlagsWinOverEnv verifies that a non-empty flag value
// overrides the environment.
func TestGetClientConfig_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("CLIENT_ADAPTER_ADDRESS", "http://env:8080")
	t.Setenv("CLIENT_APP_IDENTITY", "env-key")

	cfg, _, err := GetClientConfig("client-test", []string{
		"-a", "http://flag:9090",
		"-identity", "flag-key",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9090", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "flag-key", cfg.App.Identity)
}

// TestGetClientConfig_AppliesDefaults verifies the request timeout and
// state path fallbacks.
func TestGetClientConfig_AppliesDefaults(t *testing.T) {
	cfg, _, err := GetClientConfig("client-test", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.NotEmpty(t, cfg.App.StatePath)
}

// TestGetClientConfig_PositionalArgs verifies that parsing stops at the
// first non-flag argument so subcommands keep their own flags.
func TestGetClientConfig_PositionalArgs(t *testing.T) {
	_, fs, err := GetClientConfig("client-test", []string{
		"-identity", "owner-key",
		"share", "-document", "aa", "-verifier", "verifier-key",
	})
	require.NoError(t, err)
	require.NotEmpty(t, fs.Args())
	assert.Equal(t, "share", fs.Args()[0])
	assert.Equal(t, []string{"-document", "aa", "-verifier", "verifier-key"}, fs.Args()[1:])
}

// TestGetClientConfig_UnknownFlag verifies that an unknown global flag is
// reported instead of being swallowed.
func TestGetClientConfig_UnknownFlag(t *testing.T) {
	_, _, err := GetClientConfig("client-test", []string{"-no-such-flag"})
	assert.Error(t, err)
}

// TestGetClientConfig_InvalidEnvValue verifies that an unparseable env
// duration surfaces as an error.
func TestGetClientConfig_InvalidEnvValue(t *testing.T) {
	t.Setenv("CLIENT_ADAPTER_REQUEST_TIMEOUT", "soon")

	_, _, err := GetClientConfig("client-test", nil)
	assert.Error(t, err)
}
