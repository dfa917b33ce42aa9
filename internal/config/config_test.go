package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/financas.db", cfg.Database.Path)
	assert.Equal(t, "plain", cfg.Auth.PasswordEncoder)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FINANCAS_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("FINANCAS_AUTH_PASSWORDENCODER", "bcrypt")
	t.Setenv("FINANCAS_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("FINANCAS_SERVER_ALLOWEDORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordEncoder)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_DotEnvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINANCAS_AUTH_JWTSECRET=from-dotenv\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  path: /tmp/ledger.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FINANCAS_AUTH_JWTSECRET") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
}

func TestLoad_RejectsNegativeTTL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FINANCAS_AUTH_TOKENTTLMINUTES", "-1")

	_, err := Load()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
