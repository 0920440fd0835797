package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvAPIOrigin, "")
	t.Setenv(EnvOwnerID, "")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "/api", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost", cfg.APIOrigin)
	assert.Equal(t, "1", cfg.OwnerID)
	assert.NotNil(t, cfg.Log)

	base, err := cfg.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/api", base)
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "api_base_url: https://tasks.example.com/v1/\nowner_id: \"42\"\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "42", cfg.OwnerID)
	base, err := cfg.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com/v1", base)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "api_base_url: /from-file\nowner_id: \"7\"\n")

	t.Setenv(EnvAPIBaseURL, "/from-env")
	t.Setenv(EnvAPIOrigin, "http://backend:8000")
	t.Setenv(EnvOwnerID, "9")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9", cfg.OwnerID)
	base, err := cfg.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/from-env", base)
}

func TestLoad_ExpandsEnvVarsInFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TASKBOARD_TEST_HOST", "reports.internal")
	writeConfig(t, dir, "api_origin: \"http://${TASKBOARD_TEST_HOST}\"\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	base, err := cfg.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://reports.internal/api", base)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "api_base_url: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config.yaml")
}

func TestLoad_InvalidOrigin(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIOrigin, "ftp://files.example.com")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api_origin")
}

func TestBaseURL_RejectsNonHTTPBase(t *testing.T) {
	cfg := New(t.TempDir())
	cfg.APIBaseURL = "ws://example.com/api"

	_, err := cfg.BaseURL()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api_base_url")
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := New(dir)
	cfg.OwnerID = "13"
	cfg.APIOrigin = "http://localhost:8000"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(cfg.FilePath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "13", loaded.OwnerID)
	assert.Equal(t, "http://localhost:8000", loaded.APIOrigin)
	assert.Equal(t, "/api", loaded.APIBaseURL)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestTokenHelpers(t *testing.T) {
	cfg := New(t.TempDir())
	assert.False(t, cfg.HasToken())

	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())

	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
