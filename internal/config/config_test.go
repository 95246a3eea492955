package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/var/lib/gitpress"

[source]
type = "github"
location = "acme/blog"
branch = "main"
token = "file-token"

[content]
folder = "articles"
languages = ["en", "de"]

[sync]
polling = true
poll_interval = "30s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceTypeGitHub, cfg.SourceType)
	assert.Equal(t, "acme/blog", cfg.SourceLocation)
	assert.Equal(t, "main", cfg.GitHubBranch)
	assert.Equal(t, "file-token", cfg.GitHubToken)
	assert.Equal(t, "articles", cfg.ContentFolder)
	assert.Equal(t, []string{"en", "de"}, cfg.Languages)
	assert.True(t, cfg.PollingEnabled)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "/var/lib/gitpress", cfg.DataDir)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[source]
type = "fs"
location = "/srv/content"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "posts", cfg.ContentFolder)
	assert.Equal(t, []string{"en"}, cfg.Languages)
	assert.True(t, cfg.PollingEnabled)
	assert.Equal(t, domain.DefaultPollInterval, cfg.PollInterval)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_PollingDisabled(t *testing.T) {
	path := writeConfig(t, `
[source]
type = "fs"
location = "/srv/content"

[sync]
polling = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.PollingEnabled)
}

func TestLoad_EnvTokenOverridesFile(t *testing.T) {
	t.Setenv(EnvGitHubToken, "env-token")

	path := writeConfig(t, `
[source]
type = "github"
location = "acme/blog"
token = "file-token"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.GitHubToken)
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	path := writeConfig(t, `
[source]
type = "fs"
location = "/srv/content"

[sync]
poll_interval = "soon"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_UnknownSourceType(t *testing.T) {
	path := writeConfig(t, `
[source]
type = "ftp"
location = "ftp://example.com"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_MissingLocation(t *testing.T) {
	path := writeConfig(t, `
[source]
type = "git"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
