// Package config loads the engine configuration from a TOML file and
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

// EnvGitHubToken is the environment variable that overrides the GitHub
// token from the config file, so the token never has to live on disk.
const EnvGitHubToken = "GITPRESS_GITHUB_TOKEN"

// fileConfig mirrors the TOML layout. Pointer and zero-value fields
// distinguish "absent" from "set", so defaults only fill gaps.
type fileConfig struct {
	Source struct {
		Type     string `toml:"type"`
		Location string `toml:"location"`
		Branch   string `toml:"branch"`
		Token    string `toml:"token"`
	} `toml:"source"`

	Content struct {
		Folder    string   `toml:"folder"`
		Languages []string `toml:"languages"`
	} `toml:"content"`

	Sync struct {
		Polling      *bool  `toml:"polling"`
		PollInterval string `toml:"poll_interval"`
	} `toml:"sync"`

	DataDir string `toml:"data_dir"`
}

// Load reads the TOML file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := domain.DefaultConfig()

	if fc.Source.Type != "" {
		cfg.SourceType = fc.Source.Type
	}
	cfg.SourceLocation = fc.Source.Location
	cfg.GitHubBranch = fc.Source.Branch
	cfg.GitHubToken = fc.Source.Token
	if token := os.Getenv(EnvGitHubToken); token != "" {
		cfg.GitHubToken = token
	}

	if fc.Content.Folder != "" {
		cfg.ContentFolder = fc.Content.Folder
	}
	if len(fc.Content.Languages) > 0 {
		cfg.Languages = fc.Content.Languages
	}

	if fc.Sync.Polling != nil {
		cfg.PollingEnabled = *fc.Sync.Polling
	}
	if fc.Sync.PollInterval != "" {
		interval, err := time.ParseDuration(fc.Sync.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("%w: poll_interval %q: %v", domain.ErrInvalidInput, fc.Sync.PollInterval, err)
		}
		cfg.PollInterval = interval
	}

	cfg.DataDir = fc.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir, err = defaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gitpress"), nil
}
