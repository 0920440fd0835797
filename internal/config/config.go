// Package config handles the configuration directory, config file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.yaml"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// DefaultAPIBaseURL is the API base path used when nothing overrides it.
	DefaultAPIBaseURL = "/api"

	// DefaultAPIOrigin is the origin a relative base URL is resolved against.
	DefaultAPIOrigin = "http://localhost"

	// DefaultOwnerID is the owner selected until the user picks another.
	DefaultOwnerID = "1"
)

// Environment variables that override the config file.
const (
	EnvAPIBaseURL = "TASKBOARD_API_BASE_URL"
	EnvAPIOrigin  = "TASKBOARD_API_ORIGIN"
	EnvOwnerID    = "TASKBOARD_OWNER_ID"
)

// File is the on-disk shape of config.yaml.
type File struct {
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	APIOrigin  string `yaml:"api_origin,omitempty"`
	OwnerID    string `yaml:"owner_id,omitempty"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIBaseURL is the API base, absolute or relative to APIOrigin.
	APIBaseURL string

	// APIOrigin is the scheme and host used to resolve a relative APIBaseURL.
	APIOrigin string

	// OwnerID is the currently selected owner.
	OwnerID string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives diagnostic output. Never nil after Load.
	Log *slog.Logger
}

// New creates a Config with defaults only, rooted at the given or default config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		APIBaseURL: DefaultAPIBaseURL,
		APIOrigin:  DefaultAPIOrigin,
		OwnerID:    DefaultOwnerID,
		Log:        slog.New(slog.DiscardHandler),
	}
}

// Load builds a Config from defaults, the config file (if present) and the environment,
// in increasing order of precedence.
// Environment variables in the form ${VAR_NAME} inside the file are expanded.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	data, err := os.ReadFile(cfg.FilePath())
	switch {
	case err == nil:
		var f File
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
		}
		cfg.apply(f)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	cfg.apply(File{
		APIBaseURL: os.Getenv(EnvAPIBaseURL),
		APIOrigin:  os.Getenv(EnvAPIOrigin),
		OwnerID:    os.Getenv(EnvOwnerID),
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(f File) {
	if v := strings.TrimSpace(f.APIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(f.APIOrigin); v != "" {
		c.APIOrigin = v
	}
	if v := strings.TrimSpace(f.OwnerID); v != "" {
		c.OwnerID = v
	}
}

// Validate checks that the API location can be resolved.
func (c *Config) Validate() error {
	if _, err := c.BaseURL(); err != nil {
		return err
	}
	return nil
}

// BaseURL returns the absolute API base URL without a trailing slash.
func (c *Config) BaseURL() (string, error) {
	base, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api_base_url %q: %w", c.APIBaseURL, err)
	}

	if !base.IsAbs() {
		origin, err := url.Parse(c.APIOrigin)
		if err != nil {
			return "", fmt.Errorf("invalid api_origin %q: %w", c.APIOrigin, err)
		}
		if !isHTTP(origin) || origin.Host == "" {
			return "", fmt.Errorf("invalid api_origin %q: must be an http or https URL", c.APIOrigin)
		}
		base = origin.ResolveReference(base)
	}

	if !isHTTP(base) || base.Host == "" {
		return "", fmt.Errorf("invalid api_base_url %q: must be an http or https URL", c.APIBaseURL)
	}
	return strings.TrimSuffix(base.String(), "/"), nil
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

// Save writes the persistent settings to config.yaml, creating the directory if needed.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(File{
		APIBaseURL: c.APIBaseURL,
		APIOrigin:  c.APIOrigin,
		OwnerID:    c.OwnerID,
	})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ConfigFile, err)
	}
	return os.WriteFile(c.FilePath(), data, 0600)
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(re.FindStringSubmatch(match)[1])
	})
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
