// Package config handles the XDG configuration directory, the optional
// config.yaml file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.yaml"

	// CredentialsFile is the stored credentials filename.
	CredentialsFile = "credentials.json"
)

// Environment variables recognized on top of config.yaml.
const (
	EnvAPIBaseURL   = "TODOCTL_API_URL"
	EnvCloudName    = "TODOCTL_CLOUDINARY_CLOUD_NAME"
	EnvUploadPreset = "TODOCTL_CLOUDINARY_UPLOAD_PRESET"
)

// ErrNoAPIBaseURL is returned when no API base URL is configured.
var ErrNoAPIBaseURL = errors.New("api url not configured (set " + EnvAPIBaseURL + " or api_url in config.yaml)")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging to stderr.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// APIBaseURL is the base URL of the to-do REST API.
	APIBaseURL string

	// CloudName and UploadPreset identify the Cloudinary account used for
	// profile image uploads. Both empty means uploads are disabled.
	CloudName    string
	UploadPreset string
}

// fileConfig is the YAML shape of config.yaml.
type fileConfig struct {
	APIURL     string `yaml:"api_url"`
	Cloudinary struct {
		CloudName    string `yaml:"cloud_name"`
		UploadPreset string `yaml:"upload_preset"`
	} `yaml:"cloudinary"`
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
// Settings are read from config.yaml when present, then overridden by
// environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
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

func (c *Config) loadFile() error {
	data, err := os.ReadFile(filepath.Join(c.Dir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config.yaml: %w", err)
	}
	c.APIBaseURL = fc.APIURL
	c.CloudName = fc.Cloudinary.CloudName
	c.UploadPreset = fc.Cloudinary.UploadPreset
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvCloudName); v != "" {
		c.CloudName = v
	}
	if v := os.Getenv(EnvUploadPreset); v != "" {
		c.UploadPreset = v
	}
}

// RequireAPIBaseURL returns the base URL or an error when none is configured.
// Missing configuration is surfaced here, before any request is attempted.
func (c *Config) RequireAPIBaseURL() (string, error) {
	if c.APIBaseURL == "" {
		return "", ErrNoAPIBaseURL
	}
	return c.APIBaseURL, nil
}

// HasUploader reports whether the Cloudinary account settings are present.
func (c *Config) HasUploader() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}

// CredentialsPath returns the path to the stored credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
