package entities

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://gitlab.com"
	DefaultNamespace   = "glab-enhancer-browser-extension"
	DefaultStoragePath = "~/.config/gitlab-enhancer/cache.sqlite"
	DefaultRedisAddr   = "localhost:6379"
	DefaultTimeoutSecs = 30

	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
	StorageDriverRedis  = "redis"
)

// Settings is the top-level configuration.
type Settings struct {
	GitLab   GitLabSettings  `yaml:"gitlab"`
	HTTP     HTTPSettings    `yaml:"http"`
	Storage  StorageSettings `yaml:"storage"`
	LogLevel string          `yaml:"log_level"`
}

// GitLabSettings points at the GitLab instance whose pages are instrumented.
type GitLabSettings struct {
	BaseURL string `yaml:"base_url"` // Origin used for site-relative endpoints
	Token   string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
}

// HTTPSettings tunes the paginated fetcher.
type HTTPSettings struct {
	PerPage           int     `yaml:"per_page"`
	MaxRetries        int     `yaml:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // 0 disables pacing
	Concurrency       int     `yaml:"concurrency"`         // 0 fetches pages 2..N all at once
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// StorageSettings selects the persistent key-value backend.
type StorageSettings struct {
	Driver    string `yaml:"driver"`    // "sqlite", "memory", "redis"
	Path      string `yaml:"path"`      // sqlite database file
	Address   string `yaml:"address"`   // redis address
	Namespace string `yaml:"namespace"` // prefix of every persisted key
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no file is found. The
// instance and token are taken from GITLAB_URL and GITLAB_TOKEN.
func DefaultSettings() *Settings {
	settings := &Settings{
		GitLab: GitLabSettings{
			BaseURL: strings.TrimRight(os.Getenv("GITLAB_URL"), "/"),
			Token:   os.Getenv("GITLAB_TOKEN"),
		},
	}
	settings.applyDefaults()
	if err := settings.expandPaths(); err != nil {
		logger.Warnf("Failed to expand storage path: %v", err)
	}
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.applyDefaults()
	settings.GitLab.Token = resolveToken(settings.GitLab.Token)
	settings.GitLab.BaseURL = strings.TrimRight(envVarPattern.ReplaceAllStringFunc(
		settings.GitLab.BaseURL, expandEnvVar,
	), "/")

	if expandErr := settings.expandPaths(); expandErr != nil {
		return nil, expandErr
	}
	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitlab-enhancer.yaml",
		".gitlab-enhancer.yml",
		"gitlab-enhancer.yaml",
		"gitlab-enhancer.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) applyDefaults() {
	if s.GitLab.BaseURL == "" {
		s.GitLab.BaseURL = DefaultBaseURL
	}
	if s.HTTP.PerPage == 0 {
		s.HTTP.PerPage = DefaultPerPage
	}
	if s.HTTP.TimeoutSeconds == 0 {
		s.HTTP.TimeoutSeconds = DefaultTimeoutSecs
	}
	if s.Storage.Driver == "" {
		s.Storage.Driver = StorageDriverSQLite
	}
	if s.Storage.Path == "" {
		s.Storage.Path = DefaultStoragePath
	}
	if s.Storage.Address == "" {
		s.Storage.Address = DefaultRedisAddr
	}
	if s.Storage.Namespace == "" {
		s.Storage.Namespace = DefaultNamespace
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

func (s *Settings) expandPaths() error {
	expanded, err := homedir.Expand(s.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to expand storage path %q: %w", s.Storage.Path, err)
	}
	s.Storage.Path = expanded
	return nil
}

func expandEnvVar(match string) string {
	varName := envVarPattern.FindStringSubmatch(match)[1]
	if val := os.Getenv(varName); val != "" {
		return val
	}
	logger.Warnf("Environment variable %q is not set", varName)
	return ""
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, expandEnvVar)

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	baseURL, err := url.Parse(settings.GitLab.BaseURL)
	if err != nil || (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return fmt.Errorf("gitlab.base_url must be an absolute http(s) URL, got %q", settings.GitLab.BaseURL)
	}

	if settings.HTTP.PerPage < 1 || settings.HTTP.PerPage > DefaultPerPage {
		return fmt.Errorf("http.per_page must be between 1 and %d", DefaultPerPage)
	}
	if settings.HTTP.MaxRetries < 0 {
		return errors.New("http.max_retries must not be negative")
	}
	if settings.HTTP.RequestsPerSecond < 0 {
		return errors.New("http.requests_per_second must not be negative")
	}
	if settings.HTTP.Concurrency < 0 {
		return errors.New("http.concurrency must not be negative")
	}
	if settings.HTTP.TimeoutSeconds < 0 {
		return errors.New("http.timeout_seconds must not be negative")
	}

	switch settings.Storage.Driver {
	case StorageDriverMemory, StorageDriverSQLite, StorageDriverRedis:
	default:
		return fmt.Errorf(
			"storage.driver must be one of %q, %q, %q, got %q",
			StorageDriverSQLite, StorageDriverMemory, StorageDriverRedis, settings.Storage.Driver,
		)
	}

	return nil
}
