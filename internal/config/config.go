package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mediaunmasked/media-unmasked/internal/analysis"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	defaultTimeoutSeconds = 120
)

// Config holds application configuration
type Config struct {
	Environment     string   `yaml:"environment"`
	APIBaseURL      string   `yaml:"api_base_url"` // overrides the environment's base URL
	UseAI           bool     `yaml:"use_ai"`
	ValidateSources bool     `yaml:"validate_sources"`
	RequestTimeout  int      `yaml:"request_timeout"` // seconds; 0 disables
	Theme           string   `yaml:"theme"`
	ExtraDomains    []string `yaml:"extra_domains"`
	Debug           bool     `yaml:"debug"`
}

// Default returns the configuration used when no file or environment is set
func Default() *Config {
	return &Config{
		Environment:     EnvProduction,
		ValidateSources: true,
		RequestTimeout:  defaultTimeoutSeconds,
		Theme:           "default",
	}
}

// Load loads configuration from config file and environment variables
// Environment variables take precedence over config file values
func Load() (*Config, error) {
	cfg := Default()

	// .env in the working directory only fills variables that are unset
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	configPath := getConfigPath()
	if configPath == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() error {
	if env := os.Getenv("MEDIA_UNMASKED_ENV"); env != "" {
		c.Environment = env
	}
	if apiURL := os.Getenv("MEDIA_UNMASKED_API_URL"); apiURL != "" {
		c.APIBaseURL = apiURL
	}

	for name, dst := range map[string]*bool{
		"MEDIA_UNMASKED_USE_AI":   &c.UseAI,
		"MEDIA_UNMASKED_VALIDATE": &c.ValidateSources,
		"MEDIA_UNMASKED_DEBUG":    &c.Debug,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
		*dst = b
	}

	if v := os.Getenv("MEDIA_UNMASKED_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MEDIA_UNMASKED_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = secs
	}

	return nil
}

// Validate checks values the rest of the program relies on
func (c *Config) Validate() error {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	switch c.Environment {
	case "":
		c.Environment = EnvProduction
	case EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("unknown environment %q: must be %s or %s", c.Environment, EnvProduction, EnvDevelopment)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %d", c.RequestTimeout)
	}
	return nil
}

// BaseURL is the analysis service root for the configured environment
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.Environment == EnvDevelopment {
		return analysis.DevelopmentBaseURL
	}
	return analysis.ProductionBaseURL
}

// Timeout is the request timeout; zero means none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// getConfigPath returns the path to the config file
// Priority: $MEDIA_UNMASKED_CONFIG > ~/.config/media-unmasked/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("MEDIA_UNMASKED_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "media-unmasked", "config.yaml")
}

// Path returns the config file location
func Path() string {
	return getConfigPath()
}

func GetConfigDir() (string, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	return filepath.Dir(configPath), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// SaveExampleConfig creates an example config file
func SaveExampleConfig() error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	example := `# Media Unmasked Configuration

# Which analysis service to use: "production" or "development"
environment: "production"

# Optional: Override the service URL (takes precedence over environment)
# api_base_url: "http://localhost:8000"

# Optional: Ask the service for the AI-assisted analysis (default: false)
use_ai: false

# Optional: Only submit articles from recognized news outlets (default: true)
validate_sources: true

# Optional: Extra domains to treat as recognized outlets
# extra_domains:
#   - "example-news.org"

# Optional: Seconds to wait for an analysis; 0 waits forever (default: 120)
request_timeout: 120

# Optional: Color theme (default, catppuccin, dracula, nord, gruvbox)
theme: "default"
`

	return os.WriteFile(configPath, []byte(example), 0600)
}

// Save writes the preferences managed from the UI. Values that only come
// from the file, like api_base_url and extra_domains, are preserved.
func (c *Config) Save() error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	configPath := getConfigPath()

	existing := Default()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, existing); err != nil {
			return fmt.Errorf("failed to parse existing config: %w", err)
		}
	}

	existing.Environment = c.Environment
	existing.UseAI = c.UseAI
	existing.ValidateSources = c.ValidateSources
	existing.RequestTimeout = c.RequestTimeout
	existing.Theme = c.Theme

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Media Unmasked Configuration\n# Environment variables (MEDIA_UNMASKED_*) override these values\n\n")
	return os.WriteFile(configPath, append(header, data...), 0600)
}
