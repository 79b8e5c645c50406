package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultTimeoutSeconds is used when timeout_seconds is unset or not positive
	DefaultTimeoutSeconds = 30

	// CreateIssuePath is appended to the source host when create_url is unset
	CreateIssuePath = "/rest/api/2/issue"
)

// SuccessPolicy decides which creation status codes count as success
type SuccessPolicy string

const (
	// Success2xx accepts any 2xx status, including 201 Created
	Success2xx SuccessPolicy = "2xx"

	// SuccessOKOnly accepts only 200
	SuccessOKOnly SuccessPolicy = "200"
)

// Accepts reports whether status is a success under the policy
func (p SuccessPolicy) Accepts(status int) bool {
	if p == SuccessOKOnly {
		return status == 200
	}
	return status >= 200 && status < 300
}

// Config represents the application configuration
type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
}

// TrackerConfig represents issue tracker API configuration
type TrackerConfig struct {
	SourceURL      string        `yaml:"source_url"`
	CreateURL      string        `yaml:"create_url"`
	Username       string        `yaml:"username"`
	APIToken       string        `yaml:"api_token"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	SuccessPolicy  SuccessPolicy `yaml:"success_policy"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the config file when it exists and returns an empty config otherwise
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadConfig(configPath)
}

// WriteTemplate writes a commented starter config to configPath
func WriteTemplate(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file %s already exists", configPath)
	}

	template := Config{
		Tracker: TrackerConfig{
			SourceURL:      "https://your-domain.atlassian.net/rest/api/2/issue/PROJ-1",
			CreateURL:      "https://your-domain.atlassian.net" + CreateIssuePath,
			Username:       "you@example.com",
			APIToken:       "your-api-token",
			TimeoutSeconds: DefaultTimeoutSeconds,
			SuccessPolicy:  Success2xx,
		},
	}

	data, err := yaml.Marshal(&template)
	if err != nil {
		return fmt.Errorf("failed to marshal config template: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset optional values
func (c *TrackerConfig) ApplyDefaults() error {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.SuccessPolicy == "" {
		c.SuccessPolicy = Success2xx
	}
	if c.CreateURL == "" && c.SourceURL != "" {
		createURL, err := DeriveCreateURL(c.SourceURL)
		if err != nil {
			return err
		}
		c.CreateURL = createURL
	}
	return nil
}

// DeriveCreateURL returns the issue creation endpoint on the same host as sourceURL
func DeriveCreateURL(sourceURL string) (string, error) {
	u, err := parseAbsolute(sourceURL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}
	return u.Scheme + "://" + u.Host + CreateIssuePath, nil
}

// Validate validates the tracker configuration
func (c *TrackerConfig) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source URL is required")
	}
	if _, err := parseAbsolute(c.SourceURL); err != nil {
		return fmt.Errorf("invalid source URL: %w", err)
	}

	if c.CreateURL == "" {
		return fmt.Errorf("create URL is required")
	}
	if _, err := parseAbsolute(c.CreateURL); err != nil {
		return fmt.Errorf("invalid create URL: %w", err)
	}

	if c.Username == "" {
		return fmt.Errorf("username is required")
	}

	if c.APIToken == "" {
		return fmt.Errorf("API token is required")
	}

	switch c.SuccessPolicy {
	case Success2xx, SuccessOKOnly:
	default:
		return fmt.Errorf("unknown success policy %q (want %q or %q)", c.SuccessPolicy, Success2xx, SuccessOKOnly)
	}

	return nil
}

func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%q: missing host", raw)
	}
	return u, nil
}
