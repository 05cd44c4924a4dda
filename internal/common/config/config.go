// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Adobe         AdobeConfig        `mapstructure:"adobe"`
	HTTP          HTTPConfig         `mapstructure:"http"`
	Slack         SlackConfig        `mapstructure:"slack"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Licenses      LicenseConfig      `mapstructure:"licenses"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AdobeConfig holds credentials and endpoints for the User Management API.
type AdobeConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
	OrgID        string `mapstructure:"org_id"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AccessToken  string `mapstructure:"access_token"` // static token; skips the client-credentials exchange
	Timeout      int    `mapstructure:"timeout"`      // milliseconds
}

// HasStaticToken reports whether a pre-issued bearer token was configured.
func (a AdobeConfig) HasStaticToken() bool {
	return a.AccessToken != ""
}

// HTTPConfig holds retry settings for the outbound API helper.
type HTTPConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	BaseDelay   int `mapstructure:"base_delay"` // milliseconds
	MaxJitter   int `mapstructure:"max_jitter"` // milliseconds
}

type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// NotificationConfig holds settings for the optional email copy of the report.
type NotificationConfig struct {
	Email struct {
		Enabled   bool     `mapstructure:"enabled"`
		FromEmail string   `mapstructure:"from_email"`
		ToEmails  []string `mapstructure:"to_emails"`
		Subject   string   `mapstructure:"subject"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LicenseConfig holds the allocation table and group exclusion list.
type LicenseConfig struct {
	Allocations    map[string]int `mapstructure:"allocations"`
	ExcludedGroups []string       `mapstructure:"excluded_groups"`
}

// Total returns the allocated seats for a product. The lookup is
// case-insensitive because viper lowercases YAML map keys.
func (l LicenseConfig) Total(product string) (int, bool) {
	if t, ok := l.Allocations[product]; ok {
		return t, true
	}
	lower := strings.ToLower(product)
	for name, t := range l.Allocations {
		if strings.ToLower(name) == lower {
			return t, true
		}
	}
	return 0, false
}

// IsExcluded reports whether a raw group name is on the exclusion list.
// Matching happens before any name cleanup.
func (l LicenseConfig) IsExcluded(group string) bool {
	for _, g := range l.ExcludedGroups {
		if g == group {
			return true
		}
	}
	return false
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Adobe.OrgID == "" {
		return fmt.Errorf("adobe.org_id is required")
	}
	if cfg.Adobe.ClientID == "" {
		return fmt.Errorf("adobe.client_id is required")
	}
	if !cfg.Adobe.HasStaticToken() && cfg.Adobe.ClientSecret == "" {
		return fmt.Errorf("adobe.client_secret is required when no static access token is set")
	}
	if cfg.Slack.WebhookURL == "" {
		return fmt.Errorf("slack.webhook_url is required")
	}
	if cfg.Notifications.Email.Enabled {
		if cfg.Notifications.Email.FromEmail == "" || len(cfg.Notifications.Email.ToEmails) == 0 {
			return fmt.Errorf("notifications.email.from_email and to_emails are required when email is enabled")
		}
	}
	for name, total := range cfg.Licenses.Allocations {
		if total < 0 {
			return fmt.Errorf("licenses.allocations[%q] must be >= 0", name)
		}
	}
	return nil
}
