package core

import (
	"fmt"
	"strings"
)

// Authentication method names accepted under `authentication.method`.
const (
	AuthMethodLegacyLogin = "LEGACY_LOGIN"
	AuthMethodOAuth       = "OAUTH"
	AuthMethodOAuth2      = "OAUTH2"
	AuthMethodOAuth2JWT   = "OAUTH2_JWT"
)

type AuthenticationConfig struct {
	Method string `koanf:"method" mapstructure:"method"`

	// OAuth2 / OAuth2 JWT credentials.
	ClientID     string `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret string `koanf:"client_secret" mapstructure:"client_secret"`
	RefreshToken string `koanf:"refresh_token" mapstructure:"refresh_token"`
	Issuer       string `koanf:"issuer" mapstructure:"issuer"`
	Subject      string `koanf:"subject" mapstructure:"subject"`
	PrivateKey   string `koanf:"private_key" mapstructure:"private_key"`
	TokenURL     string `koanf:"token_url" mapstructure:"token_url"`

	// Legacy login credentials.
	Email    string `koanf:"email" mapstructure:"email"`
	Password string `koanf:"password" mapstructure:"password"`
}

type ServiceConfig struct {
	Environment string `koanf:"environment" mapstructure:"environment"`
	Version     string `koanf:"version" mapstructure:"version"`
}

type ClientConfig struct {
	DeveloperToken   string `koanf:"developer_token" mapstructure:"developer_token"`
	ClientCustomerID string `koanf:"client_customer_id" mapstructure:"client_customer_id"`
	AccountID        string `koanf:"account_id" mapstructure:"account_id"`
	UserAgent        string `koanf:"user_agent" mapstructure:"user_agent"`
}

type Config struct {
	Authentication AuthenticationConfig `koanf:"authentication" mapstructure:"authentication"`
	Service        ServiceConfig        `koanf:"service" mapstructure:"service"`
	Client         ClientConfig         `koanf:"client" mapstructure:"client"`
}

func DefaultConfig() Config {
	return Config{
		Client: ClientConfig{
			UserAgent: "go-adwords (unknown)",
		},
	}
}

// Validate checks config shape only. Authentication method values and
// credential completeness are deliberately left to strategy selection and
// first material use, so the error taxonomy stays single-sourced there.
func (c *Config) Validate() error {
	env := strings.TrimSpace(strings.ToUpper(c.Service.Environment))
	switch env {
	case "", string(EnvironmentProduction), string(EnvironmentSandbox):
		return nil
	default:
		return fmt.Errorf("core: unknown service environment %q", c.Service.Environment)
	}
}

// NormalizedMethod returns the configured authentication method uppercased
// and trimmed, empty when unset. Defaults are applied by the consumers: the
// strategy selector defaults to OAUTH2, the header-builder factory to
// LEGACY_LOGIN. The two defaults differ on purpose; see headers.NewBuilder.
func (c *Config) NormalizedMethod() string {
	return strings.TrimSpace(strings.ToUpper(c.Authentication.Method))
}

// NormalizedEnvironment returns the configured environment, or empty when
// unset so callers can fall back to the service directory default.
func (c *Config) NormalizedEnvironment() Environment {
	return Environment(strings.TrimSpace(strings.ToUpper(c.Service.Environment)))
}
