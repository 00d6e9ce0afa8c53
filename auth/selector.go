// Package auth selects and implements the authentication strategies the
// API supports. Selection is a pure function of configuration resolved once
// per facade; strategies validate their credentials lazily and acquire
// tokens on first use.
package auth

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-adwords/core"
)

// SelectStrategy constructs exactly one auth strategy from configuration.
// `authentication.method` defaults to OAUTH2 here; note the header-builder
// factory resolves the same key with a different default, see
// headers.NewBuilder.
//
// No network I/O happens at selection time. The only side effect is the
// deprecation warning for legacy login.
func SelectStrategy(
	cfg core.Config,
	dir core.ServiceDirectory,
	logger core.Logger,
	httpClient *http.Client,
) (core.AuthStrategy, error) {
	if dir == nil {
		return nil, core.NewConfigurationError("auth: service directory is required")
	}

	method := cfg.NormalizedMethod()
	if method == "" {
		method = core.AuthMethodOAuth2
	}

	switch method {
	case core.AuthMethodLegacyLogin:
		if logger != nil {
			logger.Warn("auth: legacy login is deprecated, migrate to OAuth2")
		}
		server, _ := dir.LegacyLoginConfig(core.LegacyLoginKeyServer)
		serviceName, _ := dir.LegacyLoginConfig(core.LegacyLoginKeyServiceName)
		return NewLegacyLoginStrategy(LegacyLoginStrategyConfig{
			Server:      server,
			ServiceName: serviceName,
			Email:       cfg.Authentication.Email,
			Password:    cfg.Authentication.Password,
			Source:      cfg.Client.UserAgent,
			HTTPClient:  httpClient,
		}), nil

	case core.AuthMethodOAuth:
		return nil, core.NewConfigurationError("auth: OAuth 1.0a is no longer supported, use OAUTH2")

	case core.AuthMethodOAuth2:
		scope, err := resolveScope(cfg, dir)
		if err != nil {
			return nil, err
		}
		return NewOAuth2Strategy(OAuth2StrategyConfig{
			ClientID:     cfg.Authentication.ClientID,
			ClientSecret: cfg.Authentication.ClientSecret,
			RefreshToken: cfg.Authentication.RefreshToken,
			TokenURL:     cfg.Authentication.TokenURL,
			Scope:        scope,
			HTTPClient:   httpClient,
		}), nil

	case core.AuthMethodOAuth2JWT:
		scope, err := resolveScope(cfg, dir)
		if err != nil {
			return nil, err
		}
		return NewOAuth2JWTStrategy(OAuth2JWTStrategyConfig{
			Issuer:     cfg.Authentication.Issuer,
			Subject:    cfg.Authentication.Subject,
			PrivateKey: cfg.Authentication.PrivateKey,
			TokenURL:   cfg.Authentication.TokenURL,
			Scope:      scope,
			HTTPClient: httpClient,
		}), nil

	default:
		return nil, core.NewConfigurationError(fmt.Sprintf("auth: unknown authentication method %q", method))
	}
}

func resolveScope(cfg core.Config, dir core.ServiceDirectory) (string, error) {
	env := cfg.NormalizedEnvironment()
	if env == "" {
		env = dir.DefaultEnvironment()
	}
	scope, ok := dir.EnvironmentConfig(env, core.EnvKeyOAuthScope)
	if !ok {
		return "", core.NewConfigurationError(fmt.Sprintf("auth: no OAuth scope configured for environment %q", env))
	}
	return scope, nil
}
