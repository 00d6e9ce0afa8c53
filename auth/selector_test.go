package auth

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adwords/core"
)

func TestSelectStrategyDefaultsToOAuth2(t *testing.T) {
	strategy, err := SelectStrategy(core.Config{}, newFakeDirectory(), nil, nil)
	if err != nil {
		t.Fatalf("select strategy: %v", err)
	}
	if strategy.Kind() != core.AuthKindOAuth2 {
		t.Fatalf("expected oauth2 default, got %q", strategy.Kind())
	}
}

func TestSelectStrategyUnknownMethod(t *testing.T) {
	cfg := core.Config{
		Authentication: core.AuthenticationConfig{Method: "FOO"},
	}
	strategy, err := SelectStrategy(cfg, newFakeDirectory(), nil, nil)
	if !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if strategy != nil {
		t.Fatalf("expected no strategy instance on failure")
	}
}

func TestSelectStrategyRejectsLegacyOAuth(t *testing.T) {
	// OAuth 1.0a has no live path regardless of any other config values.
	cfg := core.Config{
		Authentication: core.AuthenticationConfig{
			Method:       core.AuthMethodOAuth,
			ClientID:     "client",
			ClientSecret: "secret",
			RefreshToken: "refresh",
		},
		Service: core.ServiceConfig{Environment: "SANDBOX"},
	}
	if _, err := SelectStrategy(cfg, newFakeDirectory(), nil, nil); !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSelectStrategyLegacyLoginWarnsOnce(t *testing.T) {
	logger := &capturingLogger{}
	cfg := core.Config{
		Authentication: core.AuthenticationConfig{
			Method:   core.AuthMethodLegacyLogin,
			Email:    "user@example.com",
			Password: "hunter2",
		},
	}

	strategy, err := SelectStrategy(cfg, newFakeDirectory(), logger, nil)
	if err != nil {
		t.Fatalf("select strategy: %v", err)
	}
	if strategy.Kind() != core.AuthKindLegacyLogin {
		t.Fatalf("expected legacy login strategy, got %q", strategy.Kind())
	}
	if len(logger.warns) != 1 {
		t.Fatalf("expected exactly one deprecation warning, got %d", len(logger.warns))
	}
	if !strings.Contains(logger.warns[0].msg, "deprecated") {
		t.Fatalf("expected deprecation wording, got %q", logger.warns[0].msg)
	}

	legacy := strategy.(*LegacyLoginStrategy)
	if legacy.config.Server != "https://login.example.com/ClientLogin" {
		t.Fatalf("expected directory auth server, got %q", legacy.config.Server)
	}
	if legacy.config.ServiceName != "adwords" {
		t.Fatalf("expected directory login service name, got %q", legacy.config.ServiceName)
	}
}

func TestSelectStrategyResolvesScopePerEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		environment string
		wantScope   string
	}{
		{name: "oauth2 sandbox", method: core.AuthMethodOAuth2, environment: "SANDBOX", wantScope: "scope-sandbox"},
		{name: "oauth2 default env", method: core.AuthMethodOAuth2, environment: "", wantScope: "scope-production"},
		{name: "jwt sandbox", method: core.AuthMethodOAuth2JWT, environment: "SANDBOX", wantScope: "scope-sandbox"},
		{name: "jwt default env", method: core.AuthMethodOAuth2JWT, environment: "", wantScope: "scope-production"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := core.Config{
				Authentication: core.AuthenticationConfig{Method: tc.method},
				Service:        core.ServiceConfig{Environment: tc.environment},
			}
			strategy, err := SelectStrategy(cfg, newFakeDirectory(), nil, nil)
			if err != nil {
				t.Fatalf("select strategy: %v", err)
			}
			scoped, ok := strategy.(interface{ Scope() string })
			if !ok {
				t.Fatalf("expected strategy to expose its scope")
			}
			if scoped.Scope() != tc.wantScope {
				t.Fatalf("expected scope %q, got %q", tc.wantScope, scoped.Scope())
			}
		})
	}
}

func TestSelectStrategyUnknownEnvironmentScope(t *testing.T) {
	dir := newFakeDirectory()
	delete(dir.scopes, core.EnvironmentSandbox)
	cfg := core.Config{
		Authentication: core.AuthenticationConfig{Method: core.AuthMethodOAuth2},
		Service:        core.ServiceConfig{Environment: "SANDBOX"},
	}
	if _, err := SelectStrategy(cfg, dir, nil, nil); !core.IsConfigurationError(err) {
		t.Fatalf("expected configuration error for missing scope, got %v", err)
	}
}
