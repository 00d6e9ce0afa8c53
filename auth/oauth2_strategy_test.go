package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-adwords/core"
)

func newTokenEndpoint(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("refresh_token") != "refresh-1" {
			t.Fatalf("expected refresh token in form, got %q", r.PostForm.Get("refresh_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	}))
}

func TestOAuth2MaterialRefreshesAndCaches(t *testing.T) {
	requests := 0
	server := newTokenEndpoint(t, &requests)
	defer server.Close()

	strategy := NewOAuth2Strategy(OAuth2StrategyConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "refresh-1",
		TokenURL:     server.URL,
		Scope:        "scope-production",
		HTTPClient:   server.Client(),
	})
	if strategy.Kind() != core.AuthKindOAuth2 {
		t.Fatalf("expected oauth2 kind, got %q", strategy.Kind())
	}

	material, err := strategy.Material(context.Background())
	if err != nil {
		t.Fatalf("material: %v", err)
	}
	if material.TokenType != "Bearer" {
		t.Fatalf("expected bearer token type, got %q", material.TokenType)
	}
	if material.Token != "access-1" {
		t.Fatalf("expected access token, got %q", material.Token)
	}

	if _, err := strategy.Material(context.Background()); err != nil {
		t.Fatalf("material: %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected token source to cache until expiry, got %d requests", requests)
	}
}

func TestOAuth2MaterialRefreshFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	strategy := NewOAuth2Strategy(OAuth2StrategyConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "revoked",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
	})

	_, err := strategy.Material(context.Background())
	if !core.IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestOAuth2MaterialIncompleteCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  OAuth2StrategyConfig
	}{
		{name: "missing client id", cfg: OAuth2StrategyConfig{ClientSecret: "s", RefreshToken: "r"}},
		{name: "missing client secret", cfg: OAuth2StrategyConfig{ClientID: "c", RefreshToken: "r"}},
		{name: "missing refresh token", cfg: OAuth2StrategyConfig{ClientID: "c", ClientSecret: "s"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			strategy := NewOAuth2Strategy(tc.cfg)
			if _, err := strategy.Material(context.Background()); !core.IsConfigurationError(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestOAuth2DefaultsTokenURL(t *testing.T) {
	strategy := NewOAuth2Strategy(OAuth2StrategyConfig{ClientID: "c", ClientSecret: "s", RefreshToken: "r"})
	if strategy.config.TokenURL != defaultOAuth2TokenURL {
		t.Fatalf("expected default token url, got %q", strategy.config.TokenURL)
	}
}
