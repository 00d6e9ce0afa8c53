package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/goliatone/go-adwords/core"
)

const defaultOAuth2TokenURL = "https://accounts.google.com/o/oauth2/token"

type OAuth2StrategyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
	Scope        string

	// HTTPClient, when set, carries all token endpoint traffic. Handed to
	// the oauth2 package through its context; useful for tests.
	HTTPClient *http.Client
}

// OAuth2Strategy produces bearer tokens from a long-lived refresh token.
// Refreshing is delegated to an oauth2.TokenSource, which caches the access
// token and only hits the token endpoint when it expires. That refresh is
// the one blocking point in this library.
type OAuth2Strategy struct {
	config OAuth2StrategyConfig

	mu     sync.Mutex
	source oauth2.TokenSource
}

func NewOAuth2Strategy(cfg OAuth2StrategyConfig) *OAuth2Strategy {
	if strings.TrimSpace(cfg.TokenURL) == "" {
		cfg.TokenURL = defaultOAuth2TokenURL
	}
	return &OAuth2Strategy{
		config: OAuth2StrategyConfig{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			RefreshToken: strings.TrimSpace(cfg.RefreshToken),
			TokenURL:     strings.TrimSpace(cfg.TokenURL),
			Scope:        strings.TrimSpace(cfg.Scope),
			HTTPClient:   cfg.HTTPClient,
		},
	}
}

func (*OAuth2Strategy) Kind() core.AuthKind {
	return core.AuthKindOAuth2
}

// Scope reports the OAuth scope the strategy was constructed with.
func (s *OAuth2Strategy) Scope() string {
	return s.config.Scope
}

func (s *OAuth2Strategy) Material(ctx context.Context) (core.AuthMaterial, error) {
	if err := s.validate(); err != nil {
		return core.AuthMaterial{}, err
	}

	s.mu.Lock()
	if s.source == nil {
		s.source = s.newTokenSource(ctx)
	}
	source := s.source
	s.mu.Unlock()

	token, err := source.Token()
	if err != nil {
		return core.AuthMaterial{}, core.WrapAuthentication(err, "auth: oauth2 token refresh failed")
	}
	return core.AuthMaterial{
		TokenType: tokenTypeOrBearer(token.TokenType),
		Token:     token.AccessToken,
	}, nil
}

func (s *OAuth2Strategy) validate() error {
	switch {
	case s.config.ClientID == "":
		return core.NewConfigurationError("auth: oauth2 client_id is required")
	case s.config.ClientSecret == "":
		return core.NewConfigurationError("auth: oauth2 client_secret is required")
	case s.config.RefreshToken == "":
		return core.NewConfigurationError("auth: oauth2 refresh_token is required")
	}
	return nil
}

func (s *OAuth2Strategy) newTokenSource(ctx context.Context) oauth2.TokenSource {
	if s.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.config.HTTPClient)
	}
	cfg := oauth2.Config{
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: s.config.TokenURL},
		Scopes:       []string{s.config.Scope},
	}
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: s.config.RefreshToken})
}

func tokenTypeOrBearer(tokenType string) string {
	tokenType = strings.TrimSpace(tokenType)
	if tokenType == "" {
		return "Bearer"
	}
	return tokenType
}

var _ core.AuthStrategy = (*OAuth2Strategy)(nil)
