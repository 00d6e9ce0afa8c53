package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"

	"github.com/goliatone/go-adwords/core"
)

type OAuth2JWTStrategyConfig struct {
	Issuer     string
	Subject    string
	PrivateKey string
	TokenURL   string
	Scope      string
	HTTPClient *http.Client
}

// OAuth2JWTStrategy produces bearer tokens by exchanging a signed service
// account assertion at the token endpoint. The assertion build and exchange
// are delegated to the oauth2 jwt config's token source.
type OAuth2JWTStrategy struct {
	config OAuth2JWTStrategyConfig

	mu     sync.Mutex
	source oauth2.TokenSource
}

func NewOAuth2JWTStrategy(cfg OAuth2JWTStrategyConfig) *OAuth2JWTStrategy {
	if strings.TrimSpace(cfg.TokenURL) == "" {
		cfg.TokenURL = defaultOAuth2TokenURL
	}
	return &OAuth2JWTStrategy{
		config: OAuth2JWTStrategyConfig{
			Issuer:     strings.TrimSpace(cfg.Issuer),
			Subject:    strings.TrimSpace(cfg.Subject),
			PrivateKey: strings.TrimSpace(cfg.PrivateKey),
			TokenURL:   strings.TrimSpace(cfg.TokenURL),
			Scope:      strings.TrimSpace(cfg.Scope),
			HTTPClient: cfg.HTTPClient,
		},
	}
}

func (*OAuth2JWTStrategy) Kind() core.AuthKind {
	return core.AuthKindOAuth2JWT
}

func (s *OAuth2JWTStrategy) Scope() string {
	return s.config.Scope
}

func (s *OAuth2JWTStrategy) Material(ctx context.Context) (core.AuthMaterial, error) {
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
		return core.AuthMaterial{}, core.WrapAuthentication(err, "auth: oauth2 jwt assertion exchange failed")
	}
	return core.AuthMaterial{
		TokenType: tokenTypeOrBearer(token.TokenType),
		Token:     token.AccessToken,
	}, nil
}

func (s *OAuth2JWTStrategy) validate() error {
	switch {
	case s.config.Issuer == "":
		return core.NewConfigurationError("auth: oauth2 jwt issuer is required")
	case s.config.PrivateKey == "":
		return core.NewConfigurationError("auth: oauth2 jwt private key is required")
	}
	return nil
}

func (s *OAuth2JWTStrategy) newTokenSource(ctx context.Context) oauth2.TokenSource {
	if s.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.config.HTTPClient)
	}
	cfg := jwt.Config{
		Email:      s.config.Issuer,
		Subject:    s.config.Subject,
		PrivateKey: []byte(s.config.PrivateKey),
		Scopes:     []string{s.config.Scope},
		TokenURL:   s.config.TokenURL,
	}
	return oauth2.ReuseTokenSource(nil, cfg.TokenSource(ctx))
}

var _ core.AuthStrategy = (*OAuth2JWTStrategy)(nil)
