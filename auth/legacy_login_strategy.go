package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-adwords/core"
)

const (
	legacyTokenType          = "GoogleLogin"
	defaultLegacyTokenTTL    = 12 * time.Hour
	maxLegacyResponseBytes   = 1 << 16
	legacyLoginAccountType   = "GOOGLE"
	defaultLegacyRequestTime = 30 * time.Second
)

type LegacyLoginStrategyConfig struct {
	Server      string
	ServiceName string
	Email       string
	Password    string
	Source      string
	TokenTTL    time.Duration
	HTTPClient  core.HTTPDoer
	Now         func() time.Time
}

// LegacyLoginStrategy exchanges email/password for an auth token at the
// legacy login endpoint and caches it until close to expiry. Deprecated
// upstream; kept operable for callers that have not migrated.
type LegacyLoginStrategy struct {
	config     LegacyLoginStrategyConfig
	httpClient core.HTTPDoer

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewLegacyLoginStrategy(cfg LegacyLoginStrategyConfig) *LegacyLoginStrategy {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultLegacyTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultLegacyRequestTime}
	}
	return &LegacyLoginStrategy{
		config: LegacyLoginStrategyConfig{
			Server:      strings.TrimSpace(cfg.Server),
			ServiceName: strings.TrimSpace(cfg.ServiceName),
			Email:       strings.TrimSpace(cfg.Email),
			Password:    cfg.Password,
			Source:      strings.TrimSpace(cfg.Source),
			TokenTTL:    cfg.TokenTTL,
			Now:         cfg.Now,
		},
		httpClient: httpClient,
	}
}

func (*LegacyLoginStrategy) Kind() core.AuthKind {
	return core.AuthKindLegacyLogin
}

func (s *LegacyLoginStrategy) Material(ctx context.Context) (core.AuthMaterial, error) {
	if err := s.validate(); err != nil {
		return core.AuthMaterial{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Now().UTC()
	if s.token != "" && s.expiresAt.After(now) {
		return core.AuthMaterial{TokenType: legacyTokenType, Token: s.token}, nil
	}

	token, err := s.exchange(ctx)
	if err != nil {
		return core.AuthMaterial{}, err
	}
	s.token = token
	s.expiresAt = now.Add(s.config.TokenTTL)
	return core.AuthMaterial{TokenType: legacyTokenType, Token: token}, nil
}

func (s *LegacyLoginStrategy) validate() error {
	switch {
	case s.config.Server == "":
		return core.NewConfigurationError("auth: legacy login server is required")
	case s.config.ServiceName == "":
		return core.NewConfigurationError("auth: legacy login service name is required")
	case s.config.Email == "":
		return core.NewConfigurationError("auth: legacy login email is required")
	case s.config.Password == "":
		return core.NewConfigurationError("auth: legacy login password is required")
	}
	return nil
}

func (s *LegacyLoginStrategy) exchange(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("accountType", legacyLoginAccountType)
	form.Set("Email", s.config.Email)
	form.Set("Passwd", s.config.Password)
	form.Set("service", s.config.ServiceName)
	if s.config.Source != "" {
		form.Set("source", s.config.Source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Server, strings.NewReader(form.Encode()))
	if err != nil {
		return "", core.WrapAuthentication(err, "auth: legacy login request build failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", core.WrapAuthentication(err, "auth: legacy login request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLegacyResponseBytes))
	if err != nil {
		return "", core.WrapAuthentication(err, "auth: legacy login response read failed")
	}
	fields := parseLegacyResponse(string(body))

	if resp.StatusCode != http.StatusOK {
		reason := fields["Error"]
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", core.NewAuthenticationError(fmt.Sprintf("auth: legacy login rejected: %s", reason))
	}

	token := fields["Auth"]
	if token == "" {
		return "", core.NewAuthenticationError("auth: legacy login response carried no auth token")
	}
	return token, nil
}

// Responses are newline-separated Key=Value pairs.
func parseLegacyResponse(body string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(body, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found || key == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

var _ core.AuthStrategy = (*LegacyLoginStrategy)(nil)
