package core

import (
	"context"
	"fmt"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	opts "github.com/goliatone/go-options"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

// DefaultErrorMapper wraps arbitrary errors in the library's stable error
// envelope. Configuration and authentication errors pass through untouched.
func DefaultErrorMapper(err error) *goerrors.Error {
	return apiErrorMapper(err)
}

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

// StaticRawConfigLoader serves a fixed key-path map, the way callers hand
// settings to NewFromRaw.
type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver merges defaults, loaded config, and runtime overrides
// as layered scopes with ascending precedence.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}

	authentication := map[string]any{}
	setLayerValue(authentication, "method", cfg.Authentication.Method, includeZero)
	setLayerValue(authentication, "client_id", cfg.Authentication.ClientID, includeZero)
	setLayerValue(authentication, "client_secret", cfg.Authentication.ClientSecret, includeZero)
	setLayerValue(authentication, "refresh_token", cfg.Authentication.RefreshToken, includeZero)
	setLayerValue(authentication, "issuer", cfg.Authentication.Issuer, includeZero)
	setLayerValue(authentication, "subject", cfg.Authentication.Subject, includeZero)
	setLayerValue(authentication, "private_key", cfg.Authentication.PrivateKey, includeZero)
	setLayerValue(authentication, "token_url", cfg.Authentication.TokenURL, includeZero)
	setLayerValue(authentication, "email", cfg.Authentication.Email, includeZero)
	setLayerValue(authentication, "password", cfg.Authentication.Password, includeZero)
	if len(authentication) > 0 {
		layer["authentication"] = authentication
	}

	service := map[string]any{}
	setLayerValue(service, "environment", cfg.Service.Environment, includeZero)
	setLayerValue(service, "version", cfg.Service.Version, includeZero)
	if len(service) > 0 {
		layer["service"] = service
	}

	client := map[string]any{}
	setLayerValue(client, "developer_token", cfg.Client.DeveloperToken, includeZero)
	setLayerValue(client, "client_customer_id", cfg.Client.ClientCustomerID, includeZero)
	setLayerValue(client, "account_id", cfg.Client.AccountID, includeZero)
	setLayerValue(client, "user_agent", cfg.Client.UserAgent, includeZero)
	if len(client) > 0 {
		layer["client"] = client
	}

	return layer
}

func setLayerValue(layer map[string]any, key string, value string, includeZero bool) {
	if includeZero || value != "" {
		layer[key] = value
	}
}
