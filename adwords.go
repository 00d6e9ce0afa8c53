// Package adwords is a client library for the AdWords SOAP API. It resolves
// service endpoints per API version and environment, authenticates requests
// through a configurable strategy, stamps protocol headers on every
// outbound call, and exposes scoped session flags (account-management
// execution, dry-run validation, partial-failure tolerance) that never leak
// across unrelated calls.
//
// The SOAP client itself is an external collaborator wired in through
// core.TransportAdapter; this package owns everything up to the envelope.
package adwords

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/goliatone/go-adwords/auth"
	"github.com/goliatone/go-adwords/core"
	"github.com/goliatone/go-adwords/headers"
	"github.com/goliatone/go-adwords/reports"
)

// API is the facade. One instance per configured client; it owns the
// credential store and lazily builds the auth strategy and header builder
// on first use, then reuses them for the facade's lifetime.
//
// The facade assumes a single logical call path. Credentials are plain
// shared state; callers sharing an instance across goroutines must
// serialize access to the scoped-flag runners and flag setters themselves.
type API struct {
	config       core.Config
	credentials  *core.Credentials
	directory    core.ServiceDirectory
	logger       core.Logger
	errorFactory core.ErrorFactory
	errorMapper  core.ErrorMapper
	metrics      core.MetricsRecorder
	transport    core.TransportAdapter
	httpClient   *http.Client
	version      string
	environment  core.Environment

	strategy core.AuthStrategy
	builder  core.HeaderBuilder
}

// New builds a facade from an in-memory config. When a config provider is
// wired in, its loaded values sit between library defaults and the runtime
// config, lowest to highest precedence.
func New(cfg core.Config, opts ...Option) (*API, error) {
	builder := defaultAPIBuilder()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}
	builder.applyDefaults()

	loadCtx := builder.loadContext
	if loadCtx == nil {
		loadCtx = context.Background()
	}
	defaults := core.DefaultConfig()
	loaded := core.Config{}
	if builder.configProvider != nil {
		var err error
		loaded, err = builder.configProvider.Load(loadCtx, defaults)
		if err != nil {
			return nil, core.WrapConfiguration(err, "adwords: config load failed")
		}
	}
	resolved, err := builder.optionsResolver.Resolve(defaults, loaded, cfg)
	if err != nil {
		return nil, core.WrapConfiguration(err, "adwords: config resolution failed")
	}

	dir := builder.directory
	_, logger := glog.Resolve("adwords", builder.loggerProvider, builder.logger)

	version := builder.version
	if version == "" {
		version = resolved.Service.Version
	}
	if version == "" {
		version = dir.DefaultVersion()
	}
	if err := validateVersion(dir, version, builder.errorFactory); err != nil {
		return nil, err
	}

	environment := resolved.NormalizedEnvironment()
	if environment == "" {
		environment = dir.DefaultEnvironment()
	}

	return &API{
		config:       resolved,
		credentials:  core.NewCredentials(resolved.Client),
		directory:    dir,
		logger:       logger,
		errorFactory: builder.errorFactory,
		errorMapper:  builder.errorMapper,
		metrics:      builder.metricsRecorder,
		transport:    builder.transport,
		httpClient:   builder.httpClient,
		version:      version,
		environment:  environment,
	}, nil
}

// NewFromRaw builds a facade from a key-path settings map, for example
//
//	{"authentication": {"method": "OAUTH2", ...}, "client": {...}}
func NewFromRaw(ctx context.Context, raw map[string]any, opts ...Option) (*API, error) {
	provider := core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: raw})
	opts = append([]Option{WithConfigProvider(provider), withLoadContext(ctx)}, opts...)
	return New(core.Config{}, opts...)
}

func validateVersion(dir core.ServiceDirectory, version string, newError core.ErrorFactory) error {
	for _, known := range dir.Versions() {
		if known == version {
			return nil
		}
	}
	return newError(fmt.Sprintf("adwords: unknown API version %q", version), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ErrorCodeConfiguration)
}

func (a *API) Config() core.Config {
	return a.config
}

func (a *API) Credentials() *core.Credentials {
	return a.credentials
}

func (a *API) Version() string {
	return a.version
}

func (a *API) Environment() core.Environment {
	return a.environment
}

// AuthStrategy resolves the configured strategy on first call and caches it
// for the facade's lifetime. Selection is pure; token acquisition happens
// inside the strategy on first material use.
func (a *API) AuthStrategy() (core.AuthStrategy, error) {
	if a.strategy != nil {
		return a.strategy, nil
	}
	strategy, err := auth.SelectStrategy(a.config, a.directory, a.logger, a.httpClient)
	if err != nil {
		return nil, err
	}
	a.strategy = strategy
	return strategy, nil
}

// HeaderBuilder resolves the header-builder variant on first call and
// caches it. The header and default namespaces both resolve to the
// campaign-management namespace for the facade's version; transports derive
// group-specific body namespaces through the directory per service.
func (a *API) HeaderBuilder() (core.HeaderBuilder, error) {
	if a.builder != nil {
		return a.builder, nil
	}
	strategy, err := a.AuthStrategy()
	if err != nil {
		return nil, err
	}
	headerNS := a.directory.HeaderNamespace(a.version)
	builder, err := headers.NewBuilder(a.config, a.credentials, strategy, a.version, headerNS, headerNS)
	if err != nil {
		return nil, err
	}
	a.builder = builder
	return builder, nil
}

// PrepareHeaders returns a freshly populated header section for one
// outbound call. Session flags are read at this moment, so any scoped
// override active right now is what goes on the wire.
func (a *API) PrepareHeaders(ctx context.Context) (core.SOAPHeader, error) {
	builder, err := a.HeaderBuilder()
	if err != nil {
		return nil, err
	}
	header := core.SOAPHeader{}
	if err := builder.Populate(ctx, header); err != nil {
		return nil, err
	}
	return header, nil
}

// Call resolves the endpoint for a service, populates headers, and hands
// the request to the transport collaborator. Header population happens
// after any scoped flag override took effect and before dispatch; nothing
// reorders across that boundary.
func (a *API) Call(ctx context.Context, service string, action string, body any) (core.TransportResponse, error) {
	startedAt := time.Now()
	requestID := uuid.NewString()

	endpoint, err := a.directory.Endpoint(a.version, service, a.environment)
	if err != nil {
		a.observeCall(ctx, startedAt, service, action, requestID, err)
		return core.TransportResponse{}, err
	}
	header, err := a.PrepareHeaders(ctx)
	if err != nil {
		a.observeCall(ctx, startedAt, service, action, requestID, err)
		return core.TransportResponse{}, err
	}

	response, err := a.transport.Do(ctx, core.TransportRequest{
		Endpoint:  endpoint,
		Service:   service,
		Action:    action,
		Header:    header,
		Body:      body,
		RequestID: requestID,
	})
	a.observeCall(ctx, startedAt, service, action, requestID, err)
	if err != nil {
		return core.TransportResponse{}, a.errorMapper(err)
	}
	return response, nil
}

func (a *API) UseMCC() bool { return a.credentials.UseMCC() }

func (a *API) SetUseMCC(value bool) { a.credentials.SetUseMCC(value) }

func (a *API) ValidateOnly() bool { return a.credentials.ValidateOnly() }

func (a *API) SetValidateOnly(value bool) { a.credentials.SetValidateOnly(value) }

func (a *API) PartialFailure() bool { return a.credentials.PartialFailure() }

func (a *API) SetPartialFailure(value bool) { a.credentials.SetPartialFailure(value) }

// WithAccountManagement runs op with account-management execution forced to
// value, restoring the previous setting afterwards whether op succeeds or
// fails. Same-flag scopes nest LIFO.
func (a *API) WithAccountManagement(value bool, op func() error) error {
	return core.RunWithFlagErr(a.credentials, core.FlagAccountManagement, value, op)
}

// WithValidateOnly runs op with dry-run validation forced to value.
func (a *API) WithValidateOnly(value bool, op func() error) error {
	return core.RunWithFlagErr(a.credentials, core.FlagValidateOnly, value, op)
}

// WithPartialFailure runs op with partial-failure tolerance forced to value.
func (a *API) WithPartialFailure(value bool, op func() error) error {
	return core.RunWithFlagErr(a.credentials, core.FlagPartialFailure, value, op)
}

// ReportDownloadURL resolves the ad-hoc report download endpoint for the
// facade's version and environment.
func (a *API) ReportDownloadURL() (string, error) {
	return reports.DownloadURL(a.directory, a.version, a.environment)
}

// ReportDownloader builds a downloader sharing this facade's credentials
// and auth strategy.
func (a *API) ReportDownloader() (*reports.Downloader, error) {
	strategy, err := a.AuthStrategy()
	if err != nil {
		return nil, err
	}
	var doer core.HTTPDoer
	if a.httpClient != nil {
		doer = a.httpClient
	}
	return reports.NewDownloader(a.credentials, strategy, doer)
}

func (a *API) observeCall(
	ctx context.Context,
	startedAt time.Time,
	service string,
	action string,
	requestID string,
	err error,
) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	if a.metrics != nil {
		tags := map[string]string{
			"service": service,
			"action":  action,
			"status":  status,
		}
		a.metrics.IncCounter(ctx, "adwords.call.total", 1, tags)
		a.metrics.ObserveHistogram(ctx, "adwords.call.duration_ms",
			float64(time.Since(startedAt).Milliseconds()), tags)
	}

	if a.logger == nil {
		return
	}
	fields := map[string]any{
		"service":     service,
		"action":      action,
		"request_id":  requestID,
		"version":     a.version,
		"environment": string(a.environment),
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	logger := a.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := flattenFields(fields)
	if err != nil {
		logger.Error("call failed", args...)
		return
	}
	logger.Info("call succeeded", args...)
}
