package adwords

import (
	"context"
	"net/http"
	"sort"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-adwords/core"
	"github.com/goliatone/go-adwords/directory"
	"github.com/goliatone/go-adwords/transport"
)

type apiBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	errorFactory    core.ErrorFactory
	errorMapper     core.ErrorMapper
	metricsRecorder core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	directory       core.ServiceDirectory
	transport       core.TransportAdapter
	httpClient      *http.Client
	version         string
	loadContext     context.Context
}

type Option func(*apiBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *apiBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *apiBuilder) {
		b.loggerProvider = provider
	}
}

func WithErrorFactory(factory core.ErrorFactory) Option {
	return func(b *apiBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(b *apiBuilder) {
		b.errorMapper = mapper
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *apiBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *apiBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *apiBuilder) {
		b.optionsResolver = resolver
	}
}

func WithDirectory(dir core.ServiceDirectory) Option {
	return func(b *apiBuilder) {
		b.directory = dir
	}
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(b *apiBuilder) {
		b.transport = adapter
	}
}

// WithHTTPClient routes all token endpoint and report download traffic
// through client. Useful for tests and custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(b *apiBuilder) {
		b.httpClient = client
	}
}

func WithAPIVersion(version string) Option {
	return func(b *apiBuilder) {
		b.version = version
	}
}

func withLoadContext(ctx context.Context) Option {
	return func(b *apiBuilder) {
		b.loadContext = ctx
	}
}

func defaultAPIBuilder() apiBuilder {
	return apiBuilder{
		errorFactory:    goerrors.New,
		errorMapper:     core.DefaultErrorMapper,
		metricsRecorder: core.NopMetricsRecorder{},
		optionsResolver: core.GoOptionsResolver{},
		directory:       directory.New(),
		transport: transport.NewUnsupportedAdapter(
			transport.KindSOAP,
			"wire a SOAP client with WithTransportAdapter",
		),
	}
}

// applyDefaults backfills collaborators an option explicitly set to nil.
func (b *apiBuilder) applyDefaults() {
	if b.errorFactory == nil {
		b.errorFactory = goerrors.New
	}
	if b.errorMapper == nil {
		b.errorMapper = core.DefaultErrorMapper
	}
	if b.metricsRecorder == nil {
		b.metricsRecorder = core.NopMetricsRecorder{}
	}
	if b.optionsResolver == nil {
		b.optionsResolver = core.GoOptionsResolver{}
	}
	if b.directory == nil {
		b.directory = directory.New()
	}
	if b.transport == nil {
		b.transport = transport.NewUnsupportedAdapter(
			transport.KindSOAP,
			"wire a SOAP client with WithTransportAdapter",
		)
	}
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
