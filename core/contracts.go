package core

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type Environment string

const (
	EnvironmentProduction Environment = "PRODUCTION"
	EnvironmentSandbox    Environment = "SANDBOX"
)

// Environment config keys understood by ServiceDirectory implementations.
const (
	EnvKeyOAuthScope = "oauth_scope"
	EnvKeyServer     = "server"
	EnvKeyReportHost = "report_host"
)

// Legacy login config keys.
const (
	LegacyLoginKeyServer      = "server"
	LegacyLoginKeyServiceName = "service_name"
)

type AuthKind string

const (
	AuthKindLegacyLogin AuthKind = "legacy_login"
	AuthKindOAuth2      AuthKind = "oauth2"
	AuthKindOAuth2JWT   AuthKind = "oauth2_jwt"
)

// AuthMaterial is the product of an auth strategy: whatever the transport
// needs to authenticate one outbound call.
type AuthMaterial struct {
	TokenType string
	Token     string
}

// AuthStrategy produces valid authentication material on demand. Material
// may block on network I/O to refresh an expired token; it is the only
// blocking point in this library. Credential completeness is validated
// lazily on first call and surfaces as a configuration error; refresh
// failures surface as authentication errors.
type AuthStrategy interface {
	Kind() AuthKind
	Material(ctx context.Context) (AuthMaterial, error)
}

// SOAPHeader is the outbound header section handed to the transport
// collaborator, which merges it into the SOAP envelope. Builders write only
// the fields they own and leave foreign keys untouched.
type SOAPHeader map[string]any

// HeaderBuilder stamps identity fields, session flags, and auth material
// into an outbound request header. Populate reads the credential store's
// current flag values, so any scoped override active at call time is what
// lands on the wire. It never mutates the credential store.
type HeaderBuilder interface {
	Populate(ctx context.Context, header SOAPHeader) error
	Namespace() string
	DefaultNamespace() string
	Version() string
}

// ServiceDirectory is the static lookup collaborator mapping API versions,
// services, and environments to endpoints and related constants. Pure
// lookup, no mutable state.
type ServiceDirectory interface {
	DefaultVersion() string
	DefaultEnvironment() Environment
	Versions() []string
	Services(version string) ([]string, error)
	Endpoint(version string, service string, env Environment) (string, error)
	EnvironmentConfig(env Environment, key string) (string, bool)
	LegacyLoginConfig(key string) (string, bool)
	HeaderNamespace(version string) string
	ServiceNamespace(version string, service string) (string, error)
}

type TransportRequest struct {
	Endpoint  string
	Service   string
	Action    string
	Header    SOAPHeader
	Body      any
	RequestID string
}

type TransportResponse struct {
	StatusCode int
	Body       any
	Metadata   map[string]any
}

// TransportAdapter is the external SOAP client collaborator. This library
// resolves the endpoint and populates headers; marshaling, the HTTP stack,
// and retry policy all live behind this contract.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
