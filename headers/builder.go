// Package headers builds the header-injection strategies that stamp
// identity fields, session flags, and auth material into outbound SOAP
// request headers.
package headers

import (
	"context"
	"fmt"

	"github.com/goliatone/go-adwords/core"
)

// Header field names written by the builders. Fields are qualified with the
// builder's header namespace when the transport serializes the envelope.
const (
	FieldDeveloperToken   = "developerToken"
	FieldClientCustomerID = "clientCustomerId"
	FieldAccountID        = "accountId"
	FieldUserAgent        = "userAgent"
	FieldUseMCC           = "useMcc"
	FieldValidateOnly     = "validateOnly"
	FieldPartialFailure   = "partialFailure"
	FieldAuthToken        = "authToken"
	FieldAuthorization    = "Authorization"
)

// NewBuilder picks the header-builder variant for the configured
// authentication method and binds it to the credential store, the auth
// strategy, and both namespaces.
//
// The method lookup defaults to LEGACY_LOGIN when unset, while strategy
// selection defaults to OAUTH2. The asymmetry is observed behavior callers
// rely on and is preserved, not corrected. A variant bound to a strategy of
// the wrong kind reports the mismatch as a configuration error when the
// first Populate runs.
func NewBuilder(
	cfg core.Config,
	creds *core.Credentials,
	strategy core.AuthStrategy,
	version string,
	headerNamespace string,
	defaultNamespace string,
) (core.HeaderBuilder, error) {
	if creds == nil {
		return nil, core.NewConfigurationError("headers: credentials are required")
	}
	if strategy == nil {
		return nil, core.NewConfigurationError("headers: auth strategy is required")
	}

	base := builderBase{
		creds:            creds,
		strategy:         strategy,
		version:          version,
		headerNamespace:  headerNamespace,
		defaultNamespace: defaultNamespace,
	}

	method := cfg.NormalizedMethod()
	if method == "" {
		method = core.AuthMethodLegacyLogin
	}

	switch method {
	case core.AuthMethodLegacyLogin:
		return &LegacyLoginBuilder{builderBase: base}, nil
	case core.AuthMethodOAuth, core.AuthMethodOAuth2, core.AuthMethodOAuth2JWT:
		return &OAuthBuilder{builderBase: base}, nil
	default:
		return nil, core.NewConfigurationError(fmt.Sprintf("headers: unknown authentication method %q", method))
	}
}

type builderBase struct {
	creds            *core.Credentials
	strategy         core.AuthStrategy
	version          string
	headerNamespace  string
	defaultNamespace string
}

func (b *builderBase) Namespace() string {
	return b.headerNamespace
}

func (b *builderBase) DefaultNamespace() string {
	return b.defaultNamespace
}

func (b *builderBase) Version() string {
	return b.version
}

// writeIdentity and writeFlags only touch the fields this builder owns;
// anything else already in the header survives untouched.
func (b *builderBase) writeIdentity(header core.SOAPHeader) {
	header[FieldDeveloperToken] = b.creds.DeveloperToken()
	if id := b.creds.ClientCustomerID(); id != "" {
		header[FieldClientCustomerID] = id
	}
	if id := b.creds.AccountID(); id != "" {
		header[FieldAccountID] = id
	}
	if agent := b.creds.UserAgent(); agent != "" {
		header[FieldUserAgent] = agent
	}
}

func (b *builderBase) writeFlags(header core.SOAPHeader) {
	header[FieldUseMCC] = b.creds.UseMCC()
	header[FieldValidateOnly] = b.creds.ValidateOnly()
	header[FieldPartialFailure] = b.creds.PartialFailure()
}

func (b *builderBase) material(ctx context.Context, wantKinds ...core.AuthKind) (core.AuthMaterial, error) {
	kind := b.strategy.Kind()
	matched := false
	for _, want := range wantKinds {
		if kind == want {
			matched = true
			break
		}
	}
	if !matched {
		return core.AuthMaterial{}, core.NewConfigurationError(
			fmt.Sprintf("headers: builder does not match auth strategy kind %q", kind),
		)
	}
	return b.strategy.Material(ctx)
}

// LegacyLoginBuilder stamps the legacy auth token into the header body.
type LegacyLoginBuilder struct {
	builderBase
}

func (b *LegacyLoginBuilder) Populate(ctx context.Context, header core.SOAPHeader) error {
	if header == nil {
		return core.NewConfigurationError("headers: header is required")
	}
	material, err := b.material(ctx, core.AuthKindLegacyLogin)
	if err != nil {
		return err
	}
	b.writeIdentity(header)
	b.writeFlags(header)
	header[FieldAuthToken] = material.Token
	return nil
}

// OAuthBuilder carries the bearer token in an Authorization entry the
// transport lifts onto the HTTP request. Shared by the OAuth2 and OAuth2
// JWT strategies; the header shape is identical for both.
type OAuthBuilder struct {
	builderBase
}

func (b *OAuthBuilder) Populate(ctx context.Context, header core.SOAPHeader) error {
	if header == nil {
		return core.NewConfigurationError("headers: header is required")
	}
	material, err := b.material(ctx, core.AuthKindOAuth2, core.AuthKindOAuth2JWT)
	if err != nil {
		return err
	}
	b.writeIdentity(header)
	b.writeFlags(header)
	header[FieldAuthorization] = fmt.Sprintf("%s %s", material.TokenType, material.Token)
	return nil
}

var (
	_ core.HeaderBuilder = (*LegacyLoginBuilder)(nil)
	_ core.HeaderBuilder = (*OAuthBuilder)(nil)
)
