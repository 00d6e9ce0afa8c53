package adwords

import "github.com/goliatone/go-adwords/core"

type Config = core.Config

type AuthenticationConfig = core.AuthenticationConfig
type ServiceConfig = core.ServiceConfig
type ClientConfig = core.ClientConfig

type Credentials = core.Credentials
type Flag = core.Flag
type Environment = core.Environment

type AuthKind = core.AuthKind
type AuthStrategy = core.AuthStrategy
type AuthMaterial = core.AuthMaterial
type HeaderBuilder = core.HeaderBuilder
type SOAPHeader = core.SOAPHeader
type ServiceDirectory = core.ServiceDirectory
type TransportAdapter = core.TransportAdapter
type TransportRequest = core.TransportRequest
type TransportResponse = core.TransportResponse

const (
	FlagAccountManagement = core.FlagAccountManagement
	FlagValidateOnly      = core.FlagValidateOnly
	FlagPartialFailure    = core.FlagPartialFailure

	EnvironmentProduction = core.EnvironmentProduction
	EnvironmentSandbox    = core.EnvironmentSandbox

	AuthMethodLegacyLogin = core.AuthMethodLegacyLogin
	AuthMethodOAuth       = core.AuthMethodOAuth
	AuthMethodOAuth2      = core.AuthMethodOAuth2
	AuthMethodOAuth2JWT   = core.AuthMethodOAuth2JWT
)

var (
	NewConfigurationError  = core.NewConfigurationError
	NewAuthenticationError = core.NewAuthenticationError
	IsConfigurationError   = core.IsConfigurationError
	IsAuthenticationError  = core.IsAuthenticationError
	RunWithFlagErr         = core.RunWithFlagErr
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}
