package core

import "fmt"

// Flag identifies one of the credential store's session flags.
type Flag string

const (
	// FlagAccountManagement runs operations at the manager-account level
	// instead of a single managed account.
	FlagAccountManagement Flag = "account_management"
	// FlagValidateOnly checks requests for correctness without committing.
	FlagValidateOnly Flag = "validate_only"
	// FlagPartialFailure reports per-item failures in batched requests
	// rather than failing the whole batch.
	FlagPartialFailure Flag = "partial_failure"
)

// Credentials holds the long-lived identity stamped into request headers
// plus the three mutable session flags. One instance per API facade. Plain
// shared state: a facade shared across goroutines needs external
// serialization around flag writes, the save/set/restore sequence in
// RunWithFlag is not atomic with respect to concurrent writers.
type Credentials struct {
	developerToken   string
	clientCustomerID string
	accountID        string
	userAgent        string

	useMCC         bool
	validateOnly   bool
	partialFailure bool
}

func NewCredentials(cfg ClientConfig) *Credentials {
	return &Credentials{
		developerToken:   cfg.DeveloperToken,
		clientCustomerID: cfg.ClientCustomerID,
		accountID:        cfg.AccountID,
		userAgent:        cfg.UserAgent,
	}
}

func (c *Credentials) DeveloperToken() string { return c.developerToken }

func (c *Credentials) SetDeveloperToken(token string) { c.developerToken = token }

func (c *Credentials) ClientCustomerID() string { return c.clientCustomerID }

func (c *Credentials) SetClientCustomerID(id string) { c.clientCustomerID = id }

func (c *Credentials) AccountID() string { return c.accountID }

func (c *Credentials) SetAccountID(id string) { c.accountID = id }

func (c *Credentials) UserAgent() string { return c.userAgent }

func (c *Credentials) SetUserAgent(agent string) { c.userAgent = agent }

func (c *Credentials) UseMCC() bool { return c.useMCC }

func (c *Credentials) SetUseMCC(value bool) { c.useMCC = value }

func (c *Credentials) ValidateOnly() bool { return c.validateOnly }

func (c *Credentials) SetValidateOnly(value bool) { c.validateOnly = value }

func (c *Credentials) PartialFailure() bool { return c.partialFailure }

func (c *Credentials) SetPartialFailure(value bool) { c.partialFailure = value }

// FlagValue reads the current value of a session flag. While a scoped
// override is active the overridden value is returned; an override is
// indistinguishable from a permanent set for as long as it lasts.
func (c *Credentials) FlagValue(flag Flag) (bool, error) {
	switch flag {
	case FlagAccountManagement:
		return c.useMCC, nil
	case FlagValidateOnly:
		return c.validateOnly, nil
	case FlagPartialFailure:
		return c.partialFailure, nil
	default:
		return false, NewConfigurationError(fmt.Sprintf("core: unknown session flag %q", flag))
	}
}

func (c *Credentials) SetFlagValue(flag Flag, value bool) error {
	switch flag {
	case FlagAccountManagement:
		c.useMCC = value
	case FlagValidateOnly:
		c.validateOnly = value
	case FlagPartialFailure:
		c.partialFailure = value
	default:
		return NewConfigurationError(fmt.Sprintf("core: unknown session flag %q", flag))
	}
	return nil
}
