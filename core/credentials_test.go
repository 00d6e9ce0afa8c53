package core

import "testing"

func TestCredentialsDefaults(t *testing.T) {
	creds := NewCredentials(ClientConfig{
		DeveloperToken:   "dev-token",
		ClientCustomerID: "123-456-7890",
		UserAgent:        "test-agent",
	})

	if creds.DeveloperToken() != "dev-token" {
		t.Fatalf("expected developer token, got %q", creds.DeveloperToken())
	}
	if creds.ClientCustomerID() != "123-456-7890" {
		t.Fatalf("expected customer id, got %q", creds.ClientCustomerID())
	}
	if creds.UseMCC() || creds.ValidateOnly() || creds.PartialFailure() {
		t.Fatalf("expected all session flags to default to false")
	}
}

func TestCredentialsFlagAccess(t *testing.T) {
	tests := []struct {
		name string
		flag Flag
		set  func(*Credentials, bool)
		get  func(*Credentials) bool
	}{
		{
			name: "account_management",
			flag: FlagAccountManagement,
			set:  (*Credentials).SetUseMCC,
			get:  (*Credentials).UseMCC,
		},
		{
			name: "validate_only",
			flag: FlagValidateOnly,
			set:  (*Credentials).SetValidateOnly,
			get:  (*Credentials).ValidateOnly,
		},
		{
			name: "partial_failure",
			flag: FlagPartialFailure,
			set:  (*Credentials).SetPartialFailure,
			get:  (*Credentials).PartialFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			creds := NewCredentials(ClientConfig{})

			value, err := creds.FlagValue(tc.flag)
			if err != nil {
				t.Fatalf("flag value: %v", err)
			}
			if value {
				t.Fatalf("expected %s to default to false", tc.flag)
			}

			tc.set(creds, true)
			if !tc.get(creds) {
				t.Fatalf("expected setter to flip %s", tc.flag)
			}
			value, err = creds.FlagValue(tc.flag)
			if err != nil {
				t.Fatalf("flag value: %v", err)
			}
			if !value {
				t.Fatalf("expected FlagValue to track setter for %s", tc.flag)
			}

			if err := creds.SetFlagValue(tc.flag, false); err != nil {
				t.Fatalf("set flag value: %v", err)
			}
			if tc.get(creds) {
				t.Fatalf("expected SetFlagValue to clear %s", tc.flag)
			}
		})
	}
}

func TestCredentialsUnknownFlag(t *testing.T) {
	creds := NewCredentials(ClientConfig{})

	if _, err := creds.FlagValue(Flag("bogus")); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for unknown flag read, got %v", err)
	}
	if err := creds.SetFlagValue(Flag("bogus"), true); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for unknown flag write, got %v", err)
	}
}
