package core

import (
	stderrors "errors"
	"testing"
)

func TestRunWithFlagRestoresOnReturn(t *testing.T) {
	flags := []Flag{FlagAccountManagement, FlagValidateOnly, FlagPartialFailure}
	for _, flag := range flags {
		for _, initial := range []bool{false, true} {
			for _, override := range []bool{false, true} {
				creds := NewCredentials(ClientConfig{})
				if err := creds.SetFlagValue(flag, initial); err != nil {
					t.Fatalf("seed flag: %v", err)
				}

				result, err := RunWithFlag(creds, flag, override, func() (bool, error) {
					value, err := creds.FlagValue(flag)
					if err != nil {
						return false, err
					}
					return value, nil
				})
				if err != nil {
					t.Fatalf("run with flag: %v", err)
				}
				if result != override {
					t.Fatalf("%s: expected override %t visible inside scope, got %t", flag, override, result)
				}

				restored, err := creds.FlagValue(flag)
				if err != nil {
					t.Fatalf("flag value: %v", err)
				}
				if restored != initial {
					t.Fatalf("%s: expected restore to %t, got %t", flag, initial, restored)
				}
			}
		}
	}
}

func TestRunWithFlagRestoresOnError(t *testing.T) {
	creds := NewCredentials(ClientConfig{})
	wantErr := stderrors.New("boom")

	_, err := RunWithFlag(creds, FlagValidateOnly, true, func() (struct{}, error) {
		return struct{}{}, wantErr
	})
	if !stderrors.Is(err, wantErr) {
		t.Fatalf("expected operation error to propagate, got %v", err)
	}
	if creds.ValidateOnly() {
		t.Fatalf("expected validate-only restored to false after failing operation")
	}
}

func TestRunWithFlagRestoresOnPanic(t *testing.T) {
	creds := NewCredentials(ClientConfig{})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_, _ = RunWithFlag(creds, FlagPartialFailure, true, func() (struct{}, error) {
			panic("mid-operation abort")
		})
	}()

	if creds.PartialFailure() {
		t.Fatalf("expected partial-failure restored to false after panic")
	}
}

func TestRunWithFlagNestsLIFO(t *testing.T) {
	creds := NewCredentials(ClientConfig{})

	err := RunWithFlagErr(creds, FlagValidateOnly, true, func() error {
		return RunWithFlagErr(creds, FlagValidateOnly, false, func() error {
			if creds.ValidateOnly() {
				t.Fatalf("expected inner scope value false")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested scopes: %v", err)
	}
	if creds.ValidateOnly() {
		t.Fatalf("expected original value false after both scopes unwound")
	}

	// The inner scope must restore to the enclosing override, not the
	// original value.
	err = RunWithFlagErr(creds, FlagValidateOnly, true, func() error {
		inner := RunWithFlagErr(creds, FlagValidateOnly, false, func() error { return nil })
		if inner != nil {
			return inner
		}
		if !creds.ValidateOnly() {
			t.Fatalf("expected enclosing override true after inner scope unwound")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("nested scopes: %v", err)
	}
}

func TestRunWithFlagValidatesInputs(t *testing.T) {
	creds := NewCredentials(ClientConfig{})

	if _, err := RunWithFlag[struct{}](nil, FlagValidateOnly, true, nil); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for nil credentials, got %v", err)
	}
	if err := RunWithFlagErr(creds, FlagValidateOnly, true, nil); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for nil operation, got %v", err)
	}
	if err := RunWithFlagErr(creds, Flag("bogus"), true, func() error { return nil }); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for unknown flag, got %v", err)
	}
}
