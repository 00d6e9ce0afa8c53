package core

// RunWithFlag executes op with one session flag temporarily forced to
// value, restoring the prior value on the way out. The restore runs in a
// deferred block, so it fires whether op returns normally, returns an
// error, or panics. Scopes on the same flag nest LIFO: an inner scope
// restores to the immediately enclosing value, not the original default.
//
// op runs synchronously on the caller's goroutine; no concurrency is
// introduced here.
func RunWithFlag[T any](creds *Credentials, flag Flag, value bool, op func() (T, error)) (T, error) {
	var zero T
	if creds == nil {
		return zero, NewConfigurationError("core: credentials are required")
	}
	if op == nil {
		return zero, NewConfigurationError("core: operation is required")
	}

	previous, err := creds.FlagValue(flag)
	if err != nil {
		return zero, err
	}
	if err := creds.SetFlagValue(flag, value); err != nil {
		return zero, err
	}
	defer func() {
		_ = creds.SetFlagValue(flag, previous)
	}()

	return op()
}

// RunWithFlagErr is RunWithFlag for operations that produce no result.
func RunWithFlagErr(creds *Credentials, flag Flag, value bool, op func() error) error {
	if op == nil {
		return NewConfigurationError("core: operation is required")
	}
	_, err := RunWithFlag(creds, flag, value, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
