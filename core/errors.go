package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// ErrorCodeConfiguration marks errors caused by invalid or incomplete
	// client configuration: unknown authentication methods, deprecated
	// methods with no live path, missing credential fields, mismatched
	// header-builder/strategy pairings. Fatal to the current operation,
	// never retried by this library.
	ErrorCodeConfiguration = "ADWORDS_CONFIGURATION_ERROR"

	// ErrorCodeAuthentication marks failures to produce or refresh auth
	// material (expired, revoked, network failure during refresh). Retry
	// policy belongs to the caller.
	ErrorCodeAuthentication = "ADWORDS_AUTHENTICATION_ERROR"
)

func NewConfigurationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorCodeConfiguration)
}

func NewAuthenticationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorCodeAuthentication)
}

func WrapConfiguration(err error, message string) *goerrors.Error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorCodeConfiguration)
}

func WrapAuthentication(err error, message string) *goerrors.Error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, message).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorCodeAuthentication)
}

func IsConfigurationError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == ErrorCodeConfiguration
}

func IsAuthenticationError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == ErrorCodeAuthentication
}

func apiErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureAPIErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "token"), strings.Contains(msg, "unauthorized"), strings.Contains(msg, "credential"):
		return ensureAPIErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryAuth).
				WithTextCode(ErrorCodeAuthentication),
		)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "unknown"):
		return ensureAPIErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryValidation).
				WithTextCode(ErrorCodeConfiguration),
		)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAPIErrorEnvelope(mapped)
}

func ensureAPIErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = apiHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAPITextCode(err.Category)
	}
	return err
}

func defaultAPITextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorCodeAuthentication
	default:
		return ErrorCodeConfiguration
	}
}

func apiHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
