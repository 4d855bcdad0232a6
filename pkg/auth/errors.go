package auth

import (
	"errors"
	"net/http"
)

// Error messages match the JSON error bodies returned on the wire.
var (
	ErrMissingCredentials   = errors.New("Username and password required")
	ErrAuthDisabled         = errors.New("Authentication is not enabled")
	ErrRegistrationDisabled = errors.New("Public registration is not allowed")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrUserExists           = errors.New("Username already exists")
	ErrUserNotFound         = errors.New("User not found")
	ErrAuthRequired         = errors.New("Authentication required")
	ErrInvalidAPIKey        = errors.New("Invalid API key")
	ErrTokenRequired        = errors.New("Token required")
	ErrSecretNotConfigured  = errors.New("JWT not configured")
	ErrInvalidToken         = errors.New("Invalid token")
	ErrInvalidType          = errors.New("type must be one of jwt, basic, apiKey, bearer")
)

// HTTPStatus maps an auth error to its response status code.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrInvalidType):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthDisabled), errors.Is(err, ErrRegistrationDisabled):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAuthRequired),
		errors.Is(err, ErrInvalidAPIKey), errors.Is(err, ErrTokenRequired),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var clientErrors = []error{
	ErrMissingCredentials, ErrAuthDisabled, ErrRegistrationDisabled,
	ErrInvalidCredentials, ErrUserExists, ErrUserNotFound, ErrAuthRequired,
	ErrInvalidAPIKey, ErrTokenRequired, ErrSecretNotConfigured,
	ErrInvalidToken, ErrInvalidType,
}

// ClientMessage returns the wire message of the first sentinel wrapped by
// err. It reports false for errors whose detail must not reach the caller.
func ClientMessage(err error) (string, bool) {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}
	return "", false
}
