package errors

import (
	"errors"
	"fmt"
)

// Common error types for the schoolctl client
var (
	// Session errors
	ErrTokenExpired   = errors.New("access token expired")
	ErrSessionExpired = errors.New("session expired")
	ErrNoCredentials  = errors.New("no stored credentials")
	ErrNoRefreshToken = errors.New("no refresh token")

	// Credential store errors
	ErrKeystoreLocked    = errors.New("keystore locked")
	ErrKeystoreCorrupted = errors.New("keystore corrupted")

	// Request errors
	ErrConnectivity = errors.New("cannot reach the server")
	ErrNotFound     = errors.New("not found")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
