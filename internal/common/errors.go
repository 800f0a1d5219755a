// Package common defines shared sentinel errors used across the
// todokeeper core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration validation errors. The order they are checked in is
	// fixed: username uniqueness, email uniqueness, username validity,
	// email validity, password length.
	ErrorUsernameExists   = errors.New("username already exists")
	ErrorEmailExists      = errors.New("email already exists")
	ErrorEmptyUsername    = errors.New("username cannot be empty")
	ErrorInvalidEmail     = errors.New("invalid email address")
	ErrorPasswordTooShort = errors.New("password must be at least 6 characters long")

	// Task validation errors.
	ErrorEmptyTitle = errors.New("title cannot be empty")

	// Authentication errors. ErrorInvalidCredentials is returned for both
	// an unknown username and a wrong password so the two cases cannot be
	// told apart.
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorNotAuthenticated   = errors.New("not authenticated")
	ErrorSessionExpired     = errors.New("session expired")

	// Integrity errors.
	ErrorSessionUserMissing = errors.New("session references an unknown user")
)
