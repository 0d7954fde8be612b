package service

import "errors"

// Service-level failures mapped to HTTP statuses by the controllers.
var (
	// ErrNotFound: the resource or token does not exist in the caller's scope
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden: the resource exists but belongs to a different user
	ErrForbidden = errors.New("not the resource owner")
	// ErrConflict: a unique field (email, category name) is already taken
	ErrConflict = errors.New("duplicate resource")
	// ErrExpired: the reset token is past its validity window
	ErrExpired = errors.New("token expired")
	// ErrValidation: the input is structurally valid but semantically wrong
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials: email/password pair does not match
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified: the account exists but has not completed verification
	ErrEmailNotVerified = errors.New("email not verified")
)
