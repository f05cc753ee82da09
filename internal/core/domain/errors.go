package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Case errors
var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrCaseAlreadyAssigned = errors.New("case already assigned")
	ErrInvalidCaseStatus   = errors.New("invalid case status transition")
	ErrNotParticipant      = errors.New("not a participant of this case")
)

// Counsel upstream errors
var (
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrUpstreamTimeout     = errors.New("upstream service timed out")
)
