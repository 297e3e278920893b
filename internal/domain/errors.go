package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")

	// ErrInvalidProposal means the reasoning engine answered but the response
	// was missing one of the required numeric fields. Nothing is persisted.
	ErrInvalidProposal = errors.New("invalid target proposal")

	// ErrRecalculationFailed wraps transport and engine failures on the
	// recalculation path. The previous targets stay untouched.
	ErrRecalculationFailed = errors.New("recalculation failed")
)
