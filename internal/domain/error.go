package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrBanned             = errors.New("user is banned")
	ErrProfileIncomplete  = errors.New("profile is incomplete")
	ErrSelfLike           = errors.New("users cannot like themselves")
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrInvalidExecContext = errors.New("invalid executor context passed to repository")
)
