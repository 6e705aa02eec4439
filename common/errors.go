package common

import (
	"errors"
)

// Common error constants
var (
	// ErrInvalidConfig is returned when an invalid configuration is provided
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidSeed is returned when a seed URL cannot be parsed into a host
	ErrInvalidSeed = errors.New("invalid seed URL")
)
