package domain

import "errors"

var (
	ErrInvalidConfig         = errors.New("invalid classification config")
	ErrInvalidExtension      = errors.New("invalid file extension")
	ErrOverlappingExtensions = errors.New("extension in both download and pageview groups")
	// ErrExtensionMismatch means extraction ran on a file name the
	// classifier did not match. Reaching it is a bug.
	ErrExtensionMismatch = errors.New("file name has no recognized extension")
)
