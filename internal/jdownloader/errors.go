package jdownloader

import "errors"

// Sentinel errors for the jdownloader package.
var (
	// ErrUnavailable is returned when the JDownloader API cannot be reached
	// or answers with a non-200 status.
	ErrUnavailable = errors.New("jdownloader unavailable")

	// ErrNotConfigured is returned when no API host is set.
	ErrNotConfigured = errors.New("jdownloader api not configured")
)
