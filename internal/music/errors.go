// internal/music/errors.go
package music

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingURL indicates an empty submission.
	ErrMissingURL = errors.New("missing URL")

	// ErrUnsupportedURL indicates a URL that is neither Spotify nor YouTube.
	ErrUnsupportedURL = errors.New("unsupported URL (Spotify or YouTube only)")

	// ErrBusy indicates a download is already in progress.
	ErrBusy = errors.New("a music download is already in progress")
)

// ExitError reports a downloader that ran but exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("spotdl error (code %d)", e.Code)
}

// LaunchError reports a downloader that could not be started or did not
// exit normally.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch spotdl: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
