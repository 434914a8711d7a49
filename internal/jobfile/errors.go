// internal/jobfile/errors.go
package jobfile

import "errors"

var (
	// ErrMissingLink indicates a request without a link to hand off.
	ErrMissingLink = errors.New("missing link")

	// ErrPathTraversal indicates the download folder would escape its base folder.
	ErrPathTraversal = errors.New("path traversal detected")
)
