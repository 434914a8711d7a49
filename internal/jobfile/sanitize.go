// internal/jobfile/sanitize.go
package jobfile

import (
	"path"
	"regexp"
	"strings"
)

// illegalRuns matches runs of characters JDownloader refuses in folder names.
var illegalRuns = regexp.MustCompile(`[<>:"/\\|?*]+`)

// SanitizeTitle removes characters that are unsafe for folder names,
// strips a single trailing dot and trims surrounding whitespace.
func SanitizeTitle(title string) string {
	title = illegalRuns.ReplaceAllString(title, "")
	title = strings.TrimSuffix(title, ".")
	return strings.TrimSpace(title)
}

// validateFolder ensures folder stays within base. Both are slash paths
// because the download manager may live on another host or container.
func validateFolder(folder, base string) error {
	cleanFolder := path.Clean(folder)
	cleanBase := path.Clean(base)

	if cleanFolder == cleanBase {
		return ErrPathTraversal
	}
	prefix := cleanBase
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(cleanFolder, prefix) {
		return ErrPathTraversal
	}
	return nil
}
