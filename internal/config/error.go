package config

import (
	"sort"
	"strings"
)

// ConfigError reports everything wrong with a config file at once:
// unresolved ${VAR} references and failed validation rules.
type ConfigError struct {
	Path    string
	Missing []string // environment variables, sorted and unique
	Errors  []string // "section.key: problem"
}

func newConfigError(path string, missing, errs []string) *ConfigError {
	seen := make(map[string]bool, len(missing))
	var uniq []string
	for _, m := range missing {
		if !seen[m] {
			seen[m] = true
			uniq = append(uniq, m)
		}
	}
	sort.Strings(uniq)
	return &ConfigError{Path: path, Missing: uniq, Errors: errs}
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		b.WriteString("invalid config " + e.Path + ":\n")
	}
	if len(e.Missing) > 0 {
		b.WriteString("missing environment variables: " + strings.Join(e.Missing, ", ") + "\n")
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			b.WriteString("  - " + msg + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
