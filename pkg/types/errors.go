// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigError is the only error class that halts a run before targets are
// processed: a missing or malformed credentials file, a missing required
// key, or an unreadable input directory. Everything else is handled at the
// per-target boundary.
type ConfigError struct {
	// Path is the file or directory the error refers to, when known.
	Path string

	// Msg describes the problem.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	s := "config: " + e.Msg
	if e.Path != "" {
		s = fmt.Sprintf("config: %s: %s", e.Path, e.Msg)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError for path with a formatted message.
func NewConfigError(path, format string, args ...any) *ConfigError {
	return &ConfigError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
