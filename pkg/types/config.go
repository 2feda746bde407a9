// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network
// requests. Timeout must be non-zero: a hung publisher call is otherwise
// bounded only by the transport defaults.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. It
	// carries the caller email per the publishers' terms of use
	// (e.g. "litfetch/0.1 (mailto:user@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch engine.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the root under which per-BioProject PDF and text
	// files are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Attempts is the number of fetch attempts per target for transient
	// failures (default 2: one initial call plus one retry).
	Attempts int `json:"attempts" yaml:"attempts"`

	// RetryBackoff is the fixed delay before the retry attempt
	// (default 2s; seconds, not the hours-scale waits of the outer
	// orchestration).
	RetryBackoff time.Duration `json:"retry_backoff" yaml:"retry_backoff"`
}

// QuotaConfig holds settings for per-source request accounting.
type QuotaConfig struct {
	// Ceiling is the maximum number of requests per source per day
	// (default 450). Exceeding the publishers' daily quotas risks key
	// suspension.
	Ceiling int `json:"ceiling" yaml:"ceiling"`

	// RequestsPerSecond paces outgoing requests across all sources
	// (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// StateFile is the day-keyed counter file that carries quota counts
	// across short runs. Empty disables persistence.
	StateFile string `json:"state_file,omitempty" yaml:"state_file,omitempty"`
}
