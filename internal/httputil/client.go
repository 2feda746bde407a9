// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/litfetch/pkg/types"
)

// DefaultTimeout bounds every publisher request. A hung call must be cut
// off by the client; the transport's defaults would let it stall
// indefinitely.
const DefaultTimeout = 30 * time.Second

// NewClient builds the shared HTTP client from cfg, applying
// DefaultTimeout when none is configured.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// UserAgent returns the caller-identifying User-Agent string. The
// publishers' terms of use ask for a contact address with text-mining
// requests; it rides along here rather than in auth.
func UserAgent(email string) string {
	return fmt.Sprintf("litfetch/0.1 (mailto:%s)", email)
}
