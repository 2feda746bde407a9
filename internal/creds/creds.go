// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package creds loads publisher API credentials from the api-keys JSON file
// and the Wiley token environment variable.
//
// The api-keys file maps source names to opaque key strings:
//
//	{"springer-nature": "<key>", "wiley": "<unused>", "elsevier": "<key>"}
//
// Wiley is the odd one out: its effective token comes from the WILEY_TOKEN
// environment variable, resolved once at load time. The file entry for
// wiley is ignored, so a stale or placeholder value there is harmless.
package creds

import (
	"encoding/json"
	"os"

	"github.com/pdiddy/litfetch/pkg/types"
)

// EnvWileyToken is the environment variable holding the Wiley TDM token.
const EnvWileyToken = "WILEY_TOKEN"

// Store holds one credential per source. Construct with Load.
type Store struct {
	keys map[types.Source]string
}

// Load reads the api-keys JSON file at path and resolves the Wiley token
// from the environment into the same store. A missing or malformed file is
// a ConfigError; a missing Wiley token is not, so the other two sources
// stay fetchable.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ConfigError{Path: path, Msg: "reading api keys file", Err: err}
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &types.ConfigError{Path: path, Msg: "parsing api keys file", Err: err}
	}

	keys := make(map[types.Source]string)
	for name, value := range raw {
		s := types.Source(name)
		if s.Known() && value != "" {
			keys[s] = value
		}
	}

	// The Wiley token only ever comes from the environment.
	delete(keys, types.SourceWiley)
	if token := os.Getenv(EnvWileyToken); token != "" {
		keys[types.SourceWiley] = token
	}

	return &Store{keys: keys}, nil
}

// Get returns the credential for source and whether one is configured.
func (s *Store) Get(source types.Source) (string, bool) {
	v, ok := s.keys[source]
	return v, ok
}

// Validate checks that every file-backed source in needed has a key,
// returning a ConfigError naming the first missing one. Wiley is exempt:
// a missing token degrades its targets to skipped-no-entitlement instead
// of aborting the run.
func (s *Store) Validate(needed []types.Source) error {
	for _, src := range needed {
		if src == types.SourceWiley {
			continue
		}
		if _, ok := s.keys[src]; !ok {
			return types.NewConfigError("", "missing api key for source %q", src)
		}
	}
	return nil
}
