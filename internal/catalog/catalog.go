// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog enumerates fetch targets from a directory of
// per-BioProject JSON descriptors produced by the upstream scholar-search
// step. Each file is named after its BioProject ID ("PRJNA813222.json" or
// "PRJNA813222_articles.json") and lists candidate DOIs.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/litfetch/internal/source"
	"github.com/pdiddy/litfetch/pkg/types"
)

// descriptor is the on-disk shape of one BioProject file.
type descriptor struct {
	Articles []article `json:"articles"`
}

type article struct {
	DOI string `json:"doi"`

	// Source is an optional explicit publisher annotation. When absent
	// the publisher is inferred from the DOI registrant prefix.
	Source string `json:"source,omitempty"`
}

// Enumerate reads every descriptor in dir and returns one FetchTarget per
// usable DOI. An unreadable directory is a ConfigError; a malformed
// descriptor, an invalid DOI, or a DOI outside the three supported
// publishers is warned and skipped, since one bad file must not block the
// rest of the batch. Enumeration order is directory listing order.
func Enumerate(dir string) ([]types.FetchTarget, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &types.ConfigError{Path: dir, Msg: "reading input directory", Err: err}
	}

	var targets []types.FetchTarget
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read descriptor %s: %v\n", name, err)
			continue
		}

		var desc descriptor
		if err := json.Unmarshal(data, &desc); err != nil {
			fmt.Fprintf(os.Stderr, "warning: malformed descriptor %s: %v\n", name, err)
			continue
		}
		if len(desc.Articles) == 0 {
			continue
		}

		bioproject := projectID(name)
		for _, a := range desc.Articles {
			doi := strings.TrimSpace(a.DOI)
			if doi == "" {
				continue
			}
			if !source.ValidDOI(doi) {
				fmt.Fprintf(os.Stderr, "warning: %s: skipping invalid DOI %q\n", bioproject, doi)
				continue
			}

			src := types.Source(a.Source)
			if !src.Known() {
				src = source.Infer(doi)
			}
			if !src.Known() {
				fmt.Fprintf(os.Stderr, "warning: %s: no supported publisher for DOI %s\n", bioproject, doi)
				continue
			}

			targets = append(targets, types.FetchTarget{
				BioProject: bioproject,
				DOI:        doi,
				Source:     src,
			})
		}
	}
	return targets, nil
}

// Sources returns the distinct sources appearing in targets, in the
// stable types.Sources order. Used to validate credentials before any
// target is processed.
func Sources(targets []types.FetchTarget) []types.Source {
	seen := make(map[types.Source]bool, len(targets))
	for _, t := range targets {
		seen[t.Source] = true
	}
	var out []types.Source
	for _, s := range types.Sources {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// projectID derives the BioProject ID from a descriptor filename.
func projectID(filename string) string {
	id := strings.TrimSuffix(filename, ".json")
	return strings.TrimSuffix(id, "_articles")
}
