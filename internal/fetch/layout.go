// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"os"
	"path/filepath"

	"github.com/pdiddy/litfetch/internal/source"
	"github.com/pdiddy/litfetch/pkg/types"
)

// Layout maps fetch targets to their output paths under a root directory:
// <root>/<bioproject>/<encoded-doi>.pdf and .txt.
type Layout struct {
	Root string
}

// Dir returns the per-BioProject output directory for t.
func (l Layout) Dir(t types.FetchTarget) string {
	return filepath.Join(l.Root, t.BioProject)
}

// PDFPath returns the PDF output path for t.
func (l Layout) PDFPath(t types.FetchTarget) string {
	return filepath.Join(l.Dir(t), source.EncodeDOI(t.DOI)+".pdf")
}

// TextPath returns the extracted-text output path for t.
func (l Layout) TextPath(t types.FetchTarget) string {
	return filepath.Join(l.Dir(t), source.EncodeDOI(t.DOI)+".txt")
}

// Satisfied reports whether both output files for t already exist, which
// makes re-runs idempotent: satisfied targets cost no network call.
func (l Layout) Satisfied(t types.FetchTarget) bool {
	if _, err := os.Stat(l.PDFPath(t)); err != nil {
		return false
	}
	if _, err := os.Stat(l.TextPath(t)); err != nil {
		return false
	}
	return true
}
