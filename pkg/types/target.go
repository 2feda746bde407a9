// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Outcome is the terminal status of one fetch target.
type Outcome string

const (
	OutcomeDownloaded     Outcome = "downloaded"
	OutcomeAlreadyPresent Outcome = "already-present"
	OutcomeNoEntitlement  Outcome = "skipped-no-entitlement"
	OutcomeQuotaExhausted Outcome = "skipped-quota-exhausted"
	OutcomePermanent      Outcome = "failed-permanent"
	OutcomeTransient      Outcome = "failed-transient"
)

// ErrorKind classifies why a target failed. Empty for successful outcomes.
type ErrorKind string

const (
	ErrKindNone          ErrorKind = ""
	ErrKindNoEntitlement ErrorKind = "no-entitlement"
	ErrKindNotFound      ErrorKind = "not-found"
	ErrKindTransient     ErrorKind = "transient"
	ErrKindExtraction    ErrorKind = "extraction"
)

// FetchTarget identifies one candidate document: a DOI discovered for a
// BioProject, routed to the publisher implied by its registrant prefix or
// an explicit annotation in the descriptor.
type FetchTarget struct {
	// BioProject is the NCBI project identifier grouping the literature.
	BioProject string `json:"bioproject" yaml:"bioproject"`

	// DOI is the article's Digital Object Identifier.
	DOI string `json:"doi" yaml:"doi"`

	// Source is the publisher API the DOI resolves to.
	Source Source `json:"source" yaml:"source"`
}

// FetchResult records the terminal state of one target. The PDF and text
// files on disk are the durable record; FetchResult exists for status
// reporting within a run.
type FetchResult struct {
	Target  FetchTarget `json:"target" yaml:"target"`
	Outcome Outcome     `json:"outcome" yaml:"outcome"`

	// PDFPath is set when a PDF was written (or already present). It stays
	// set on extraction failure: the PDF has value without the text.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// TextPath is set when extraction succeeded.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`

	// ErrKind is set for failed or skipped outcomes.
	ErrKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	// Err holds the underlying error for logging. Not serialized.
	Err error `json:"-" yaml:"-"`
}

// Failed reports whether the outcome is a failure or skip that should
// appear in the failed-DOI report.
func (r FetchResult) Failed() bool {
	switch r.Outcome {
	case OutcomeDownloaded, OutcomeAlreadyPresent:
		return false
	}
	return true
}
