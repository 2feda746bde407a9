// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/litfetch/pkg/types"
)

// Kind is the publisher-agnostic failure taxonomy every adapter normalizes
// into, so the engine's retry and skip logic never inspects publisher
// status codes.
type Kind int

const (
	// KindTransient covers 429, 5xx, network errors, and any response
	// shape the adapter does not recognize. Retried once.
	KindTransient Kind = iota

	// KindNoEntitlement covers auth rejections and 2xx responses whose
	// body is not a PDF. Permanent, never retried.
	KindNoEntitlement

	// KindNotFound covers DOIs the source cannot resolve. Permanent.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNoEntitlement:
		return "no-entitlement"
	case KindNotFound:
		return "not-found"
	default:
		return "transient"
	}
}

// ErrorKind maps k to the shared result taxonomy.
func (k Kind) ErrorKind() types.ErrorKind {
	switch k {
	case KindNoEntitlement:
		return types.ErrKindNoEntitlement
	case KindNotFound:
		return types.ErrKindNotFound
	default:
		return types.ErrKindTransient
	}
}

// FetchError is a classified fetch failure from one source.
type FetchError struct {
	Source types.Source
	DOI    string
	Kind   Kind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s for %s (HTTP %d)", e.Source, e.Kind, e.DOI, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s for %s: %v", e.Source, e.Kind, e.DOI, e.Err)
	}
	return fmt.Sprintf("%s: %s for %s", e.Source, e.Kind, e.DOI)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Adapter performs the source-specific full-text request for one
// publisher. Implementations return the raw PDF bytes on success or a
// *FetchError classified into the shared taxonomy.
type Adapter interface {
	// Source identifies the publisher this adapter serves.
	Source() types.Source

	// Fetch retrieves the full-text PDF for doi using credential.
	Fetch(ctx context.Context, client *http.Client, cfg types.HTTPConfig, doi, credential string) ([]byte, error)
}

// ForSource returns the adapter for s.
func ForSource(s types.Source) (Adapter, bool) {
	switch s {
	case types.SourceSpringerNature:
		return springerAdapter{}, true
	case types.SourceWiley:
		return wileyAdapter{}, true
	case types.SourceElsevier:
		return elsevierAdapter{}, true
	}
	return nil, false
}

// classifyStatus folds a publisher HTTP status into the shared taxonomy.
func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindNoEntitlement
	case code == http.StatusNotFound:
		return KindNotFound
	default:
		// 429, 5xx, and anything unrecognized: worth one retry.
		return KindTransient
	}
}

// pdfMagic is the header every well-formed PDF stream starts with.
var pdfMagic = []byte("%PDF")

// doRequest executes req and returns the response body when it is a PDF.
// A 2xx response whose body is not a PDF is an entitlement denial dressed
// up as success (the open-access endpoints answer 200 with an empty or
// HTML body when the caller lacks access).
func doRequest(client *http.Client, req *http.Request, src types.Source, doi string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: src, DOI: doi, Kind: KindTransient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Source: src, DOI: doi, Kind: classifyStatus(resp.StatusCode), Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: src, DOI: doi, Kind: KindTransient, Err: err}
	}
	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, &FetchError{Source: src, DOI: doi, Kind: KindNoEntitlement, Status: resp.StatusCode}
	}
	return body, nil
}
