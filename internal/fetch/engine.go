// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch implements the sequential fetch engine: for each target it
// checks the disk, the quota, and the source adapter in turn, then hands
// successful downloads to the text extractor and persists both artifacts.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/litfetch/internal/creds"
	"github.com/pdiddy/litfetch/internal/extract"
	"github.com/pdiddy/litfetch/internal/quota"
	"github.com/pdiddy/litfetch/internal/source"
	"github.com/pdiddy/litfetch/pkg/types"
)

const (
	// DefaultAttempts is one initial request plus one retry.
	DefaultAttempts = 2

	// DefaultBackoff is the fixed delay before the retry attempt.
	DefaultBackoff = 2 * time.Second
)

// Engine processes fetch targets strictly sequentially. Per-target errors
// never escape Run: a single bad DOI must not abort a multi-hundred-target
// batch.
type Engine struct {
	Client    *http.Client
	HTTP      types.HTTPConfig
	Creds     *creds.Store
	Quota     *quota.Limiter
	Layout    Layout
	Extractor extract.Extractor

	// ForSource resolves the adapter for a source. Tests substitute
	// stubs; production uses source.ForSource.
	ForSource func(types.Source) (source.Adapter, bool)

	// Attempts bounds fetch attempts per target for transient failures.
	Attempts int

	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
}

// New builds an Engine from its collaborators, filling defaults from cfg.
func New(client *http.Client, store *creds.Store, limiter *quota.Limiter, cfg types.FetchConfig) *Engine {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Engine{
		Client:    client,
		HTTP:      cfg.HTTPConfig,
		Creds:     store,
		Quota:     limiter,
		Layout:    Layout{Root: cfg.OutputDir},
		Extractor: extract.PDF{},
		ForSource: source.ForSource,
		Attempts:  attempts,
		Backoff:   backoff,
	}
}

// Summary counts terminal outcomes across a run.
type Summary struct {
	Downloaded     int
	AlreadyPresent int
	NoEntitlement  int
	QuotaExhausted int
	Permanent      int
	Transient      int
}

// Add counts one outcome.
func (s *Summary) Add(o types.Outcome) {
	switch o {
	case types.OutcomeDownloaded:
		s.Downloaded++
	case types.OutcomeAlreadyPresent:
		s.AlreadyPresent++
	case types.OutcomeNoEntitlement:
		s.NoEntitlement++
	case types.OutcomeQuotaExhausted:
		s.QuotaExhausted++
	case types.OutcomeTransient:
		s.Transient++
	default:
		s.Permanent++
	}
}

// Total returns the number of targets processed.
func (s Summary) Total() int {
	return s.Downloaded + s.AlreadyPresent + s.NoEntitlement + s.QuotaExhausted + s.Permanent + s.Transient
}

// Run processes every target in order, printing a per-target status line
// and a final per-outcome summary to w. It stops early only when ctx is
// cancelled.
func (e *Engine) Run(ctx context.Context, targets []types.FetchTarget, w io.Writer) ([]types.FetchResult, Summary) {
	var (
		results []types.FetchResult
		summary Summary
	)
	for _, t := range targets {
		if ctx.Err() != nil {
			break
		}
		res := e.Process(ctx, t)
		results = append(results, res)
		summary.Add(res.Outcome)
		printStatus(w, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d already present, %d no entitlement, %d quota exhausted, %d failed (total: %d)\n",
		summary.Downloaded, summary.AlreadyPresent, summary.NoEntitlement,
		summary.QuotaExhausted, summary.Permanent+summary.Transient, summary.Total())
	return results, summary
}

// Process resolves one target through the state machine:
// pending -> rate-checked -> requested -> terminal outcome.
func (e *Engine) Process(ctx context.Context, t types.FetchTarget) types.FetchResult {
	res := types.FetchResult{Target: t}

	// Idempotent re-run: both artifacts already on disk.
	if e.Layout.Satisfied(t) {
		res.Outcome = types.OutcomeAlreadyPresent
		res.PDFPath = e.Layout.PDFPath(t)
		res.TextPath = e.Layout.TextPath(t)
		return res
	}

	// A source without a credential (Wiley with WILEY_TOKEN unset) is
	// unentitled by definition; no network call is made.
	cred, ok := e.Creds.Get(t.Source)
	if !ok {
		res.Outcome = types.OutcomeNoEntitlement
		res.ErrKind = types.ErrKindNoEntitlement
		res.Err = fmt.Errorf("no credential configured for %s", t.Source)
		return res
	}

	adapter, ok := e.ForSource(t.Source)
	if !ok {
		res.Outcome = types.OutcomePermanent
		res.Err = fmt.Errorf("no adapter for source %q", t.Source)
		return res
	}

	body, fres := e.fetchWithRetry(ctx, adapter, t, cred)
	if body == nil {
		return fres
	}
	return e.persist(t, body)
}

// fetchWithRetry issues up to e.Attempts requests for t, re-checking the
// quota immediately before each one. Only transient failures earn a
// retry; entitlement and not-found outcomes are permanent after a single
// call.
func (e *Engine) fetchWithRetry(ctx context.Context, adapter source.Adapter, t types.FetchTarget, cred string) ([]byte, types.FetchResult) {
	res := types.FetchResult{Target: t}

	for attempt := 0; attempt < e.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				res.Outcome = types.OutcomeTransient
				res.ErrKind = types.ErrKindTransient
				res.Err = ctx.Err()
				return nil, res
			case <-time.After(e.Backoff):
			}
		}

		if err := e.Quota.Wait(ctx); err != nil {
			res.Outcome = types.OutcomeTransient
			res.ErrKind = types.ErrKindTransient
			res.Err = err
			return nil, res
		}
		if !e.Quota.Authorize(t.Source) {
			res.Outcome = types.OutcomeQuotaExhausted
			res.Err = fmt.Errorf("quota ceiling reached for %s", t.Source)
			return nil, res
		}

		body, err := adapter.Fetch(ctx, e.Client, e.HTTP, t.DOI, cred)
		if err == nil {
			return body, res
		}

		var fe *source.FetchError
		if !errors.As(err, &fe) || fe.Kind == source.KindTransient {
			// Transient: worth another attempt if any remain.
			res.ErrKind = types.ErrKindTransient
			res.Err = err
			continue
		}

		res.Outcome = types.OutcomeNoEntitlement
		if fe.Kind == source.KindNotFound {
			res.Outcome = types.OutcomePermanent
		}
		res.ErrKind = fe.Kind.ErrorKind()
		res.Err = err
		return nil, res
	}

	// Transient on the final attempt escalates to permanent.
	res.Outcome = types.OutcomePermanent
	return nil, res
}

// persist writes the PDF, extracts and writes the text. Extraction
// failure keeps the PDF: it has value without the text.
func (e *Engine) persist(t types.FetchTarget, body []byte) types.FetchResult {
	res := types.FetchResult{Target: t}

	if err := os.MkdirAll(e.Layout.Dir(t), 0o755); err != nil {
		res.Outcome = types.OutcomePermanent
		res.Err = err
		return res
	}
	pdfPath := e.Layout.PDFPath(t)
	if err := writeAtomic(pdfPath, body); err != nil {
		res.Outcome = types.OutcomePermanent
		res.Err = err
		return res
	}
	res.PDFPath = pdfPath

	text, err := e.Extractor.Text(body)
	if err != nil {
		res.Outcome = types.OutcomePermanent
		res.ErrKind = types.ErrKindExtraction
		res.Err = err
		return res
	}
	textPath := e.Layout.TextPath(t)
	if err := writeAtomic(textPath, []byte(text)); err != nil {
		res.Outcome = types.OutcomePermanent
		res.Err = err
		return res
	}
	res.TextPath = textPath
	res.Outcome = types.OutcomeDownloaded
	return res
}

// writeAtomic writes data to destPath via a temp file and rename, so a
// crash never leaves a partial artifact that a later idempotence check
// would mistake for a completed one.
func writeAtomic(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".litfetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", destPath, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// printStatus emits the per-target status line: outcome, BioProject, DOI,
// source, and the error when there is one.
func printStatus(w io.Writer, res types.FetchResult) {
	t := res.Target
	if res.Err != nil {
		fmt.Fprintf(w, "%s: %s %s (%s) - %v\n", res.Outcome, t.BioProject, t.DOI, t.Source, res.Err)
		return
	}
	fmt.Fprintf(w, "%s: %s %s (%s)\n", res.Outcome, t.BioProject, t.DOI, t.Source)
}
