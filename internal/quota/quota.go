// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quota enforces per-source request ceilings and paces outgoing
// requests. All three publishers impose daily quotas; exceeding them risks
// key suspension, so the engine checks Authorize immediately before every
// network call and fails soft (skips the target) once a source is spent.
package quota

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
	"golang.org/x/time/rate"

	"github.com/pdiddy/litfetch/pkg/types"
)

const (
	// DefaultCeiling is the per-source daily request ceiling.
	DefaultCeiling = 450

	// DefaultRate is the proactive pacing rate in requests per second.
	DefaultRate = 1.0
)

// timeNow is overridden in tests to pin the calendar day.
var timeNow = time.Now

// Limiter tracks request counts per source against a shared ceiling and
// paces requests with a token bucket. Counts optionally persist to a
// day-keyed state file so repeated short runs compose against the
// publishers' daily quotas; the file resets when the calendar day rolls.
type Limiter struct {
	mu        sync.Mutex
	ceiling   int
	counts    map[types.Source]int
	bucket    *rate.Limiter
	statePath string
}

// state is the on-disk shape of the day-keyed counter file.
type state struct {
	Date   string         `yaml:"date"`
	Counts map[string]int `yaml:"counts"`
}

// New creates a Limiter from cfg, loading persisted counts for today when
// cfg.StateFile is set. Zero values take the package defaults.
func New(cfg types.QuotaConfig) (*Limiter, error) {
	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRate
	}

	l := &Limiter{
		ceiling:   ceiling,
		counts:    make(map[types.Source]int),
		bucket:    rate.NewLimiter(rate.Limit(rps), 1),
		statePath: cfg.StateFile,
	}

	if l.statePath != "" {
		if err := l.load(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Authorize reports whether a request to source may be issued, counting it
// if so. The check and the increment are a single step under the mutex, so
// the count can never pass the ceiling even if callers are later
// parallelized per source. At the ceiling it returns false with no side
// effect.
func (l *Limiter) Authorize(source types.Source) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.counts[source] >= l.ceiling {
		return false
	}
	l.counts[source]++
	l.save()
	return true
}

// Wait blocks until the pacing bucket permits the next request or ctx is
// done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}

// Count returns the number of requests counted for source today.
func (l *Limiter) Count(source types.Source) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[source]
}

// Ceiling returns the per-source ceiling.
func (l *Limiter) Ceiling() int { return l.ceiling }

// load reads the state file and adopts its counts when it is from today.
// A missing file is a fresh day; a stale date discards the counts.
func (l *Limiter) load() error {
	data, err := os.ReadFile(l.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading quota state %s: %w", l.statePath, err)
	}

	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parsing quota state %s: %w", l.statePath, err)
	}
	if st.Date != today() {
		return nil
	}
	for name, n := range st.Counts {
		if n > 0 {
			l.counts[types.Source(name)] = n
		}
	}
	return nil
}

// save writes current counts to the state file. Called with the mutex
// held, after every increment. Failures warn rather than abort: losing a
// count is recoverable, losing the run is not.
func (l *Limiter) save() {
	if l.statePath == "" {
		return
	}
	st := state{Date: today(), Counts: make(map[string]int, len(l.counts))}
	for src, n := range l.counts {
		st.Counts[string(src)] = n
	}
	data, err := yaml.Marshal(st)
	if err == nil {
		err = os.WriteFile(l.statePath, data, 0o644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save quota state: %v\n", err)
	}
}

func today() string {
	return timeNow().UTC().Format("2006-01-02")
}
