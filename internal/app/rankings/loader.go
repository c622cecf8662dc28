package rankings

import (
	"context"
	"sync"
	"time"

	"github.com/bountx/animal-ranking/internal/score"
)

// Snapshot is one fetched ranking view: the natural-order standings for a
// locale at a point in time. Sorting never mutates a snapshot, so any number
// of sort-key switches can be served from the same fetch.
type Snapshot struct {
	Locale    string
	FetchedAt time.Time
	Standings []Standing
}

// SortBy orders the snapshot's standings by the sort key with 1-based
// positions. Each call re-sorts the original natural-order sequence, so
// resorting is idempotent and independent of previous sort keys.
func (s Snapshot) SortBy(key score.SortKey) []Standing {
	return Sort(s.Standings, key)
}

// standingsFetcher is the slice of Service the loader depends on.
type standingsFetcher interface {
	Standings(ctx context.Context, locale string) ([]Standing, error)
}

// Loader fetches ranking snapshots and keeps the newest one per locale.
// Fetches are sequence-numbered per locale: when loads overlap, a fetch that
// completes after a newer fetch began is discarded instead of clobbering the
// newer view. Callers still receive their own fetch's result.
type Loader struct {
	svc standingsFetcher

	mu    sync.Mutex
	views map[string]*view
}

type view struct {
	seq     uint64
	hasSnap bool
	current Snapshot
}

// NewLoader wires a Loader around the rankings service.
func NewLoader(svc standingsFetcher) *Loader {
	return &Loader{svc: svc, views: make(map[string]*view)}
}

// Load fetches a fresh snapshot for the locale and applies it unless a newer
// load began while this one was in flight.
func (l *Loader) Load(ctx context.Context, locale string) (Snapshot, error) {
	l.mu.Lock()
	v, ok := l.views[locale]
	if !ok {
		v = &view{}
		l.views[locale] = v
	}
	v.seq++
	seq := v.seq
	l.mu.Unlock()

	standings, err := l.svc.Standings(ctx, locale)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Locale:    locale,
		FetchedAt: time.Now(),
		Standings: standings,
	}

	l.mu.Lock()
	// Apply only if no newer load began while this one was in flight.
	if seq == v.seq {
		v.hasSnap = true
		v.current = snap
	}
	l.mu.Unlock()

	return snap, nil
}

// Current returns the newest applied snapshot for the locale, if any.
func (l *Loader) Current(locale string) (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.views[locale]
	if !ok || !v.hasSnap {
		return Snapshot{}, false
	}
	return v.current, true
}
