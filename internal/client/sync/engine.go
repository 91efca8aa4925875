// Package sync hosts the tribute wall engine: it reconciles the remote
// store of record with the device-local cache, attributes records to the
// anonymous device identity, and applies candle-lighting locally without
// a round trip.
package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmuchiri/tributewall/internal/client/geo"
	"github.com/dmuchiri/tributewall/internal/client/remote"
	"github.com/dmuchiri/tributewall/internal/common"
	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/models"
)

// fallbackLocation is used when neither the submitter nor the resolver
// supplies a place.
const fallbackLocation = "Kenya"

// listRetryDelay separates the two initialize attempts. The store client
// itself never retries.
const listRetryDelay = 500 * time.Millisecond

// Identity supplies the device identity token.
type Identity interface {
	Token(ctx context.Context) string
}

// LocalCache is the durable fallback copy of the tribute set.
type LocalCache interface {
	Load(ctx context.Context) []models.Tribute
	Save(ctx context.Context, tributes []models.Tribute) error
	Clear(ctx context.Context) error
}

// GeoResolver supplies the opportunistic default location.
type GeoResolver interface {
	Resolve(ctx context.Context) geo.Result
}

// Stats summarizes the wall for display.
type Stats struct {
	Total      int
	CandlesLit int
	Locations  int
}

// Engine is the tribute synchronizer. All operations originate from one
// interactive session; the mutex only protects the view against the
// background geolocation prefetch and concurrent readers.
type Engine struct {
	remote   remote.Client
	cache    LocalCache
	identity Identity
	geo      GeoResolver
	logger   logging.Logger
	now      func() time.Time

	mu         gosync.Mutex
	view       []models.Tribute
	loading    bool
	degraded   bool
	submitting bool
}

func NewEngine(rc remote.Client, cache LocalCache, id Identity, geo GeoResolver, logger logging.Logger) *Engine {
	return &Engine{
		remote:   rc,
		cache:    cache,
		identity: id,
		geo:      geo,
		logger:   logger,
		now:      time.Now,
	}
}

// Initialize pulls the authoritative set from the remote store, replacing
// the view and the local cache wholesale. When the store is unreachable it
// falls back to the cache and marks the view degraded; no error surfaces,
// a stale or empty wall is the deliberate worst case.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	var fetched []models.Tribute
	backoff := retry.WithMaxRetries(1, retry.NewConstant(listRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		tributes, lerr := e.remote.List(ctx)
		if lerr != nil {
			return retry.RetryableError(lerr)
		}
		fetched = tributes
		return nil
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false

	if err != nil {
		e.view = e.cache.Load(ctx)
		e.degraded = true
		e.logger.Warn(ctx, "remote store unreachable, serving cached tributes",
			"cached", len(e.view), "error", err)
		return
	}

	e.view = fetched
	e.degraded = false
	if err := e.cache.Save(ctx, e.view); err != nil {
		e.logger.Warn(ctx, "failed to cache fetched tributes", "error", err)
	}
	e.logger.Info(ctx, "tributes refreshed", "count", len(e.view))
}

// Submit validates the draft locally, resolves its effective location and
// appends it to the remote store. The accepted record is folded into the
// view and cache; nothing is inserted until the store confirms.
func (e *Engine) Submit(ctx context.Context, draft models.Draft) (models.Tribute, error) {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return models.Tribute{}, common.ErrSubmitInFlight
	}
	e.submitting = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.submitting = false
		e.mu.Unlock()
	}()

	if err := draft.Validate(); err != nil {
		return models.Tribute{}, err
	}

	tribute := models.Tribute{
		AuthorName:   strings.TrimSpace(draft.AuthorName),
		Message:      strings.TrimSpace(draft.Message),
		Relationship: draft.Relationship,
		Location:     e.effectiveLocation(ctx, draft.Location),
		SubmittedAt:  e.now().UTC(),
		HasCandleLit: true,
		OwnerToken:   e.identity.Token(ctx),
	}

	id, err := e.remote.Append(ctx, remote.AppendRequest{
		AuthorName:   tribute.AuthorName,
		Message:      tribute.Message,
		Relationship: tribute.Relationship,
		Location:     tribute.Location,
		OwnerToken:   tribute.OwnerToken,
		SubmittedAt:  tribute.SubmittedAt,
	})
	if err != nil {
		var rejected *common.RejectedError
		if errors.As(err, &rejected) {
			return models.Tribute{}, rejected
		}
		return models.Tribute{}, fmt.Errorf("could not reach the tribute wall: %w", err)
	}

	tribute.ID = id

	e.mu.Lock()
	defer e.mu.Unlock()
	e.view = append([]models.Tribute{tribute}, e.view...)
	e.persistLocked(ctx)

	return tribute, nil
}

// effectiveLocation applies the precedence explicit > resolved > fallback.
// The resolver is consulted only when the submitter typed nothing, so a
// late geolocation answer can never override user input.
func (e *Engine) effectiveLocation(ctx context.Context, explicit string) string {
	if place := strings.TrimSpace(explicit); place != "" {
		return place
	}
	if res := e.geo.Resolve(ctx); res.Available {
		return res.Place
	}
	return fallbackLocation
}

// Delete removes a tribute owned by this device. Ownership is checked
// locally before any network call; a record the store has already
// forgotten is still evicted here.
func (e *Engine) Delete(ctx context.Context, id string) error {
	token := e.identity.Token(ctx)

	e.mu.Lock()
	idx := e.indexLocked(id)
	if idx < 0 {
		// already gone; deleting twice converges without raising
		e.mu.Unlock()
		return nil
	}
	if !e.view[idx].OwnedBy(token) {
		e.mu.Unlock()
		return common.ErrNotOwner
	}
	e.mu.Unlock()

	if err := e.remote.Remove(ctx, id, token); err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("could not delete tribute: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if idx := e.indexLocked(id); idx >= 0 {
		e.view = append(e.view[:idx], e.view[idx+1:]...)
		e.persistLocked(ctx)
	}
	return nil
}

// LightCandle sets the ceremonial flag on one tribute. Local-only: the
// store never hears about candles, and the next successful refresh
// re-lights every record anyway.
func (e *Engine) LightCandle(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(id)
	if idx < 0 {
		return common.ErrNotFound
	}
	e.view[idx].HasCandleLit = true
	e.persistLocked(ctx)
	return nil
}

// LightAll lights every candle on the wall.
func (e *Engine) LightAll(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.view {
		e.view[i].HasCandleLit = true
	}
	e.persistLocked(ctx)
}

// ClearLocal erases the cache and the in-memory view. The remote store is
// untouched; this is a client-side reset, not data deletion.
func (e *Engine) ClearLocal(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.cache.Clear(ctx); err != nil {
		return err
	}
	e.view = nil
	return nil
}

// Tributes returns a copy of the current view, newest first.
func (e *Engine) Tributes() []models.Tribute {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Tribute, len(e.view))
	copy(out, e.view)
	return out
}

// Recent returns up to n of the newest tributes.
func (e *Engine) Recent(n int) []models.Tribute {
	all := e.Tributes()
	if n < 0 {
		n = 0
	}
	if n < len(all) {
		return all[:n]
	}
	return all
}

// Stats summarizes the wall: totals, candles burning, distinct locations.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{Total: len(e.view)}
	locations := make(map[string]struct{})
	for i := range e.view {
		if e.view[i].HasCandleLit {
			s.CandlesLit++
		}
		if loc := e.view[i].Location; loc != "" {
			locations[loc] = struct{}{}
		}
	}
	s.Locations = len(locations)
	return s
}

// Degraded reports whether the view was populated from the local cache
// because the initial fetch failed.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// Loading reports whether the initial fetch is still in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Submitting reports whether a submission is in flight; callers use it to
// disable duplicate submission attempts.
func (e *Engine) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

func (e *Engine) indexLocked(id string) int {
	for i := range e.view {
		if e.view[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the view through to the cache. A cache write
// failure degrades durability, not the operation: the in-memory view is
// already updated, so the error is logged and swallowed.
func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.cache.Save(ctx, e.view); err != nil {
		e.logger.Warn(ctx, "failed to persist tribute view", "error", err)
	}
}
