package urlsync

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/vitrinalabs/storefront-backend/internal/filters"
	"github.com/vitrinalabs/storefront-backend/pkg/errors"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
	"github.com/vitrinalabs/storefront-backend/pkg/metrics"
)

// State is the reconciler's lifecycle phase. Writes to the location are
// only allowed once hydration has finished.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateSynced
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateSynced:
		return "synced"
	default:
		return "uninitialized"
	}
}

// Location abstracts the navigable address the reconciler mirrors criteria
// into. Replace must swap the query without growing navigation history.
type Location interface {
	Query() url.Values
	Replace(query url.Values)
}

// Reconciler keeps the filter store and the location's query string
// consistent. The URL wins exactly once, at hydration; after that the store
// drives and the location follows, debounced for filter edits and immediate
// for page navigation.
type Reconciler struct {
	store    *filters.Store
	location Location
	window   time.Duration
	logg     *logger.Logger
	catalog  *metrics.CatalogMetrics

	mu          sync.Mutex
	state       State
	timer       *time.Timer
	lastWritten filters.Criteria
	unsubscribe func()
}

// NewReconciler wires a reconciler to a store and location. It stays
// UNINITIALIZED until Hydrate runs.
func NewReconciler(store *filters.Store, location Location, window time.Duration,
	logg *logger.Logger, catalog *metrics.CatalogMetrics) (*Reconciler, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "filter store is required")
	}
	if location == nil {
		return nil, errors.New(errors.CodeInternal, "location is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger is required")
	}
	if window <= 0 {
		window = 700 * time.Millisecond
	}
	return &Reconciler{
		store:    store,
		location: location,
		window:   window,
		logg:     logg,
		catalog:  catalog,
	}, nil
}

// State returns the current lifecycle phase.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Hydrate seeds the store from the location's query exactly once and starts
// mirroring store changes back. The decoded criteria never trigger a write:
// the URL is already the source they came from.
func (r *Reconciler) Hydrate(ctx context.Context) error {
	r.mu.Lock()
	if r.state != StateUninitialized {
		r.mu.Unlock()
		return errors.New(errors.CodeConflict, "already hydrated")
	}
	r.state = StateHydrating
	r.mu.Unlock()

	decoded, err := filters.Decode(r.location.Query())
	if err != nil {
		// Malformed parameters degrade to defaults rather than failing the
		// whole catalog view.
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()),
			"url hydration failed, starting from defaults")
		decoded = filters.Default()
	}
	applied := r.store.Apply(func(filters.Criteria) filters.Criteria {
		return decoded
	})

	r.mu.Lock()
	r.lastWritten = applied
	r.state = StateSynced
	r.unsubscribe = r.store.Subscribe(r.onChange)
	r.mu.Unlock()

	r.logg.Debug(ctx, "filter store hydrated from location")
	return nil
}

// onChange routes a store update to the location. Page navigation and a
// full clear are discrete actions mirrored immediately; filter edits are
// coalesced so a burst of toggles produces one write carrying the final
// state.
func (r *Reconciler) onChange(next filters.Criteria) {
	r.mu.Lock()
	if r.state != StateSynced {
		r.mu.Unlock()
		return
	}
	if next.FiltersEqual(r.lastWritten) || next.FiltersEqual(next.Cleared()) {
		if r.timer != nil {
			r.timer.Stop()
			r.timer = nil
		}
		r.mu.Unlock()
		r.flush()
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, r.flush)
	r.mu.Unlock()
}

// flush writes the store's current criteria to the location. When filter
// facets changed since the last write the emitted query pins page=1, so a
// shared link never lands on a stale page of a different result set.
func (r *Reconciler) flush() {
	current := r.store.Current()

	r.mu.Lock()
	if r.state != StateSynced {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	previous := r.lastWritten
	r.lastWritten = current
	r.mu.Unlock()

	query := filters.Encode(current)
	written := filters.Encode(previous)
	if query.Encode() == written.Encode() {
		// Server bound seeding and no-op reducers land here: the criteria
		// moved but the navigable query did not.
		return
	}
	if filterPortion(query) != filterPortion(written) {
		query.Set(filters.ParamPage, "1")
	}
	r.location.Replace(query)
	r.catalog.IncURLWrite()
}

// filterPortion strips paging so two queries can be compared on filter
// facets alone.
func filterPortion(query url.Values) string {
	facets := url.Values{}
	for key, values := range query {
		if key == filters.ParamPage {
			continue
		}
		facets[key] = values
	}
	return facets.Encode()
}

// Flush forces any pending debounced write out immediately.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.flush()
}

// ApplyServerBounds feeds resolved price bounds into the store. Running it
// through the store keeps the precedence rule in one place: explicit user
// bounds survive, defaulted ones are seeded.
func (r *Reconciler) ApplyServerBounds(min, max float64) filters.Criteria {
	return r.store.Apply(func(c filters.Criteria) filters.Criteria {
		return c.WithServerBounds(min, max)
	})
}

// Stop cancels any pending write and detaches from the store.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.state = StateUninitialized
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
