// Package selection implements the state engine shared by linked charts.
//
// The Engine owns every filter (category, spatial region, scale range, relation
// weight threshold, locked entity, excluded entities), recomputes the derived
// view after each change, and notifies subscribed chart adapters in
// registration order. Charts never touch filter state directly; they call the
// Engine's operations or Dispatch an interaction.
//
// An Engine is used from a single goroutine and is not safe for concurrent use.
package selection

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/eventbus"
)

// Listener receives the new derived view after every successful mutation
type Listener func(DerivedView)

// Adapter is a chart that redraws itself from a derived view
type Adapter interface {
	Update(view DerivedView)
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithThreshold overrides the default relation weight threshold, which is
// otherwise the dataset's minimum weight
func WithThreshold(w float64) Option {
	return func(e *Engine) {
		e.initial.threshold = w
	}
}

// Engine holds filter state and the derived view computed from it
type Engine struct {
	ds     *dataset.Dataset
	logger *zap.Logger
	bus    *eventbus.Bus[DerivedView]

	initial filterState // construction-time state restored by ResetAll
	filters filterState
	view    DerivedView
}

// New creates an engine over ds with every filter passing
func New(ds *dataset.Dataset, opts ...Option) *Engine {
	minWeight, _ := ds.WeightRange()
	e := &Engine{
		ds:      ds,
		logger:  zap.NewNop(),
		initial: newFilterState(minWeight),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.bus = eventbus.New[DerivedView](e.logger)
	e.filters = e.initial.clone()
	e.view = derive(ds, e.filters)
	return e
}

// Dataset returns the dataset the engine filters
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// DerivedView returns a copy of the current derived view
func (e *Engine) DerivedView() DerivedView {
	return e.view.clone()
}

// State returns a snapshot of the active filters
func (e *Engine) State() State {
	return e.filters.snapshot()
}

// Subscribe registers a listener and returns its unsubscribe function
func (e *Engine) Subscribe(listener Listener) func() {
	return e.bus.Subscribe(eventbus.Handler[DerivedView](listener))
}

// Attach subscribes a chart adapter and returns its detach function
func (e *Engine) Attach(adapter Adapter) func() {
	return e.Subscribe(adapter.Update)
}

// SetCategoryFilter keeps only entities of the given category. "all" and ""
// clear the filter; an unknown category legitimately matches nothing.
func (e *Engine) SetCategoryFilter(category string) {
	if category == "all" {
		category = ""
	}
	e.mutate("category", func(f *filterState) {
		f.category = category
	})
}

// SetSpatialRegion keeps only entities positioned inside r. Nil or a zero-area
// rectangle clears the filter; coordinates are clamped to [0,1].
func (e *Engine) SetSpatialRegion(r *domain.Rect) error {
	region, err := normalizeRegion(r)
	if err != nil {
		return err
	}
	e.mutate("region", func(f *filterState) {
		f.region = region
	})
	return nil
}

// SetScaleRange keeps only entities whose scale lies within iv. Nil or a
// single-point interval clears the filter.
func (e *Engine) SetScaleRange(iv *domain.Interval) error {
	scale, err := normalizeInterval(iv)
	if err != nil {
		return fmt.Errorf("scale range: %w", err)
	}
	e.mutate("scale", func(f *filterState) {
		f.scale = scale
	})
	return nil
}

// SetWeightThreshold hides relations lighter than w
func (e *Engine) SetWeightThreshold(w float64) error {
	if math.IsNaN(w) {
		return fmt.Errorf("threshold NaN: %w", ErrInvalidRange)
	}
	e.mutate("threshold", func(f *filterState) {
		f.threshold = w
	})
	return nil
}

// LockEntity focuses id, replacing any previous lock. "" clears the lock.
func (e *Engine) LockEntity(id string) error {
	if id != "" && !e.ds.Has(id) {
		return fmt.Errorf("lock %q: %w", id, ErrEntityNotFound)
	}
	e.mutate("lock", func(f *filterState) {
		f.locked = id
	})
	return nil
}

// FocusByName locks the entity whose name matches, ignoring case.
// An empty name clears the lock.
func (e *Engine) FocusByName(name string) error {
	if name == "" {
		return e.LockEntity("")
	}
	ent, ok := e.ds.FindByName(name)
	if !ok {
		return fmt.Errorf("focus %q: %w", name, ErrEntityNotFound)
	}
	return e.LockEntity(ent.ID)
}

// ToggleExclude removes id from every view, or restores it. Excluding the
// locked entity also clears the lock.
func (e *Engine) ToggleExclude(id string) error {
	if !e.ds.Has(id) {
		return fmt.Errorf("exclude %q: %w", id, ErrEntityNotFound)
	}
	e.mutate("exclude", func(f *filterState) {
		f.toggleExclude(id)
	})
	return nil
}

// ResetAll restores every filter to its construction-time value in one step
func (e *Engine) ResetAll() {
	e.mutate("reset", func(f *filterState) {
		*f = e.initial.clone()
	})
}

// mutate applies change to a copy of the filters, then commits, recomputes and
// notifies. Calls made from inside a notification are queued behind it.
func (e *Engine) mutate(op string, change func(*filterState)) {
	if e.bus.Dispatching() {
		e.logger.Debug("deferring mutation",
			zap.String("op", op),
			zap.NamedError("reason", ErrListenerReentrancy))
	}

	e.bus.Defer(func() {
		next := e.filters.clone()
		change(&next)
		e.filters = next
		e.view = derive(e.ds, next)

		e.logger.Debug("selection changed",
			zap.String("op", op),
			zap.Int("entities", len(e.view.Entities)),
			zap.Int("relations", len(e.view.Relations)),
			zap.String("locked", e.filters.locked))

		e.bus.PublishFunc(e.view.clone)
	})
}
