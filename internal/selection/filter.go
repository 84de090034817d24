package selection

import (
	"fmt"
	"math"

	"cocoverse/internal/domain"
)

// State is a snapshot of the active filters
type State struct {
	Category  string           // "" when every category passes
	Region    *domain.Rect     // nil when no spatial brush is active
	Scale     *domain.Interval // nil when no scale brush is active
	Threshold float64          // minimum relation weight
	Locked    string           // "" when nothing is locked
	Excluded  []string         // in exclusion order
}

// IsFiltered reports whether any entity-level filter is narrowing the view
func (s State) IsFiltered() bool {
	return s.Category != "" || s.Region != nil || s.Scale != nil || len(s.Excluded) > 0
}

// filterState is the engine-owned mutable form of State
type filterState struct {
	category  string
	region    *domain.Rect
	scale     *domain.Interval
	threshold float64
	locked    string
	excluded  map[string]struct{}
	order     []string // exclusion order, mirrors excluded
}

func newFilterState(threshold float64) filterState {
	return filterState{
		threshold: threshold,
		excluded:  make(map[string]struct{}),
	}
}

func (f filterState) clone() filterState {
	next := f
	next.excluded = make(map[string]struct{}, len(f.excluded))
	for id := range f.excluded {
		next.excluded[id] = struct{}{}
	}
	next.order = append([]string(nil), f.order...)
	if f.region != nil {
		r := *f.region
		next.region = &r
	}
	if f.scale != nil {
		iv := *f.scale
		next.scale = &iv
	}
	return next
}

func (f filterState) isExcluded(id string) bool {
	_, ok := f.excluded[id]
	return ok
}

// toggleExclude flips id's exclusion and drops the lock when it lands on the locked entity
func (f *filterState) toggleExclude(id string) {
	if f.isExcluded(id) {
		delete(f.excluded, id)
		for i, other := range f.order {
			if other == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
		return
	}
	f.excluded[id] = struct{}{}
	f.order = append(f.order, id)
	if f.locked == id {
		f.locked = ""
	}
}

func (f filterState) snapshot() State {
	s := State{
		Category:  f.category,
		Threshold: f.threshold,
		Locked:    f.locked,
		Excluded:  append([]string(nil), f.order...),
	}
	if f.region != nil {
		r := *f.region
		s.Region = &r
	}
	if f.scale != nil {
		iv := *f.scale
		s.Scale = &iv
	}
	return s
}

// passes reports whether e survives the exclusion, category, region and scale filters
func (f filterState) passes(e domain.Entity) bool {
	if f.isExcluded(e.ID) {
		return false
	}
	if f.category != "" && e.Category != f.category {
		return false
	}
	if f.region != nil && !f.region.Contains(e.X, e.Y) {
		return false
	}
	if f.scale != nil && !f.scale.Contains(e.Scale) {
		return false
	}
	return true
}

// normalizeRegion validates a brushed rectangle, clamps it to the unit square
// and collapses a zero-area brush to nil
func normalizeRegion(r *domain.Rect) (*domain.Rect, error) {
	if r == nil {
		return nil, nil
	}
	if r.HasNaN() || r.X0 > r.X1 || r.Y0 > r.Y1 {
		return nil, fmt.Errorf("region [%g,%g]x[%g,%g]: %w", r.X0, r.X1, r.Y0, r.Y1, ErrInvalidRange)
	}
	clamped := domain.Rect{
		X0: clamp01(r.X0), Y0: clamp01(r.Y0),
		X1: clamp01(r.X1), Y1: clamp01(r.Y1),
	}
	if clamped.Area() == 0 {
		return nil, nil
	}
	return &clamped, nil
}

// normalizeInterval validates a numeric interval and collapses a point to nil
func normalizeInterval(iv *domain.Interval) (*domain.Interval, error) {
	if iv == nil {
		return nil, nil
	}
	if math.IsNaN(iv.Min) || math.IsNaN(iv.Max) || iv.Min > iv.Max {
		return nil, fmt.Errorf("interval [%g,%g]: %w", iv.Min, iv.Max, ErrInvalidRange)
	}
	if iv.Min == iv.Max {
		return nil, nil
	}
	out := *iv
	return &out, nil
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
