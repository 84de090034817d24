package selection

import (
	"sort"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
)

// DerivedView is the filtered, classified projection of the dataset that
// chart adapters draw from
type DerivedView struct {
	Entities      []domain.Entity             // visible entities, dataset order
	Relations     []domain.Relation           // visible relations, dataset order
	Highlights    map[string]domain.Highlight // classification of every dataset entity
	Locked        string
	LockedVisible bool
	Threshold     float64
}

// NeighborInfo is one row of a focused entity's co-occurrence list
type NeighborInfo struct {
	Entity      domain.Entity
	Weight      float64
	Conditional float64 // Weight divided by the focused entity's Count
}

// ViewStats holds the counters shown in a status line
type ViewStats struct {
	Entities  int
	Relations int
	Threshold float64
}

// derive computes the view for a dataset and filter state. It is pure.
func derive(ds *dataset.Dataset, f filterState) DerivedView {
	all := ds.Entities()
	view := DerivedView{
		Entities:   make([]domain.Entity, 0, len(all)),
		Relations:  make([]domain.Relation, 0),
		Highlights: make(map[string]domain.Highlight, len(all)),
		Locked:     f.locked,
		Threshold:  f.threshold,
	}

	visible := make(map[string]bool, len(all))
	for _, e := range all {
		if f.passes(e) {
			visible[e.ID] = true
			view.Entities = append(view.Entities, e)
		}
	}

	for _, r := range ds.Relations() {
		if visible[r.A] && visible[r.B] && r.Weight >= f.threshold {
			view.Relations = append(view.Relations, r)
		}
	}

	// An invisible locked entity has no neighbours
	neighbors := make(map[string]bool)
	if f.locked != "" && visible[f.locked] {
		view.LockedVisible = true
		for _, n := range ds.Adjacent(f.locked) {
			if n.Weight >= f.threshold && visible[n.ID] {
				neighbors[n.ID] = true
			}
		}
	}

	for _, e := range all {
		switch {
		case f.isExcluded(e.ID):
			view.Highlights[e.ID] = domain.HighlightExcluded
		case e.ID == f.locked:
			view.Highlights[e.ID] = domain.HighlightLocked
		case neighbors[e.ID]:
			view.Highlights[e.ID] = domain.HighlightNeighbor
		case !visible[e.ID]:
			view.Highlights[e.ID] = domain.HighlightDimmed
		default:
			view.Highlights[e.ID] = domain.HighlightNormal
		}
	}

	return view
}

// clone returns a deep copy so listeners cannot reach the engine's cache
func (v DerivedView) clone() DerivedView {
	out := v
	out.Entities = make([]domain.Entity, len(v.Entities))
	copy(out.Entities, v.Entities)
	out.Relations = make([]domain.Relation, len(v.Relations))
	copy(out.Relations, v.Relations)
	out.Highlights = make(map[string]domain.Highlight, len(v.Highlights))
	for id, h := range v.Highlights {
		out.Highlights[id] = h
	}
	return out
}

// HighlightOf returns the classification of id, or "" for ids outside the dataset
func (v DerivedView) HighlightOf(id string) domain.Highlight {
	return v.Highlights[id]
}

// Visible reports whether id passed every active filter
func (v DerivedView) Visible(id string) bool {
	switch v.Highlights[id] {
	case domain.HighlightNormal, domain.HighlightNeighbor:
		return true
	case domain.HighlightLocked:
		return v.LockedVisible
	default:
		return false
	}
}

// NeighborsOf lists the visible entities related to id through visible
// relations, strongest first. Nil when id itself is not visible.
func (v DerivedView) NeighborsOf(id string) []NeighborInfo {
	if !v.Visible(id) {
		return nil
	}

	byID := make(map[string]domain.Entity, len(v.Entities))
	for _, e := range v.Entities {
		byID[e.ID] = e
	}
	focus := byID[id]

	strongest := make(map[string]float64)
	for _, r := range v.Relations {
		if !r.Touches(id) || r.A == r.B {
			continue
		}
		other := r.Other(id)
		if w, ok := strongest[other]; !ok || r.Weight > w {
			strongest[other] = r.Weight
		}
	}

	out := make([]NeighborInfo, 0, len(strongest))
	for other, w := range strongest {
		info := NeighborInfo{Entity: byID[other], Weight: w}
		if focus.Count > 0 {
			info.Conditional = w / float64(focus.Count)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Entity.ID < out[j].Entity.ID
	})
	return out
}

// Stats returns the view's visible counts and threshold
func (v DerivedView) Stats() ViewStats {
	return ViewStats{
		Entities:  len(v.Entities),
		Relations: len(v.Relations),
		Threshold: v.Threshold,
	}
}
