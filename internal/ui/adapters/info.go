package adapters

import (
	"fmt"
	"strings"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/views"
)

// InfoPanel shows the locked entity and its strongest co-occurring neighbours
type InfoPanel struct {
	store  dataset.EntityStore
	styles *views.Styles
	limit  int

	focus     domain.Entity
	highlight domain.Highlight
	hidden    bool
	neighbors []selection.NeighborInfo
	total     int
}

// NewInfoPanel creates a panel listing at most limit neighbours
func NewInfoPanel(store dataset.EntityStore, styles *views.Styles, limit int) *InfoPanel {
	return &InfoPanel{store: store, styles: styles, limit: limit}
}

// Update refreshes the panel for view's locked entity
func (p *InfoPanel) Update(view selection.DerivedView) {
	p.focus = domain.Entity{}
	p.neighbors = nil
	p.total = 0
	if view.Locked == "" {
		return
	}

	e, ok := p.store.Entity(view.Locked)
	if !ok {
		return
	}
	p.focus = e
	p.highlight = view.HighlightOf(e.ID)
	p.hidden = !view.LockedVisible

	all := view.NeighborsOf(e.ID)
	p.total = len(all)
	if p.limit > 0 && len(all) > p.limit {
		all = all[:p.limit]
	}
	p.neighbors = all
}

// Neighbors returns the listed neighbours, strongest first
func (p *InfoPanel) Neighbors() []selection.NeighborInfo {
	return p.neighbors
}

// Render draws the panel body
func (p *InfoPanel) Render() string {
	if p.focus.ID == "" {
		return p.styles.Dim.Render("Nothing locked. Press enter on an entity.")
	}

	var b strings.Builder
	b.WriteString(p.styles.ForHighlight(p.highlight).Render(p.focus.Name))
	fmt.Fprintf(&b, "  %s\n", p.styles.Dim.Render(p.focus.Category))
	fmt.Fprintf(&b, "pos (%.2f, %.2f)  scale %.3f  count %d", p.focus.X, p.focus.Y, p.focus.Scale, p.focus.Count)
	if p.focus.Class != "" {
		fmt.Fprintf(&b, "  %s", p.focus.Class)
	}

	if p.hidden {
		b.WriteString("\n")
		b.WriteString(p.styles.Dim.Render("Hidden by the current filters"))
		return b.String()
	}
	if len(p.neighbors) == 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Dim.Render("No visible co-occurrences above threshold"))
		return b.String()
	}

	for _, n := range p.neighbors {
		name := p.styles.Neighbor.Render(fmt.Sprintf("%-16s", n.Entity.Name))
		fmt.Fprintf(&b, "\n%s %s %6.0f  P=%.2f", views.Marker(domain.HighlightNeighbor), name, n.Weight, n.Conditional)
	}
	if more := p.total - len(p.neighbors); more > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Scroll.Render(fmt.Sprintf("… %d more", more)))
	}
	return b.String()
}
