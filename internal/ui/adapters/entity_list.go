// Package adapters contains the dashboard's chart adapters. Each one redraws
// itself from the selection engine's derived view and never holds filter state
// of its own.
package adapters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/views"
)

// EntityList is a scrollable list of entities with a cursor
type EntityList struct {
	store      dataset.EntityStore
	styles     *views.Styles
	showDimmed bool

	rows   []domain.Entity
	marks  map[string]domain.Highlight
	cursor int
	offset int
}

// NewEntityList creates a list over store. With showDimmed, entities that fail
// a filter stay listed in the dimmed style instead of disappearing.
func NewEntityList(store dataset.EntityStore, styles *views.Styles, showDimmed bool) *EntityList {
	return &EntityList{
		store:      store,
		styles:     styles,
		showDimmed: showDimmed,
		marks:      make(map[string]domain.Highlight),
	}
}

// Update rebuilds the rows from view, keeping the cursor on the same entity when it survives
func (l *EntityList) Update(view selection.DerivedView) {
	current, hadCurrent := l.Current()

	l.marks = view.Highlights
	if l.showDimmed {
		l.rows = l.rows[:0]
		for _, e := range l.store.Entities() {
			if view.HighlightOf(e.ID) != domain.HighlightExcluded {
				l.rows = append(l.rows, e)
			}
		}
	} else {
		l.rows = view.Entities
	}

	if hadCurrent {
		for i, e := range l.rows {
			if e.ID == current.ID {
				l.cursor = i
				return
			}
		}
	}
	l.clampCursor()
}

// Current returns the entity under the cursor
func (l *EntityList) Current() (domain.Entity, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return domain.Entity{}, false
	}
	return l.rows[l.cursor], true
}

// Len returns the number of listed rows
func (l *EntityList) Len() int {
	return len(l.rows)
}

// Move shifts the cursor by delta rows, stopping at either end
func (l *EntityList) Move(delta int) {
	l.cursor += delta
	l.clampCursor()
}

// Jump places the cursor on id if it is listed
func (l *EntityList) Jump(id string) bool {
	for i, e := range l.rows {
		if e.ID == id {
			l.cursor = i
			return true
		}
	}
	return false
}

func (l *EntityList) clampCursor() {
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Render draws at most height rows, scrolling to keep the cursor visible
func (l *EntityList) Render(width, height int) string {
	if len(l.rows) == 0 {
		return l.styles.Dim.Render("No entities match the current filters")
	}
	if height < 1 {
		height = 1
	}

	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	if last := len(l.rows) - height; l.offset > last {
		l.offset = last
	}
	if l.offset < 0 {
		l.offset = 0
	}

	end := l.offset + height
	if end > len(l.rows) {
		end = len(l.rows)
	}

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		e := l.rows[i]
		h := l.marks[e.ID]
		category := lipgloss.NewStyle().Foreground(lipgloss.Color(views.GetCategoryColor(e.Category))).Render(e.Category)
		line := fmt.Sprintf("%s %s  %s  %.3f  ×%d", views.Marker(h), l.styles.ForHighlight(h).Render(e.Name), category, e.Scale, e.Count)
		if width > 0 {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		if i == l.cursor {
			line = l.styles.SelectionBg.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if l.offset > 0 || end < len(l.rows) {
		b.WriteString("\n")
		b.WriteString(l.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", l.offset+1, end, len(l.rows))))
	}
	return b.String()
}
