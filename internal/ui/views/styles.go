package views

import (
	"github.com/charmbracelet/lipgloss"

	"cocoverse/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	SelectionBg lipgloss.Style
	Region      lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Locked      lipgloss.Style
	Neighbor    lipgloss.Style
	Normal      lipgloss.Style
	Dimmed      lipgloss.Style
	Excluded    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Region:      lipgloss.NewStyle().Background(lipgloss.Color("24")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Locked:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Neighbor:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Normal:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dimmed:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Excluded:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Strikethrough(true),
	}
}

// ForHighlight returns the style an entity with the given classification is drawn in
func (s *Styles) ForHighlight(h domain.Highlight) lipgloss.Style {
	switch h {
	case domain.HighlightLocked:
		return s.Locked
	case domain.HighlightNeighbor:
		return s.Neighbor
	case domain.HighlightDimmed:
		return s.Dimmed
	case domain.HighlightExcluded:
		return s.Excluded
	default:
		return s.Normal
	}
}

// Marker returns the one-character glyph drawn before an entity row
func Marker(h domain.Highlight) string {
	switch h {
	case domain.HighlightLocked:
		return "●"
	case domain.HighlightNeighbor:
		return "◆"
	case domain.HighlightDimmed:
		return "·"
	case domain.HighlightExcluded:
		return "✗"
	default:
		return "○"
	}
}

// GetCategoryColor returns a stable palette color for a category name
func GetCategoryColor(category string) string {
	palette := []string{"78", "33", "214", "170", "45", "208", "141", "118"}
	if category == "" {
		return "241"
	}
	var h uint32
	for i := 0; i < len(category); i++ {
		h = h*31 + uint32(category[i])
	}
	return palette[h%uint32(len(palette))]
}
